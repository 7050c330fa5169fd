package sqlite

import (
	"context"
	"fmt"
)

// ClearAllTransactions удаляет все транзакции и исходные SMS
func (s *SQLiteStorage) ClearAllTransactions(ctx context.Context) error {
	dbTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return err
	}
	if _, err := dbTx.ExecContext(ctx, `DELETE FROM raw_sms_messages`); err != nil {
		return err
	}

	return dbTx.Commit()
}
