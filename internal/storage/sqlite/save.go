package sqlite

import (
	"context"
	"fmt"
	"time"

	"momo-analysis/internal/models"
)

// SaveTransaction сохраняет исходное SMS и транзакцию в одной транзакции БД.
// Одна попытка: ожидание блокировки покрывает busy_timeout, повтор делает вызывающий.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, msg *models.RawMessage, tx *models.Transaction) error {
	createdAt := time.Now().UTC().Truncate(time.Second)

	dbTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	var sourceID *int64
	if msg != nil {
		res, err := dbTx.ExecContext(ctx, `
			INSERT INTO raw_sms_messages (address, body, sms_date, sms_type, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, msg.Address, msg.Body, nullTime(msg.Timestamp), msg.Type, formatTime(createdAt))
		if err != nil {
			return fmt.Errorf("failed to save raw message: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		sourceID = &id
	}

	res, err := dbTx.ExecContext(ctx, `
		INSERT INTO transactions (
			transaction_id, type_id, direction, amount, fee, balance,
			sender, recipient, phone_number, transaction_date, status,
			raw_message, source_message_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		tx.TransactionID, tx.TypeID, string(tx.Direction), tx.Amount, tx.Fee, nullDecimal(tx.Balance),
		nullString(tx.Sender), nullString(tx.Recipient), nullString(tx.PhoneNumber),
		formatTime(tx.OccurredAt), string(tx.Status), tx.RawMessage, sourceID, formatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	tx.ID = id
	tx.SourceMessageID = sourceID
	tx.CreatedAt = createdAt
	return nil
}

// SaveError добавляет запись в журнал ошибок
func (s *SQLiteStorage) SaveError(ctx context.Context, rec *models.ErrorRecord) error {
	if rec.LoggedAt.IsZero() {
		rec.LoggedAt = time.Now().UTC()
	}

	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO error_logs (error_message, raw_data, created_at) VALUES (?, ?, ?)
	`, rec.Message, rec.RawPayload, formatTime(rec.LoggedAt))
	if err != nil {
		return err
	}

	rec.ID, err = res.LastInsertId()
	return err
}

// SaveImportHistory сохраняет итог импорта батча
func (s *SQLiteStorage) SaveImportHistory(ctx context.Context, h *models.ImportHistory) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO import_history (batch_id, filename, import_date, status, records_imported, records_failed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, h.BatchID, h.Source, formatTime(h.ImportedAt), h.Status, h.RecordsImported, h.RecordsFailed)
	return err
}
