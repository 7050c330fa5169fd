package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"momo-analysis/internal/models"
	"momo-analysis/internal/storage"
)

// GetTypeByName ищет тип транзакции по имени
func (s *SQLiteStorage) GetTypeByName(ctx context.Context, name string) (*models.TransactionType, error) {
	var tt models.TransactionType
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, type_name, description FROM transaction_types WHERE type_name = ?
	`, name).Scan(&tt.ID, &tt.Name, &tt.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

// CreateType создает тип транзакции. При занятом имени возвращает storage.ErrTypeExists.
func (s *SQLiteStorage) CreateType(ctx context.Context, name, description string) (*models.TransactionType, error) {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO transaction_types (type_name, description) VALUES (?, ?)
	`, name, description)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrTypeExists, name)
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.TransactionType{ID: id, Name: name, Description: description}, nil
}

// ListTypes все типы транзакций по возрастанию id
func (s *SQLiteStorage) ListTypes(ctx context.Context) ([]*models.TransactionType, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, type_name, description FROM transaction_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]*models.TransactionType, 0)
	for rows.Next() {
		var tt models.TransactionType
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.Description); err != nil {
			return nil, err
		}
		types = append(types, &tt)
	}

	return types, rows.Err()
}
