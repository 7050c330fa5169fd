package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"momo-analysis/internal/models"
)

const transactionColumns = `
	t.id, t.transaction_id, t.type_id, tt.type_name, t.direction, t.amount, t.fee, t.balance,
	t.sender, t.recipient, t.phone_number, t.transaction_date, t.status, t.raw_message,
	t.source_message_id, t.created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		tx                          models.Transaction
		typeName, direction, status string
		balance                     decimal.NullDecimal
		sender, recipient, phone    sql.NullString
		sourceID                    sql.NullInt64
		occurredAt, createdAt       string
	)

	err := row.Scan(
		&tx.ID, &tx.TransactionID, &tx.TypeID, &typeName, &direction, &tx.Amount, &tx.Fee, &balance,
		&sender, &recipient, &phone, &occurredAt, &status, &tx.RawMessage,
		&sourceID, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	tx.TypeName = models.Category(typeName)
	tx.Direction = models.Direction(direction)
	tx.Status = models.TransactionStatus(status)
	tx.Balance = decimalPtr(balance)
	tx.Sender = stringPtr(sender)
	tx.Recipient = stringPtr(recipient)
	tx.PhoneNumber = stringPtr(phone)
	if sourceID.Valid {
		id := sourceID.Int64
		tx.SourceMessageID = &id
	}

	if tx.OccurredAt, err = parseTime(occurredAt); err != nil {
		return nil, fmt.Errorf("invalid transaction_date %q: %w", occurredAt, err)
	}
	if tx.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}

	return &tx, nil
}

// GetTransactionByID получает транзакцию по id
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN transaction_types tt ON tt.id = t.type_id
		WHERE t.id = ?`

	tx, err := scanTransaction(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// buildFilter собирает WHERE и аргументы по фильтру списка транзакций
func buildFilter(f models.TransactionFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + search + "%"
		conditions = append(conditions,
			"(t.raw_message LIKE ? OR t.sender LIKE ? OR t.recipient LIKE ? OR t.transaction_id LIKE ?)")
		args = append(args, pattern, pattern, pattern, pattern)
	}
	if f.TypeID > 0 {
		conditions = append(conditions, "t.type_id = ?")
		args = append(args, f.TypeID)
	}
	if f.Date != nil {
		conditions = append(conditions, "substr(t.transaction_date, 1, 10) = ?")
		args = append(args, f.Date.UTC().Format("2006-01-02"))
	}
	if f.MinAmount != nil {
		conditions = append(conditions, "CAST(t.amount AS REAL) >= ?")
		args = append(args, f.MinAmount.InexactFloat64())
	}
	if f.MaxAmount != nil {
		conditions = append(conditions, "CAST(t.amount AS REAL) <= ?")
		args = append(args, f.MaxAmount.InexactFloat64())
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// ListTransactions постраничный список транзакций, новые сверху
func (s *SQLiteStorage) ListTransactions(ctx context.Context, f models.TransactionFilter) (*models.TransactionPage, error) {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	where, args := buildFilter(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t` + where
	if err := s.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN transaction_types tt ON tt.id = t.type_id` + where + `
		ORDER BY t.transaction_date DESC, t.id DESC
		LIMIT ? OFFSET ?`

	rows, err := s.DB.QueryContext(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*models.Transaction, 0, f.Limit)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.TransactionPage{
		Transactions: transactions,
		Pagination: models.Pagination{
			CurrentPage: f.Page,
			TotalPages:  (total + f.Limit - 1) / f.Limit,
			TotalItems:  total,
			Limit:       f.Limit,
		},
	}, nil
}

// ListErrors последние записи журнала ошибок
func (s *SQLiteStorage) ListErrors(ctx context.Context, limit int) ([]*models.ErrorRecord, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, error_message, COALESCE(raw_data, ''), created_at
		FROM error_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*models.ErrorRecord, 0)
	for rows.Next() {
		var (
			rec      models.ErrorRecord
			loggedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Message, &rec.RawPayload, &loggedAt); err != nil {
			return nil, err
		}
		if rec.LoggedAt, err = parseTime(loggedAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// ListImportHistory последние импорты
func (s *SQLiteStorage) ListImportHistory(ctx context.Context, limit int) ([]*models.ImportHistory, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT batch_id, filename, import_date, status, records_imported, records_failed
		FROM import_history
		ORDER BY import_date DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]*models.ImportHistory, 0)
	for rows.Next() {
		var (
			h          models.ImportHistory
			importedAt string
		)
		if err := rows.Scan(&h.BatchID, &h.Source, &importedAt, &h.Status, &h.RecordsImported, &h.RecordsFailed); err != nil {
			return nil, err
		}
		if h.ImportedAt, err = parseTime(importedAt); err != nil {
			return nil, err
		}
		history = append(history, &h)
	}

	return history, rows.Err()
}
