package storage

import (
	"context"
	"errors"

	"momo-analysis/internal/models"
)

// ErrTypeExists тип с таким именем уже создан (нарушение UNIQUE(type_name))
var ErrTypeExists = errors.New("transaction type already exists")

// TransactionRepository определяет интерфейс для работы с транзакциями в хранилище.
// Методы чтения возвращают nil, nil, если запись не найдена.
type TransactionRepository interface {
	// SaveTransaction атомарно сохраняет исходное SMS и транзакцию, ссылающуюся на него.
	// Заполняет tx.ID, tx.SourceMessageID и tx.CreatedAt.
	SaveTransaction(ctx context.Context, msg *models.RawMessage, tx *models.Transaction) error

	// GetTransactionByID получает транзакцию по идентификатору записи
	GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error)

	// ListTransactions постраничная выборка с фильтрами
	ListTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error)

	// GetStats агрегированная статистика
	GetStats(ctx context.Context) (*models.Stats, error)

	// ClearAllTransactions удаляет все транзакции и исходные SMS. Справочник типов сохраняется.
	ClearAllTransactions(ctx context.Context) error
}

// TypeRepository справочник типов транзакций
type TypeRepository interface {
	GetTypeByName(ctx context.Context, name string) (*models.TransactionType, error)

	// CreateType возвращает ErrTypeExists, если имя уже занято
	CreateType(ctx context.Context, name, description string) (*models.TransactionType, error)

	ListTypes(ctx context.Context) ([]*models.TransactionType, error)
}

// ErrorRepository журнал ошибок импорта (только добавление)
type ErrorRepository interface {
	SaveError(ctx context.Context, rec *models.ErrorRecord) error
	ListErrors(ctx context.Context, limit int) ([]*models.ErrorRecord, error)
}

// ImportHistoryRepository история импортов
type ImportHistoryRepository interface {
	SaveImportHistory(ctx context.Context, h *models.ImportHistory) error
	ListImportHistory(ctx context.Context, limit int) ([]*models.ImportHistory, error)
}

// Repository все хранилища одного бэкенда
type Repository interface {
	TransactionRepository
	TypeRepository
	ErrorRepository
	ImportHistoryRepository

	Ping(ctx context.Context) error
}
