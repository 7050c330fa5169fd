package services

import (
	"context"

	"momo-analysis/internal/models"
	"momo-analysis/internal/source"
)

// TransactionService определяет интерфейс для импорта и чтения транзакций
type TransactionService interface {
	// ImportPayload декодирует загруженный пакет (xml/json) и импортирует сообщения
	ImportPayload(ctx context.Context, src string, format source.Format, payload []byte) (*models.ImportResult, error)

	// ImportMessages импортирует уже декодированные сообщения
	ImportMessages(ctx context.Context, src string, messages []models.RawMessage) (*models.ImportResult, error)

	// ListTransactions постраничный список с фильтрами
	ListTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error)

	// GetTransaction возвращает транзакцию или nil
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)

	// GetStats агрегированная статистика (с кэшем в Redis, если он подключен)
	GetStats(ctx context.Context) (*models.Stats, error)

	ListTypes(ctx context.Context) ([]*models.TransactionType, error)
	ListErrors(ctx context.Context, limit int) ([]*models.ErrorRecord, error)
	ListImportHistory(ctx context.Context, limit int) ([]*models.ImportHistory, error)

	// ClearAllTransactions очищает все транзакции
	ClearAllTransactions(ctx context.Context) error
}

// ClassifierService классифицирует текст без сохранения
type ClassifierService interface {
	Classify(body string) *models.ClassificationResult
}

// AnalyticsService ведет счетчики аналитики по событиям из Kafka
type AnalyticsService interface {
	// HandleEvent обрабатывает одно событие конвейера
	HandleEvent(event *models.KafkaEvent) error

	// Snapshot текущие значения счетчиков
	Snapshot() (*models.AnalyticsSnapshot, error)
}

// BatchImporter импорт батча (реализуется importer.Importer)
type BatchImporter interface {
	ImportPayload(ctx context.Context, src string, format source.Format, payload []byte) (*models.ImportResult, error)
	ImportBatch(ctx context.Context, src string, messages []models.RawMessage) (*models.ImportResult, error)
}
