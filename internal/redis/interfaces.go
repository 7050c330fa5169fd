package redis

import (
	"github.com/shopspring/decimal"

	"momo-analysis/internal/models"
)

// ClientInterface определяет интерфейс для работы с Redis
// Это позволяет легко создавать моки для тестирования
// Реализуется типом Client
type ClientInterface interface {
	// SaveStats кэширует агрегированную статистику
	SaveStats(stats *models.Stats) error

	// GetStats возвращает статистику из кэша (nil, если кэш пуст)
	GetStats() (*models.Stats, error)

	// InvalidateStats сбрасывает кэш статистики после импорта или очистки
	InvalidateStats() error

	// RecordTransaction обновляет счетчики аналитики по одной импортированной транзакции
	RecordTransaction(tx *models.KafkaTransactionData) error

	// GetCategoryCounts количество транзакций по категориям
	GetCategoryCounts() (map[string]int64, error)

	// GetMonthlyVolume объем по месяцам (YYYY-MM)
	GetMonthlyVolume() (map[string]decimal.Decimal, error)

	// GetDailyCount количество транзакций за день (YYYY-MM-DD)
	GetDailyCount(day string) (int64, error)

	// MarkEventProcessed отмечает событие обработанным; false - событие уже встречалось
	MarkEventProcessed(eventID string) (bool, error)

	// ClearTransactionData очищает все данные аналитики из Redis
	ClearTransactionData() error

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
