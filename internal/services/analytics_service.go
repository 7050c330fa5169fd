package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"momo-analysis/internal/logger"
	"momo-analysis/internal/models"
	"momo-analysis/internal/redis"
)

// AnalyticsServiceImpl реализует интерфейс AnalyticsService поверх счетчиков Redis
type AnalyticsServiceImpl struct {
	redisClient redis.ClientInterface
	now         func() time.Time
}

// NewAnalyticsService создает сервис аналитики
func NewAnalyticsService(redisClient redis.ClientInterface) AnalyticsService {
	return &AnalyticsServiceImpl{redisClient: redisClient, now: time.Now}
}

// HandleEvent обновляет счетчики. Повторно доставленные события пропускаются.
func (s *AnalyticsServiceImpl) HandleEvent(event *models.KafkaEvent) error {
	first, err := s.redisClient.MarkEventProcessed(event.EventID)
	if err != nil {
		return fmt.Errorf("failed to mark event: %w", err)
	}
	if !first {
		log.Debug().Str("event_id", event.EventID).Msg("Duplicate event skipped")
		return nil
	}

	switch event.EventType {
	case models.KafkaEventTransactionImported:
		if event.Transaction == nil {
			return fmt.Errorf("event %s has no transaction data", event.EventID)
		}
		if err := s.redisClient.RecordTransaction(event.Transaction); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		logger.LogEvent(logger.EventRedisUpdated, "analytics-service", "redis", map[string]interface{}{
			"transaction_id": event.Transaction.TransactionID,
			"category":       string(event.Transaction.Category),
		})

	case models.KafkaEventBatchCompleted:
		// статистика в кэше устарела
		if err := s.redisClient.InvalidateStats(); err != nil {
			return fmt.Errorf("failed to invalidate stats: %w", err)
		}
		if event.Batch != nil {
			log.Info().
				Str("batch_id", event.Batch.BatchID).
				Str("status", event.Batch.Status).
				Int("succeeded", event.Batch.Succeeded).
				Int("failed", event.Batch.Failed).
				Msg("Batch completed")
		}

	default:
		log.Warn().Str("event_type", event.EventType).Msg("Unknown event type")
	}

	return nil
}

// Snapshot текущие счетчики аналитики
func (s *AnalyticsServiceImpl) Snapshot() (*models.AnalyticsSnapshot, error) {
	counts, err := s.redisClient.GetCategoryCounts()
	if err != nil {
		return nil, err
	}

	volume, err := s.redisClient.GetMonthlyVolume()
	if err != nil {
		return nil, err
	}

	today, err := s.redisClient.GetDailyCount(s.now().UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	return &models.AnalyticsSnapshot{
		CategoryCounts: counts,
		MonthlyVolume:  volume,
		TodayCount:     today,
	}, nil
}
