package analytics

import (
	"github.com/rs/zerolog/log"

	"momo-analysis/internal/logger"
	"momo-analysis/internal/models"
	"momo-analysis/internal/services"
)

const serviceName = "analytics-service"

// EventProcessor обрабатывает события конвейера импорта из Kafka
type EventProcessor struct {
	analytics services.AnalyticsService
}

func NewEventProcessor(analytics services.AnalyticsService) *EventProcessor {
	return &EventProcessor{analytics: analytics}
}

// Process передает событие в сервис аналитики.
// Ошибка возвращается консьюмеру, сообщение при этом не подтверждается.
func (p *EventProcessor) Process(event *models.KafkaEvent) error {
	logger.LogEvent(logger.EventKafkaReceived, serviceName, "kafka", map[string]interface{}{
		"event_id":   event.EventID,
		"event_type": event.EventType,
	})

	if err := p.analytics.HandleEvent(event); err != nil {
		log.Error().Err(err).Str("event_id", event.EventID).Msg("Failed to process event")
		return err
	}

	return nil
}
