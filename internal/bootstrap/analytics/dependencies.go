package analytics

import (
	"github.com/rs/zerolog/log"

	"momo-analysis/internal/config"
	"momo-analysis/internal/kafka"
	"momo-analysis/internal/redis"
	"momo-analysis/internal/services"
)

// Dependencies содержит все зависимости для analytics service
type Dependencies struct {
	RedisClient      *redis.Client
	AnalyticsService services.AnalyticsService
	KafkaConsumer    kafka.Consumer
}

// InitializeDependencies инициализирует все зависимости для analytics service.
// Redis и Kafka обязательны.
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	log.Info().Msg("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("Redis connection established")

	analyticsService := services.NewAnalyticsService(redisClient)

	log.Info().Msg("Connecting to Kafka...")
	consumer, err := kafka.NewConsumer(cfg, NewEventProcessor(analyticsService).Process)
	if err != nil {
		redisClient.Close()
		return nil, err
	}
	log.Info().Msg("Kafka consumer connected successfully")

	return &Dependencies{
		RedisClient:      redisClient,
		AnalyticsService: analyticsService,
		KafkaConsumer:    consumer,
	}, nil
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	if d.KafkaConsumer != nil {
		if err := d.KafkaConsumer.Close(); err != nil {
			return err
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			return err
		}
	}
	return nil
}
