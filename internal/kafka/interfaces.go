package kafka

import (
	"context"

	"momo-analysis/internal/models"
)

// Producer определяет интерфейс для отправки событий конвейера в Kafka
type Producer interface {
	SendEvent(event *models.KafkaEvent) error

	Close() error
}

// Consumer читает события конвейера из Kafka до отмены контекста
type Consumer interface {
	Start(ctx context.Context) error

	Close() error
}

// EventHandler обработчик одного события
type EventHandler func(*models.KafkaEvent) error
