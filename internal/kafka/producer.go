package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"

	"momo-analysis/internal/config"
	"momo-analysis/internal/logger"
	"momo-analysis/internal/models"
)

type ProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg *config.Config) (Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka producer created successfully")
	return newProducer(producer, cfg.Kafka.TransactionTopic), nil
}

func newProducer(producer sarama.SyncProducer, topic string) *ProducerImpl {
	return &ProducerImpl{
		producer: producer,
		topic:    topic,
	}
}

func (p *ProducerImpl) SendEvent(event *models.KafkaEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(eventKey(event)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	log.Debug().
		Str("topic", p.topic).
		Str("event_type", event.EventType).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Message sent")

	logger.LogEvent(logger.EventKafkaSent, "ingestion-service", "kafka", map[string]interface{}{
		"event_type": event.EventType,
		"partition":  partition,
		"offset":     offset,
	})
	return nil
}

// eventKey события одного батча попадают в одну партицию
func eventKey(event *models.KafkaEvent) string {
	switch {
	case event.Transaction != nil:
		return event.Transaction.BatchID
	case event.Batch != nil:
		return event.Batch.BatchID
	default:
		return event.EventID
	}
}

func (p *ProducerImpl) Close() error {
	return p.producer.Close()
}
