package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"

	"momo-analysis/internal/config"
	"momo-analysis/internal/logger"
	"momo-analysis/internal/models"
)

type ConsumerImpl struct {
	consumer sarama.ConsumerGroup
	topic    string
	handler  EventHandler
}

func NewConsumer(cfg *config.Config, handler EventHandler) (Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true
	config.Version = sarama.V2_8_0_0

	consumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	log.Info().Str("group", cfg.Kafka.ConsumerGroupID).Msg("Kafka consumer created successfully")
	return &ConsumerImpl{
		consumer: consumer,
		topic:    cfg.Kafka.TransactionTopic,
		handler:  handler,
	}, nil
}

func (c *ConsumerImpl) Start(ctx context.Context) error {
	topics := []string{c.topic}

	consumerHandler := &consumerGroupHandler{
		handler: c.handler,
	}

	wg := &sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			if err := c.consumer.Consume(ctx, topics, consumerHandler); err != nil {
				log.Error().Err(err).Msg("Error from consumer")
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case err := <-c.consumer.Errors():
				if err != nil {
					log.Error().Err(err).Msg("Consumer error")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Consumer context cancelled, shutting down...")
	wg.Wait()
	return c.consumer.Close()
}

func (c *ConsumerImpl) Close() error {
	return c.consumer.Close()
}

type consumerGroupHandler struct {
	handler EventHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			h.handleMessage(message)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// handleMessage декодирует и обрабатывает одно сообщение.
// Ошибки только логируются: битое сообщение не должно останавливать чтение партиции.
func (h *consumerGroupHandler) handleMessage(message *sarama.ConsumerMessage) {
	var event models.KafkaEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		log.Warn().Err(err).Int64("offset", message.Offset).Msg("Error unmarshaling message")
		return
	}

	logger.LogEvent(logger.EventKafkaReceived, "analytics-service", "kafka", map[string]interface{}{
		"event_type": event.EventType,
		"partition":  message.Partition,
		"offset":     message.Offset,
	})

	if err := h.handler(&event); err != nil {
		log.Error().Err(err).Str("event_id", event.EventID).Msg("Error handling message")
	}
}
