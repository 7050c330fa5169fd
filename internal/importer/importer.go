package importer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"momo-analysis/internal/kafka"
	"momo-analysis/internal/logger"
	"momo-analysis/internal/models"
	"momo-analysis/internal/source"
	"momo-analysis/internal/storage"
)

const serviceName = "ingestion-service"

// ErrNoMessages пакет разобран, но сообщений в нем нет
var ErrNoMessages = errors.New("payload contains no messages")

// RecordBuilder собирает транзакцию из исходного сообщения
type RecordBuilder interface {
	Build(msg models.RawMessage) (*models.Transaction, error)
}

// TypeResolver возвращает id типа транзакции по имени категории
type TypeResolver interface {
	Resolve(ctx context.Context, name string) (int64, error)
}

// ErrorLedger журнал ошибок; запись не может завершиться ошибкой для вызывающего
type ErrorLedger interface {
	Record(ctx context.Context, reason string, raw any) *models.ErrorRecord
}

// Importer проводит батч сообщений через сборщик записи и сохраняет каждое сообщение независимо
type Importer struct {
	builder   RecordBuilder
	types     TypeResolver
	store     storage.TransactionRepository
	history   storage.ImportHistoryRepository
	ledger    ErrorLedger
	publisher kafka.Producer // может быть nil

	workers int
	now     func() time.Time
	newID   func() string
}

// Config зависимости импортера
type Config struct {
	Builder   RecordBuilder
	Types     TypeResolver
	Store     storage.TransactionRepository
	History   storage.ImportHistoryRepository
	Ledger    ErrorLedger
	Publisher kafka.Producer
	Workers   int
}

func New(cfg Config) *Importer {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Importer{
		builder:   cfg.Builder,
		types:     cfg.Types,
		store:     cfg.Store,
		history:   cfg.History,
		ledger:    cfg.Ledger,
		publisher: cfg.Publisher,
		workers:   workers,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ImportPayload декодирует пакет и импортирует сообщения.
// Ошибка возвращается только для BatchDecodeError; результат при этом тоже заполнен.
func (im *Importer) ImportPayload(ctx context.Context, src string, format source.Format, payload []byte) (*models.ImportResult, error) {
	messages, err := source.Decode(format, payload)
	if err == nil && len(messages) == 0 {
		err = ErrNoMessages
	}
	if err != nil {
		return im.reject(ctx, src, payload, err)
	}

	return im.importBatch(ctx, src, messages)
}

// ImportBatch импортирует уже декодированные сообщения.
// Пустой батч считается ошибкой всего пакета.
func (im *Importer) ImportBatch(ctx context.Context, src string, messages []models.RawMessage) (*models.ImportResult, error) {
	if len(messages) == 0 {
		return im.reject(ctx, src, nil, ErrNoMessages)
	}
	return im.importBatch(ctx, src, messages)
}

// reject оформляет отказ пакета: одна ошибка верхнего уровня, 0 успешных
func (im *Importer) reject(ctx context.Context, src string, payload []byte, cause error) (*models.ImportResult, error) {
	ctx = context.WithoutCancel(ctx)
	decodeErr := &BatchDecodeError{Source: src, Err: cause}

	result := &models.ImportResult{
		BatchID: im.newID(),
		Errors:  []models.ImportError{{Message: decodeErr.Error()}},
	}

	im.ledger.Record(ctx, decodeErr.Error(), truncate(string(payload), 4096))

	log.Warn().Err(cause).Str("batch_id", result.BatchID).Str("source", src).Msg("Batch rejected")
	logger.LogEvent(logger.EventBatchRejected, serviceName, "importer", map[string]interface{}{
		"batch_id": result.BatchID,
		"source":   src,
		"error":    cause.Error(),
	})

	im.finish(ctx, src, result)
	return result, decodeErr
}

func (im *Importer) importBatch(ctx context.Context, src string, messages []models.RawMessage) (*models.ImportResult, error) {
	// батч всегда доходит до конца, даже если клиент отключился
	ctx = context.WithoutCancel(ctx)

	batchID := im.newID()
	log.Info().Str("batch_id", batchID).Str("source", src).Int("messages", len(messages)).Msg("Batch import started")
	logger.LogEvent(logger.EventBatchStarted, serviceName, "importer", map[string]interface{}{
		"batch_id": batchID,
		"source":   src,
		"messages": len(messages),
	})

	outcomes := make([]*models.ImportError, len(messages))

	var g errgroup.Group
	g.SetLimit(im.workers)
	for i := range messages {
		g.Go(func() error {
			outcomes[i] = im.processMessage(ctx, batchID, messages[i])
			return nil
		})
	}
	_ = g.Wait()

	result := &models.ImportResult{
		BatchID: batchID,
		Errors:  make([]models.ImportError, 0),
	}
	for _, outcome := range outcomes {
		if outcome == nil {
			result.Succeeded++
			continue
		}
		result.Failed++
		result.Errors = append(result.Errors, *outcome)
	}

	log.Info().
		Str("batch_id", batchID).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("Batch import completed")

	im.finish(ctx, src, result)
	return result, nil
}

// finish пишет историю импорта и публикует итог батча
func (im *Importer) finish(ctx context.Context, src string, result *models.ImportResult) {
	status := result.Status()

	if im.history != nil {
		h := &models.ImportHistory{
			BatchID:         result.BatchID,
			Source:          src,
			ImportedAt:      im.now().UTC(),
			Status:          status,
			RecordsImported: result.Succeeded,
			RecordsFailed:   result.Failed,
		}
		if err := im.history.SaveImportHistory(ctx, h); err != nil {
			log.Error().Err(err).Str("batch_id", result.BatchID).Msg("Failed to save import history")
		}
	}

	logger.LogEvent(logger.EventBatchCompleted, serviceName, "importer", map[string]interface{}{
		"batch_id":  result.BatchID,
		"status":    status,
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	})

	im.publish(&models.KafkaEvent{
		EventID:   im.newID(),
		EventType: models.KafkaEventBatchCompleted,
		Timestamp: im.now().UTC(),
		Batch: &models.KafkaBatchData{
			BatchID:   result.BatchID,
			Source:    src,
			Status:    status,
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
		},
	})
}

// publish отправляет событие в Kafka; сбой шины не влияет на итог импорта
func (im *Importer) publish(event *models.KafkaEvent) {
	if im.publisher == nil {
		return
	}
	if err := im.publisher.SendEvent(event); err != nil {
		log.Warn().Err(err).Str("event_type", event.EventType).Msg("Failed to publish event")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
