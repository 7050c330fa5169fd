package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"momo-analysis/internal/logger"
	"momo-analysis/internal/models"
)

// persistAttempts первая попытка и не более одного повтора
const persistAttempts = 2

// processMessage Parsing -> Persisting -> Recorded | Skipped.
// nil означает, что сообщение сохранено.
func (im *Importer) processMessage(ctx context.Context, batchID string, msg models.RawMessage) *models.ImportError {
	tx, err := im.builder.Build(msg)
	if err != nil {
		return im.skip(ctx, batchID, msg, err)
	}

	logger.LogEvent(logger.EventMessageParsed, serviceName, "builder", map[string]interface{}{
		"batch_id":       batchID,
		"transaction_id": tx.TransactionID,
		"type":           string(tx.TypeName),
	})

	if err := im.persist(ctx, &msg, tx); err != nil {
		return im.skip(ctx, batchID, msg, &PersistenceError{Message: msg, Err: err})
	}

	logger.LogEvent(logger.EventTransactionSaved, serviceName, "importer", map[string]interface{}{
		"batch_id":       batchID,
		"id":             tx.ID,
		"transaction_id": tx.TransactionID,
		"type":           string(tx.TypeName),
	})

	im.publish(&models.KafkaEvent{
		EventID:   im.newID(),
		EventType: models.KafkaEventTransactionImported,
		Timestamp: im.now().UTC(),
		Transaction: &models.KafkaTransactionData{
			ID:            tx.ID,
			BatchID:       batchID,
			TransactionID: tx.TransactionID,
			Category:      tx.TypeName,
			Direction:     tx.Direction,
			Amount:        tx.Amount,
			Fee:           tx.Fee,
			Status:        string(tx.Status),
			OccurredAt:    tx.OccurredAt,
		},
	})

	return nil
}

// persist разрешает тип и сохраняет транзакцию; при сбое одна повторная попытка
func (im *Importer) persist(ctx context.Context, msg *models.RawMessage, tx *models.Transaction) error {
	var lastErr error
	for attempt := 1; attempt <= persistAttempts; attempt++ {
		typeID, err := im.types.Resolve(ctx, string(tx.TypeName))
		if err != nil {
			lastErr = fmt.Errorf("failed to resolve type: %w", err)
		} else {
			tx.TypeID = typeID
			if err := im.store.SaveTransaction(ctx, msg, tx); err != nil {
				lastErr = err
			} else {
				return nil
			}
		}

		log.Warn().Err(lastErr).Int("attempt", attempt).Msg("Failed to persist message")
	}
	return lastErr
}

// skip фиксирует сбой сообщения в журнале ошибок и продолжает батч
func (im *Importer) skip(ctx context.Context, batchID string, msg models.RawMessage, err error) *models.ImportError {
	im.ledger.Record(ctx, err.Error(), msg)

	logger.LogEvent(logger.EventMessageSkipped, serviceName, "importer", map[string]interface{}{
		"batch_id": batchID,
		"error":    err.Error(),
	})

	raw := msg
	return &models.ImportError{
		Message:    err.Error(),
		RawMessage: &raw,
	}
}
