package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"momo-analysis/internal/logger"
	"momo-analysis/internal/models"
	"momo-analysis/internal/storage"
)

// Ledger журнал ошибок импорта. Запись в журнал никогда не прерывает вызывающего:
// сбой хранилища только логируется.
type Ledger struct {
	store storage.ErrorRepository
	now   func() time.Time
}

func New(store storage.ErrorRepository) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// payload содержимое поля raw_data
type payload struct {
	Message any    `json:"message"`
	Error   string `json:"error"`
}

// Record добавляет запись о сбое. raw - исходное сообщение или фрагмент пакета.
func (l *Ledger) Record(ctx context.Context, reason string, raw any) *models.ErrorRecord {
	rec := &models.ErrorRecord{
		Message:  reason,
		LoggedAt: l.now().UTC(),
	}

	data, err := json.Marshal(payload{Message: raw, Error: reason})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode error payload")
		data = []byte(`{"error":` + quote(reason) + `}`)
	}
	rec.RawPayload = string(data)

	if err := l.store.SaveError(ctx, rec); err != nil {
		log.Error().Err(err).Str("reason", reason).Msg("Failed to write error ledger entry")
		return rec
	}

	logger.LogEvent(logger.EventErrorLogged, "pipeline", "ledger", map[string]interface{}{
		"error_id": rec.ID,
		"reason":   reason,
	})
	return rec
}

// Recent последние записи журнала
func (l *Ledger) Recent(ctx context.Context, limit int) ([]*models.ErrorRecord, error) {
	return l.store.ListErrors(ctx, limit)
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
