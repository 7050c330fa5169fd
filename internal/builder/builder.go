package builder

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"momo-analysis/internal/classifier"
	"momo-analysis/internal/extractor"
	"momo-analysis/internal/models"
)

// ErrEmptyBody тело сообщения пустое
var ErrEmptyBody = errors.New("empty message body")

// ParseError сообщение невозможно разобрать. Повторять бессмысленно.
type ParseError struct {
	Message models.RawMessage
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// failureMarker явные признаки неуспешной операции в тексте SMS
var failureMarker = regexp.MustCompile(`(?i)\b(?:failed|unsuccessful|not successful|declined|insufficient|reversed|cancell?ed)\b`)

// Builder собирает готовую к сохранению транзакцию из результатов экстрактора и классификатора
type Builder struct {
	extractor  *extractor.Extractor
	classifier *classifier.Classifier
	now        func() time.Time
	seq        atomic.Uint64
}

// Option настройка сборщика
type Option func(*Builder)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

func New(ext *extractor.Extractor, cls *classifier.Classifier, opts ...Option) *Builder {
	b := &Builder{
		extractor:  ext,
		classifier: cls,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build классифицирует сообщение, извлекает поля и применяет политики по умолчанию.
// Ошибка возвращается только для пустого тела сообщения.
func (b *Builder) Build(msg models.RawMessage) (*models.Transaction, error) {
	body := strings.TrimSpace(msg.Body)
	if body == "" {
		return nil, &ParseError{Message: msg, Err: ErrEmptyBody}
	}

	category := b.classifier.Classify(body)
	fields := b.extractor.Extract(body, category, msg.Timestamp)

	tx := &models.Transaction{
		TransactionID: fields.TransactionID,
		TypeName:      category,
		Direction:     models.DirectionOf(category),
		Amount:        fields.Amount,
		Fee:           fields.Fee,
		Balance:       fields.Balance,
		Sender:        fields.SenderName,
		Recipient:     fields.RecipientName,
		PhoneNumber:   fields.PhoneNumber,
		Status:        Status(body),
		RawMessage:    msg.Body,
	}

	if tx.TransactionID == "" {
		tx.TransactionID = b.NextID()
	}

	if fields.OccurredAt != nil {
		tx.OccurredAt = *fields.OccurredAt
	} else {
		tx.OccurredAt = b.now().UTC()
	}

	return tx, nil
}

// NextID синтезирует идентификатор TX<unix-ms>-<номер>, уникальный в пределах процесса
func (b *Builder) NextID() string {
	return fmt.Sprintf("TX%d-%d", b.now().UnixMilli(), b.seq.Add(1))
}

// Status FAILED только при явном признаке неуспеха, иначе SUCCESS
func Status(body string) models.TransactionStatus {
	if failureMarker.MatchString(body) {
		return models.StatusFailed
	}
	return models.StatusSuccess
}
