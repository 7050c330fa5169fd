package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	KafkaEventTransactionImported = "transaction_imported"
	KafkaEventBatchCompleted      = "batch_completed"
)

// KafkaEvent событие конвейера импорта в Kafka
type KafkaEvent struct {
	EventID     string                `json:"event_id"`
	EventType   string                `json:"event_type"`
	Timestamp   time.Time             `json:"timestamp"`
	Transaction *KafkaTransactionData `json:"transaction,omitempty"`
	Batch       *KafkaBatchData       `json:"batch,omitempty"`
}

// KafkaTransactionData данные сохраненной транзакции
type KafkaTransactionData struct {
	ID            int64           `json:"id"`
	BatchID       string          `json:"batch_id"`
	TransactionID string          `json:"transaction_id"`
	Category      Category        `json:"category"`
	Direction     Direction       `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Status        string          `json:"status"`
	OccurredAt    time.Time       `json:"transaction_date"`
}

// KafkaBatchData итог батча
type KafkaBatchData struct {
	BatchID   string `json:"batch_id"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}
