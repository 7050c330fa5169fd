package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus итоговый статус операции, указанный в SMS
type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "SUCCESS"
	StatusFailed  TransactionStatus = "FAILED"
)

// TransactionType запись справочника типов транзакций
type TransactionType struct {
	ID          int64  `json:"id"`
	Name        string `json:"type_name"`
	Description string `json:"description"`
}

// ExtractedFields поля, извлеченные из текста одного SMS.
// Amount и Fee никогда не бывают пустыми: при отсутствии совпадения это 0.
type ExtractedFields struct {
	TransactionID string           `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	Fee           decimal.Decimal  `json:"fee"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	SenderName    *string          `json:"sender,omitempty"`
	RecipientName *string          `json:"recipient,omitempty"`
	PhoneNumber   *string          `json:"phone_number,omitempty"`
	OccurredAt    *time.Time       `json:"transaction_date,omitempty"`
}

// Transaction нормализованная запись о транзакции мобильных денег
type Transaction struct {
	ID              int64             `json:"id"`
	TransactionID   string            `json:"transaction_id"`
	TypeID          int64             `json:"type_id"`
	TypeName        Category          `json:"type_name"`
	Direction       Direction         `json:"direction"`
	Amount          decimal.Decimal   `json:"amount"`
	Fee             decimal.Decimal   `json:"fee"`
	Balance         *decimal.Decimal  `json:"balance,omitempty"`
	Sender          *string           `json:"sender,omitempty"`
	Recipient       *string           `json:"recipient,omitempty"`
	PhoneNumber     *string           `json:"phone_number,omitempty"`
	OccurredAt      time.Time         `json:"transaction_date"`
	Status          TransactionStatus `json:"status"`
	RawMessage      string            `json:"raw_message"`
	SourceMessageID *int64            `json:"source_message_id,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// TransactionFilter параметры выборки списка транзакций
type TransactionFilter struct {
	Search    string
	TypeID    int64
	Date      *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Page      int
	Limit     int
}

// Offset смещение для постраничной выборки (страницы нумеруются с 1)
func (f TransactionFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// TransactionPage страница результатов со сведениями о пагинации
type TransactionPage struct {
	Transactions []*Transaction `json:"transactions"`
	Pagination   Pagination     `json:"pagination"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	Limit       int `json:"limit"`
}

// TypeCount количество транзакций по типу
type TypeCount struct {
	TypeName string `json:"type_name"`
	Count    int64  `json:"count"`
}

// MonthlyVolume суммарный объем за месяц (YYYY-MM)
type MonthlyVolume struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// Stats агрегированная статистика по всем транзакциям
type Stats struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalVolume       decimal.Decimal `json:"totalVolume"`
	AverageAmount     decimal.Decimal `json:"averageAmount"`
	TotalFees         decimal.Decimal `json:"totalFees"`
	SuccessRate       int             `json:"successRate"`
	TypeDistribution  []TypeCount     `json:"typeDistribution"`
	MonthlyVolume     []MonthlyVolume `json:"monthlyVolume"`
}
