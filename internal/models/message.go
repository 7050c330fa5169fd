package models

import (
	"time"
)

// RawMessage исходное SMS от адаптера источника (файл или API)
type RawMessage struct {
	Body      string    `json:"body"`
	Timestamp time.Time `json:"date,omitempty"` // нулевое значение - дата не передана
	Address   string    `json:"address,omitempty"`
	Type      string    `json:"type,omitempty"`
}

// ErrorRecord запись журнала ошибок импорта
type ErrorRecord struct {
	ID         int64     `json:"id"`
	Message    string    `json:"message"`
	RawPayload string    `json:"raw_data"`
	LoggedAt   time.Time `json:"logged_at"`
}

// ImportError ошибка по одному сообщению (или по всему батчу, тогда RawMessage пустой)
type ImportError struct {
	Message    string      `json:"message"`
	RawMessage *RawMessage `json:"rawMessage"`
}

// ImportResult итог импорта одного батча
type ImportResult struct {
	BatchID   string        `json:"batchId"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Errors    []ImportError `json:"errors"`
}

// Status сводный статус батча: success, partial или failed
func (r *ImportResult) Status() string {
	switch {
	case r.Failed == 0 && r.Succeeded > 0:
		return ImportStatusSuccess
	case r.Succeeded > 0:
		return ImportStatusPartial
	default:
		return ImportStatusFailed
	}
}

const (
	ImportStatusSuccess = "success"
	ImportStatusPartial = "partial"
	ImportStatusFailed  = "failed"
)

// ImportHistory запись истории импорта
type ImportHistory struct {
	BatchID         string    `json:"batch_id"`
	Source          string    `json:"filename"`
	ImportedAt      time.Time `json:"import_date"`
	Status          string    `json:"status"`
	RecordsImported int       `json:"records_imported"`
	RecordsFailed   int       `json:"records_failed"`
}
