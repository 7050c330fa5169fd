package extractor

import (
	"regexp"
	"time"

	"momo-analysis/internal/classifier"
	"momo-analysis/internal/models"
)

// Extractor извлекает типизированные поля из текста SMS.
// Не имеет состояния кроме скомпилированных шаблонов и безопасен для параллельного использования.
type Extractor struct {
	currency string
	location *time.Location

	amountRe  *regexp.Regexp
	feeRe     *regexp.Regexp
	balanceRe *regexp.Regexp
}

// New создает экстрактор для указанной валюты и часового пояса дат в тексте SMS.
// Пустая валюта означает RWF, nil часовой пояс - UTC.
func New(currency string, location *time.Location) *Extractor {
	if currency == "" {
		currency = classifier.DefaultCurrency
	}
	if location == nil {
		location = time.UTC
	}

	cur := regexp.QuoteMeta(currency)
	return &Extractor{
		currency:  currency,
		location:  location,
		amountRe:  regexp.MustCompile(`(?i)` + numberPattern + `\s*` + cur + `\b`),
		feeRe:     regexp.MustCompile(`(?i)\bfee(?:\s+was)?\s*:?\s*` + numberPattern + `\s*` + cur + `\b`),
		balanceRe: regexp.MustCompile(`(?i)\b(?:new\s+)?balance\s*:?\s*` + numberPattern + `\s*` + cur + `\b`),
	}
}

// Currency код валюты, с которым работает экстрактор
func (e *Extractor) Currency() string {
	return e.currency
}

// Extract извлекает все поля сообщения. Имена сторон зависят от категории,
// поэтому категорию определяют до вызова. transport - дата доставки SMS (может быть нулевой).
func (e *Extractor) Extract(body string, category models.Category, transport time.Time) models.ExtractedFields {
	sender, recipient := Parties(body, category)

	return models.ExtractedFields{
		TransactionID: TransactionID(body),
		Amount:        e.Amount(body),
		Fee:           e.Fee(body),
		Balance:       e.Balance(body),
		SenderName:    sender,
		RecipientName: recipient,
		PhoneNumber:   PhoneNumber(body),
		OccurredAt:    e.OccurredAt(body, transport),
	}
}
