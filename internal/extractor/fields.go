package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numberPattern число с необязательными разделителями тысяч и дробной частью: 12,345.50
const numberPattern = `((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)`

// Метки идентификатора в порядке приоритета: первая найденная метка определяет идентификатор,
// даже если в тексте она стоит позже другой.
var (
	txIDPattern          = regexp.MustCompile(`(?i)\bTxId\s*:\s*(\w+)`)
	plainTxIDPattern     = regexp.MustCompile(`(?i)(\w*)\s*\bTransaction Id\s*:\s*(\w+)`)
	financialTxIDPattern = regexp.MustCompile(`(?i)\bFinancial Transaction Id\s*:\s*(\w+)`)
	externalTxIDPattern  = regexp.MustCompile(`(?i)\bExternal Transaction Id\s*:\s*(\w+)`)
)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:\+250|\b250|\b0)7\d{8}\b`),
	regexp.MustCompile(`\*+\d{3,}`),
}

// Amount первая сумма с кодом валюты, 0 если не найдена
func (e *Extractor) Amount(body string) decimal.Decimal {
	if v, ok := firstNumber(e.amountRe, body); ok {
		return v
	}
	return decimal.Zero
}

// Fee комиссия, 0 если не указана
func (e *Extractor) Fee(body string) decimal.Decimal {
	if v, ok := firstNumber(e.feeRe, body); ok {
		return v
	}
	return decimal.Zero
}

// Balance остаток после операции, nil если не указан
func (e *Extractor) Balance(body string) *decimal.Decimal {
	if v, ok := firstNumber(e.balanceRe, body); ok {
		return &v
	}
	return nil
}

// TransactionID идентификатор из текста или пустая строка
func TransactionID(body string) string {
	if m := txIDPattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if id := plainTransactionID(body); id != "" {
		return id
	}
	if m := financialTxIDPattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if m := externalTxIDPattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// plainTransactionID метка "Transaction Id:" без квалификатора Financial/External
func plainTransactionID(body string) string {
	for _, m := range plainTxIDPattern.FindAllStringSubmatch(body, -1) {
		switch strings.ToLower(m[1]) {
		case "financial", "external":
			continue
		}
		return m[2]
	}
	return ""
}

// PhoneNumber номер телефона в национальном формате или маскированный (***013)
func PhoneNumber(body string) *string {
	for _, re := range phonePatterns {
		if m := re.FindString(body); m != "" {
			return &m
		}
	}
	return nil
}

// ParseAmount разбирает число вида 12,345.50
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

func firstNumber(re *regexp.Regexp, body string) (decimal.Decimal, bool) {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return decimal.Zero, false
	}
	v, err := ParseAmount(m[1])
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
