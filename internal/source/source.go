package source

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"momo-analysis/internal/models"
)

// Format формат пакета сообщений
type Format string

const (
	FormatAuto Format = ""
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

var (
	ErrEmptyPayload      = errors.New("empty payload")
	ErrUnsupportedFormat = errors.New("unsupported payload format")
)

// ParseFormat разбирает имя формата (xml, json, пусто - автоопределение)
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatXML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	}
}

// Decode превращает загруженный пакет в список сообщений.
// Ошибка означает, что пакет не является контейнером сообщений вообще.
func Decode(format Format, payload []byte) ([]models.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}

	if format == FormatAuto {
		format = detect(trimmed)
	}

	switch format {
	case FormatXML:
		return decodeXML(trimmed)
	case FormatJSON:
		return decodeJSON(trimmed)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func detect(payload []byte) Format {
	if payload[0] == '<' {
		return FormatXML
	}
	return FormatJSON
}

// ParseDate дата SMS: миллисекунды эпохи, RFC3339 или "2006-01-02 15:04:05" (UTC).
// Пустое или нераспознанное значение дает нулевое время - дата считается отсутствующей.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return time.Time{}
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return time.UnixMilli(int64(ms)).UTC()
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}
