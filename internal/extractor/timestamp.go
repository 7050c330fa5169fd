package extractor

import (
	"regexp"
	"time"
)

// BodyTimeLayout формат даты внутри текста SMS
const BodyTimeLayout = "2006-01-02 15:04:05"

var bodyTimestamp = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

// OccurredAt дата операции: сначала из текста, затем дата доставки SMS.
// nil означает, что обе отсутствуют и время проставит сборщик записи.
func (e *Extractor) OccurredAt(body string, transport time.Time) *time.Time {
	if m := bodyTimestamp.FindString(body); m != "" {
		if t, err := time.ParseInLocation(BodyTimeLayout, m, e.location); err == nil {
			t = t.UTC()
			return &t
		}
	}

	if !transport.IsZero() {
		t := transport.UTC()
		return &t
	}

	return nil
}
