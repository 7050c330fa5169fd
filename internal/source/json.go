package source

import (
	"encoding/json"
	"fmt"
	"strings"

	"momo-analysis/internal/models"
)

// jsonMessage элемент JSON-пакета. date может быть числом или строкой.
type jsonMessage struct {
	Body    string          `json:"body"`
	Date    json.RawMessage `json:"date"`
	Address string          `json:"address"`
	Type    json.RawMessage `json:"type"`
}

func decodeJSON(payload []byte) ([]models.RawMessage, error) {
	var items []jsonMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		// допускаем обертку {"messages": [...]}
		var wrapped struct {
			Messages []jsonMessage `json:"messages"`
		}
		if errWrapped := json.Unmarshal(payload, &wrapped); errWrapped != nil || wrapped.Messages == nil {
			return nil, fmt.Errorf("failed to decode json payload: %w", err)
		}
		items = wrapped.Messages
	}

	messages := make([]models.RawMessage, 0, len(items))
	for _, item := range items {
		messages = append(messages, models.RawMessage{
			Body:      item.Body,
			Timestamp: ParseDate(rawScalar(item.Date)),
			Address:   item.Address,
			Type:      rawScalar(item.Type),
		})
	}

	return messages, nil
}

// rawScalar строковое представление JSON-скаляра без кавычек
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
