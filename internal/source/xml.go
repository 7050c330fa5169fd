package source

import (
	"encoding/xml"
	"fmt"

	"momo-analysis/internal/models"
)

// smsBackup корневой элемент выгрузки SMS Backup & Restore
type smsBackup struct {
	XMLName  xml.Name    `xml:"smses"`
	Messages []smsRecord `xml:"sms"`
}

type smsRecord struct {
	Address string `xml:"address,attr"`
	Date    string `xml:"date,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:"body,attr"`
}

func decodeXML(payload []byte) ([]models.RawMessage, error) {
	var backup smsBackup
	if err := xml.Unmarshal(payload, &backup); err != nil {
		return nil, fmt.Errorf("failed to decode xml payload: %w", err)
	}

	messages := make([]models.RawMessage, 0, len(backup.Messages))
	for _, rec := range backup.Messages {
		messages = append(messages, models.RawMessage{
			Body:      rec.Body,
			Timestamp: ParseDate(rec.Date),
			Address:   rec.Address,
			Type:      rec.Type,
		})
	}

	return messages, nil
}
