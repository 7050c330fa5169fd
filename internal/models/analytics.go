package models

import (
	"github.com/shopspring/decimal"
)

// ClassificationResult результат классификации одного текста без сохранения
type ClassificationResult struct {
	Category  Category        `json:"category"`
	Direction Direction       `json:"direction"`
	Rule      string          `json:"rule,omitempty"` // пусто для Uncategorized
	Fields    ExtractedFields `json:"fields"`
}

// AnalyticsSnapshot счетчики, которые analytics-service ведет в Redis
type AnalyticsSnapshot struct {
	CategoryCounts map[string]int64           `json:"category_counts"`
	MonthlyVolume  map[string]decimal.Decimal `json:"monthly_volume"`
	TodayCount     int64                      `json:"today_count"`
}
