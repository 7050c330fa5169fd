package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momo-analysis/internal/classifier"
	"momo-analysis/internal/extractor"
	"momo-analysis/internal/models"
)

func newClassifierService() ClassifierService {
	return NewClassifierService(classifier.New("RWF"), extractor.New("RWF", nil))
}

func TestClassifierService_Classify(t *testing.T) {
	service := newClassifierService()

	result := service.Classify("You have received 2000 RWF from Jane Smith (*********013) on your mobile money account at 2024-05-10 16:30:51. Your new balance:2000 RWF. Financial Transaction Id: 76662021700.")

	require.NotNil(t, result)
	assert.Equal(t, models.CategoryIncomingMoney, result.Category)
	assert.Equal(t, models.DirectionIncoming, result.Direction)
	assert.Equal(t, "incoming_money", result.Rule)
	assert.True(t, decimal.NewFromInt(2000).Equal(result.Fields.Amount))
	assert.Equal(t, "76662021700", result.Fields.TransactionID)
	require.NotNil(t, result.Fields.SenderName)
	assert.Equal(t, "Jane Smith", *result.Fields.SenderName)
}

func TestClassifierService_Uncategorized(t *testing.T) {
	service := newClassifierService()

	result := service.Classify("Hello, your OTP is 1234")

	assert.Equal(t, models.CategoryUncategorized, result.Category)
	assert.Equal(t, models.DirectionOutgoing, result.Direction)
	assert.Empty(t, result.Rule)
	assert.True(t, result.Fields.Amount.IsZero())
	assert.Nil(t, result.Fields.OccurredAt)
}
