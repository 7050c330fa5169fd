package mocks

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"momo-analysis/internal/models"
)

// MockClientInterface является моком для redis.ClientInterface интерфейса
type MockClientInterface struct {
	mock.Mock
}

// SaveStats мок для SaveStats
func (m *MockClientInterface) SaveStats(stats *models.Stats) error {
	args := m.Called(stats)
	return args.Error(0)
}

// GetStats мок для GetStats
func (m *MockClientInterface) GetStats() (*models.Stats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

// InvalidateStats мок для InvalidateStats
func (m *MockClientInterface) InvalidateStats() error {
	args := m.Called()
	return args.Error(0)
}

// RecordTransaction мок для RecordTransaction
func (m *MockClientInterface) RecordTransaction(tx *models.KafkaTransactionData) error {
	args := m.Called(tx)
	return args.Error(0)
}

// GetCategoryCounts мок для GetCategoryCounts
func (m *MockClientInterface) GetCategoryCounts() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// GetMonthlyVolume мок для GetMonthlyVolume
func (m *MockClientInterface) GetMonthlyVolume() (map[string]decimal.Decimal, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// GetDailyCount мок для GetDailyCount
func (m *MockClientInterface) GetDailyCount(day string) (int64, error) {
	args := m.Called(day)
	return args.Get(0).(int64), args.Error(1)
}

// MarkEventProcessed мок для MarkEventProcessed
func (m *MockClientInterface) MarkEventProcessed(eventID string) (bool, error) {
	args := m.Called(eventID)
	return args.Bool(0), args.Error(1)
}

// ClearTransactionData мок для ClearTransactionData
func (m *MockClientInterface) ClearTransactionData() error {
	args := m.Called()
	return args.Error(0)
}

// Close мок для Close
func (m *MockClientInterface) Close() error {
	args := m.Called()
	return args.Error(0)
}
