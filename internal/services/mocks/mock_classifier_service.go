package mocks

import (
	"github.com/stretchr/testify/mock"

	"momo-analysis/internal/models"
)

// MockClassifierService является моком для services.ClassifierService интерфейса
type MockClassifierService struct {
	mock.Mock
}

// Classify мок для Classify
func (m *MockClassifierService) Classify(body string) *models.ClassificationResult {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.ClassificationResult)
}

// MockAnalyticsService является моком для services.AnalyticsService интерфейса
type MockAnalyticsService struct {
	mock.Mock
}

// HandleEvent мок для HandleEvent
func (m *MockAnalyticsService) HandleEvent(event *models.KafkaEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// Snapshot мок для Snapshot
func (m *MockAnalyticsService) Snapshot() (*models.AnalyticsSnapshot, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsSnapshot), args.Error(1)
}
