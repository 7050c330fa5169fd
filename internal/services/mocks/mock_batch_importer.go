package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"momo-analysis/internal/models"
	"momo-analysis/internal/source"
)

// MockBatchImporter является моком для services.BatchImporter интерфейса
type MockBatchImporter struct {
	mock.Mock
}

// ImportPayload мок для ImportPayload
func (m *MockBatchImporter) ImportPayload(ctx context.Context, src string, format source.Format, payload []byte) (*models.ImportResult, error) {
	args := m.Called(ctx, src, format, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

// ImportBatch мок для ImportBatch
func (m *MockBatchImporter) ImportBatch(ctx context.Context, src string, messages []models.RawMessage) (*models.ImportResult, error) {
	args := m.Called(ctx, src, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}
