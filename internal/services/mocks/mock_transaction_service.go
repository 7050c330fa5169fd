package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"momo-analysis/internal/models"
	"momo-analysis/internal/source"
)

// MockTransactionService является моком для services.TransactionService интерфейса
type MockTransactionService struct {
	mock.Mock
}

// ImportPayload мок для ImportPayload
func (m *MockTransactionService) ImportPayload(ctx context.Context, src string, format source.Format, payload []byte) (*models.ImportResult, error) {
	args := m.Called(ctx, src, format, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

// ImportMessages мок для ImportMessages
func (m *MockTransactionService) ImportMessages(ctx context.Context, src string, messages []models.RawMessage) (*models.ImportResult, error) {
	args := m.Called(ctx, src, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

// ListTransactions мок для ListTransactions
func (m *MockTransactionService) ListTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionPage), args.Error(1)
}

// GetTransaction мок для GetTransaction
func (m *MockTransactionService) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// GetStats мок для GetStats
func (m *MockTransactionService) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

// ListTypes мок для ListTypes
func (m *MockTransactionService) ListTypes(ctx context.Context) ([]*models.TransactionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TransactionType), args.Error(1)
}

// ListErrors мок для ListErrors
func (m *MockTransactionService) ListErrors(ctx context.Context, limit int) ([]*models.ErrorRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ErrorRecord), args.Error(1)
}

// ListImportHistory мок для ListImportHistory
func (m *MockTransactionService) ListImportHistory(ctx context.Context, limit int) ([]*models.ImportHistory, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ImportHistory), args.Error(1)
}

// ClearAllTransactions мок для ClearAllTransactions
func (m *MockTransactionService) ClearAllTransactions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
