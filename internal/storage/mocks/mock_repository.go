package mocks

import (
	"context"

	"momo-analysis/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockRepository является моком для storage.Repository интерфейса
type MockRepository struct {
	mock.Mock
}

// SaveTransaction мок для SaveTransaction
func (m *MockRepository) SaveTransaction(ctx context.Context, msg *models.RawMessage, tx *models.Transaction) error {
	args := m.Called(ctx, msg, tx)
	return args.Error(0)
}

// GetTransactionByID мок для GetTransactionByID
func (m *MockRepository) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// ListTransactions мок для ListTransactions
func (m *MockRepository) ListTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionPage), args.Error(1)
}

// GetStats мок для GetStats
func (m *MockRepository) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

// ClearAllTransactions мок для ClearAllTransactions
func (m *MockRepository) ClearAllTransactions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetTypeByName мок для GetTypeByName
func (m *MockRepository) GetTypeByName(ctx context.Context, name string) (*models.TransactionType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionType), args.Error(1)
}

// CreateType мок для CreateType
func (m *MockRepository) CreateType(ctx context.Context, name, description string) (*models.TransactionType, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionType), args.Error(1)
}

// ListTypes мок для ListTypes
func (m *MockRepository) ListTypes(ctx context.Context) ([]*models.TransactionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TransactionType), args.Error(1)
}

// SaveError мок для SaveError
func (m *MockRepository) SaveError(ctx context.Context, rec *models.ErrorRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// ListErrors мок для ListErrors
func (m *MockRepository) ListErrors(ctx context.Context, limit int) ([]*models.ErrorRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ErrorRecord), args.Error(1)
}

// SaveImportHistory мок для SaveImportHistory
func (m *MockRepository) SaveImportHistory(ctx context.Context, h *models.ImportHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

// ListImportHistory мок для ListImportHistory
func (m *MockRepository) ListImportHistory(ctx context.Context, limit int) ([]*models.ImportHistory, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ImportHistory), args.Error(1)
}

// Ping мок для Ping
func (m *MockRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
