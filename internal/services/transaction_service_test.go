package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"momo-analysis/internal/models"
	redismocks "momo-analysis/internal/redis/mocks"
	servicemocks "momo-analysis/internal/services/mocks"
	"momo-analysis/internal/source"
	storagemocks "momo-analysis/internal/storage/mocks"
)

func TestNewTransactionService(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	mockImporter := new(servicemocks.MockBatchImporter)

	service := NewTransactionService(mockRepo, mockImporter)

	assert.NotNil(t, service)
	impl, ok := service.(*TransactionServiceImpl)
	require.True(t, ok)
	assert.Equal(t, mockRepo, impl.repo)
	assert.Equal(t, mockImporter, impl.importer)
	assert.Nil(t, impl.redisClient)
}

func TestTransactionService_ImportPayload_InvalidatesCache(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	mockImporter := new(servicemocks.MockBatchImporter)
	mockRedis := new(redismocks.MockClientInterface)
	service := NewTransactionServiceWithRedis(mockRepo, mockImporter, mockRedis)

	ctx := context.Background()
	payload := []byte(`<smses></smses>`)
	result := &models.ImportResult{BatchID: "b1", Succeeded: 2}

	mockImporter.On("ImportPayload", ctx, "sms.xml", source.FormatXML, payload).Return(result, nil)
	mockRedis.On("InvalidateStats").Return(nil)

	got, err := service.ImportPayload(ctx, "sms.xml", source.FormatXML, payload)

	require.NoError(t, err)
	assert.Equal(t, result, got)
	mockImporter.AssertExpectations(t)
	mockRedis.AssertExpectations(t)
}

func TestTransactionService_ImportMessages_NothingSaved(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	mockImporter := new(servicemocks.MockBatchImporter)
	mockRedis := new(redismocks.MockClientInterface)
	service := NewTransactionServiceWithRedis(mockRepo, mockImporter, mockRedis)

	ctx := context.Background()
	messages := []models.RawMessage{{Body: ""}}
	result := &models.ImportResult{BatchID: "b1", Failed: 1}

	mockImporter.On("ImportBatch", ctx, "api", messages).Return(result, nil)

	got, err := service.ImportMessages(ctx, "api", messages)

	require.NoError(t, err)
	assert.Equal(t, 1, got.Failed)
	// Ничего не сохранено, кэш не трогаем
	mockRedis.AssertNotCalled(t, "InvalidateStats")
}

func TestTransactionService_ImportPayload_DecodeError(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	mockImporter := new(servicemocks.MockBatchImporter)
	service := NewTransactionService(mockRepo, mockImporter)

	ctx := context.Background()
	result := &models.ImportResult{BatchID: "b1", Errors: []models.ImportError{{Message: "bad"}}}
	mockImporter.On("ImportPayload", ctx, "x", source.FormatAuto, []byte("garbage")).
		Return(result, errors.New("decode failed"))

	got, err := service.ImportPayload(ctx, "x", source.FormatAuto, []byte("garbage"))

	assert.Error(t, err)
	assert.Equal(t, result, got)
}

func TestTransactionService_ListTransactions_NormalizesPaging(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	service := NewTransactionService(mockRepo, new(servicemocks.MockBatchImporter))

	ctx := context.Background()
	page := &models.TransactionPage{Pagination: models.Pagination{CurrentPage: 1, Limit: 10}}

	mockRepo.On("ListTransactions", ctx, mock.MatchedBy(func(f models.TransactionFilter) bool {
		return f.Page == 1 && f.Limit == defaultPageSize && f.Search == "john"
	})).Return(page, nil).Once()
	mockRepo.On("ListTransactions", ctx, mock.MatchedBy(func(f models.TransactionFilter) bool {
		return f.Page == 3 && f.Limit == maxPageSize
	})).Return(page, nil).Once()

	_, err := service.ListTransactions(ctx, models.TransactionFilter{Search: "john"})
	require.NoError(t, err)

	_, err = service.ListTransactions(ctx, models.TransactionFilter{Page: 3, Limit: 10000})
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestTransactionService_GetTransaction(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	service := NewTransactionService(mockRepo, new(servicemocks.MockBatchImporter))

	ctx := context.Background()
	tx := &models.Transaction{ID: 7, TransactionID: "76662021700"}
	mockRepo.On("GetTransactionByID", ctx, int64(7)).Return(tx, nil)
	mockRepo.On("GetTransactionByID", ctx, int64(8)).Return(nil, nil)

	got, err := service.GetTransaction(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "76662021700", got.TransactionID)

	got, err = service.GetTransaction(ctx, 8)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransactionService_GetStats_CacheHit(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	mockRedis := new(redismocks.MockClientInterface)
	service := NewTransactionServiceWithRedis(mockRepo, new(servicemocks.MockBatchImporter), mockRedis)

	cached := &models.Stats{TotalTransactions: 5}
	mockRedis.On("GetStats").Return(cached, nil)

	stats, err := service.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalTransactions)
	mockRepo.AssertNotCalled(t, "GetStats", mock.Anything)
}

func TestTransactionService_GetStats_CacheMiss(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	mockRedis := new(redismocks.MockClientInterface)
	service := NewTransactionServiceWithRedis(mockRepo, new(servicemocks.MockBatchImporter), mockRedis)

	ctx := context.Background()
	stats := &models.Stats{TotalTransactions: 3, TotalVolume: decimal.NewFromInt(900)}
	mockRedis.On("GetStats").Return(nil, nil)
	mockRepo.On("GetStats", ctx).Return(stats, nil)
	mockRedis.On("SaveStats", stats).Return(nil)

	got, err := service.GetStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, stats, got)
	mockRepo.AssertExpectations(t)
	mockRedis.AssertExpectations(t)
}

func TestTransactionService_GetStats_RedisErrorFallsBack(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	mockRedis := new(redismocks.MockClientInterface)
	service := NewTransactionServiceWithRedis(mockRepo, new(servicemocks.MockBatchImporter), mockRedis)

	ctx := context.Background()
	stats := &models.Stats{TotalTransactions: 1}
	mockRedis.On("GetStats").Return(nil, errors.New("connection refused"))
	mockRepo.On("GetStats", ctx).Return(stats, nil)
	mockRedis.On("SaveStats", stats).Return(errors.New("connection refused"))

	got, err := service.GetStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalTransactions)
}

func TestTransactionService_GetStats_RepositoryError(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	service := NewTransactionService(mockRepo, new(servicemocks.MockBatchImporter))

	ctx := context.Background()
	mockRepo.On("GetStats", ctx).Return(nil, errors.New("database error"))

	stats, err := service.GetStats(ctx)

	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestTransactionService_ListErrorsClampsLimit(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	service := NewTransactionService(mockRepo, new(servicemocks.MockBatchImporter))

	ctx := context.Background()
	mockRepo.On("ListErrors", ctx, 50).Return([]*models.ErrorRecord{}, nil)
	mockRepo.On("ListImportHistory", ctx, 500).Return([]*models.ImportHistory{}, nil)

	_, err := service.ListErrors(ctx, 0)
	require.NoError(t, err)
	_, err = service.ListImportHistory(ctx, 100000)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestTransactionService_ClearAllTransactions(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	mockRedis := new(redismocks.MockClientInterface)
	service := NewTransactionServiceWithRedis(mockRepo, new(servicemocks.MockBatchImporter), mockRedis)

	ctx := context.Background()
	mockRepo.On("ClearAllTransactions", ctx).Return(nil)
	mockRedis.On("ClearTransactionData").Return(nil)

	require.NoError(t, service.ClearAllTransactions(ctx))

	mockRepo.AssertExpectations(t)
	mockRedis.AssertExpectations(t)
}

func TestTransactionService_ClearAllTransactions_RepositoryError(t *testing.T) {
	mockRepo := new(storagemocks.MockRepository)
	mockRedis := new(redismocks.MockClientInterface)
	service := NewTransactionServiceWithRedis(mockRepo, new(servicemocks.MockBatchImporter), mockRedis)

	ctx := context.Background()
	mockRepo.On("ClearAllTransactions", ctx).Return(errors.New("database error"))

	err := service.ClearAllTransactions(ctx)

	assert.Error(t, err)
	mockRedis.AssertNotCalled(t, "ClearTransactionData")
}
