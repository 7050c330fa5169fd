package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"momo-analysis/internal/models"
	"momo-analysis/internal/redis"
	"momo-analysis/internal/source"
	"momo-analysis/internal/storage"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TransactionServiceImpl реализует интерфейс TransactionService
type TransactionServiceImpl struct {
	repo        storage.Repository
	importer    BatchImporter
	redisClient redis.ClientInterface // Опциональный кэш статистики
}

// NewTransactionService создает новый сервис транзакций
func NewTransactionService(repo storage.Repository, importer BatchImporter) TransactionService {
	return &TransactionServiceImpl{
		repo:     repo,
		importer: importer,
	}
}

// NewTransactionServiceWithRedis создает новый сервис транзакций с кэшем статистики в Redis
func NewTransactionServiceWithRedis(repo storage.Repository, importer BatchImporter, redisClient redis.ClientInterface) TransactionService {
	return &TransactionServiceImpl{
		repo:        repo,
		importer:    importer,
		redisClient: redisClient,
	}
}

func (s *TransactionServiceImpl) ImportPayload(ctx context.Context, src string, format source.Format, payload []byte) (*models.ImportResult, error) {
	result, err := s.importer.ImportPayload(ctx, src, format, payload)
	s.invalidateStats(result)
	return result, err
}

func (s *TransactionServiceImpl) ImportMessages(ctx context.Context, src string, messages []models.RawMessage) (*models.ImportResult, error) {
	result, err := s.importer.ImportBatch(ctx, src, messages)
	s.invalidateStats(result)
	return result, err
}

func (s *TransactionServiceImpl) invalidateStats(result *models.ImportResult) {
	if s.redisClient == nil || result == nil || result.Succeeded == 0 {
		return
	}
	if err := s.redisClient.InvalidateStats(); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}
}

// ListTransactions нормализует параметры пагинации и делает выборку
func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	return s.repo.ListTransactions(ctx, filter)
}

func (s *TransactionServiceImpl) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	return s.repo.GetTransactionByID(ctx, id)
}

// GetStats возвращает статистику из кэша, при промахе считает по БД и кэширует
func (s *TransactionServiceImpl) GetStats(ctx context.Context) (*models.Stats, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.GetStats()
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log.Warn().Err(err).Msg("Failed to read stats cache")
		}
	}

	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if err := s.redisClient.SaveStats(stats); err != nil {
			log.Warn().Err(err).Msg("Failed to cache stats")
		}
	}

	return stats, nil
}

func (s *TransactionServiceImpl) ListTypes(ctx context.Context) ([]*models.TransactionType, error) {
	return s.repo.ListTypes(ctx)
}

func (s *TransactionServiceImpl) ListErrors(ctx context.Context, limit int) ([]*models.ErrorRecord, error) {
	return s.repo.ListErrors(ctx, clampLimit(limit))
}

func (s *TransactionServiceImpl) ListImportHistory(ctx context.Context, limit int) ([]*models.ImportHistory, error) {
	return s.repo.ListImportHistory(ctx, clampLimit(limit))
}

// ClearAllTransactions очищает транзакции в БД и данные аналитики в Redis
func (s *TransactionServiceImpl) ClearAllTransactions(ctx context.Context) error {
	if err := s.repo.ClearAllTransactions(ctx); err != nil {
		return err
	}

	if s.redisClient != nil {
		if err := s.redisClient.ClearTransactionData(); err != nil {
			log.Warn().Err(err).Msg("Failed to clear Redis data")
		}
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 500 {
		return 500
	}
	return limit
}
