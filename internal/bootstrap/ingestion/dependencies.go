package ingestion

import (
	"time"

	"github.com/rs/zerolog/log"

	"momo-analysis/internal/builder"
	"momo-analysis/internal/classifier"
	"momo-analysis/internal/config"
	"momo-analysis/internal/extractor"
	"momo-analysis/internal/generator"
	"momo-analysis/internal/importer"
	"momo-analysis/internal/kafka"
	"momo-analysis/internal/ledger"
	"momo-analysis/internal/redis"
	"momo-analysis/internal/registry"
	"momo-analysis/internal/services"
	"momo-analysis/internal/storage"
	"momo-analysis/internal/storage/sqlite"
)

// Dependencies содержит все зависимости для ingestion service
type Dependencies struct {
	StorageConn        *sqlite.SQLiteStorage
	StorageRepo        storage.Repository
	KafkaProducer      kafka.Producer // nil, если Kafka недоступна
	RedisClient        *redis.Client  // nil, если Redis недоступен
	Importer           *importer.Importer
	TransactionService services.TransactionService
	ClassifierService  services.ClassifierService
	Generator          *generator.SMSGenerator
}

// InitializeDependencies инициализирует все зависимости для ingestion service.
// Обязательна только SQLite: без Kafka события не публикуются, без Redis нет кэша статистики.
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	storageConn, err := sqlite.NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	storageRepo := sqlite.NewRepository(storageConn)

	log.Info().Msg("Connecting to Kafka...")
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Kafka is not available, import events will not be published")
		producer = nil
	} else {
		log.Info().Msg("Kafka producer connected successfully")
	}

	log.Info().Msg("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis is not available, stats will not be cached")
		redisClient = nil
	} else {
		log.Info().Msg("Redis connection established")
	}

	currency := cfg.Pipeline.CurrencyCode
	cls := classifier.New(currency)
	ext := extractor.New(currency, loadLocation(cfg.Pipeline.Timezone))

	imp := importer.New(importer.Config{
		Builder:   builder.New(ext, cls),
		Types:     registry.New(storageRepo),
		Store:     storageRepo,
		History:   storageRepo,
		Ledger:    ledger.New(storageRepo),
		Publisher: producer,
		Workers:   cfg.Pipeline.ImportWorkers,
	})

	var transactionService services.TransactionService
	if redisClient != nil {
		transactionService = services.NewTransactionServiceWithRedis(storageRepo, imp, redisClient)
	} else {
		transactionService = services.NewTransactionService(storageRepo, imp)
	}

	return &Dependencies{
		StorageConn:        storageConn,
		StorageRepo:        storageRepo,
		KafkaProducer:      producer,
		RedisClient:        redisClient,
		Importer:           imp,
		TransactionService: transactionService,
		ClassifierService:  services.NewClassifierService(cls, ext),
		Generator:          generator.NewSMSGenerator(currency),
	}, nil
}

// loadLocation часовой пояс дат в тексте SMS, UTC при ошибке
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("Unknown timezone, using UTC")
		return time.UTC
	}
	return loc
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			return err
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			return err
		}
	}
	if d.StorageConn != nil {
		if err := d.StorageConn.Close(); err != nil {
			return err
		}
	}
	return nil
}
