package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DB       DBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Server   ServerConfig
	Pipeline PipelineConfig
	Log      LogConfig
}

type DBConfig struct {
	DBPath string // Путь к файлу SQLite
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type KafkaConfig struct {
	Brokers          []string
	TransactionTopic string
	ConsumerGroupID  string
}

type ServerConfig struct {
	IngestionPort int
	AnalyticsPort int
	GRPCPort      int
}

// PipelineConfig параметры разбора и импорта SMS
type PipelineConfig struct {
	CurrencyCode  string // Код валюты в текстах SMS (RWF)
	Timezone      string // Часовой пояс для дат из текста сообщения
	ImportWorkers int    // Число параллельных обработчиков сообщений в одном батче
}

type LogConfig struct {
	Level string
}

func Load() *Config {
	// Загружаем .env файл, если он существует
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DB: DBConfig{
			DBPath: getEnv("DB_PATH", "./data/momo_analysis.db"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Brokers:          getEnvAsList("KAFKA_BROKERS", "localhost:9092"),
			TransactionTopic: getEnv("KAFKA_TRANSACTION_TOPIC", "momo.transactions.imported"),
			ConsumerGroupID:  getEnv("KAFKA_CONSUMER_GROUP", "momo-analytics-group"),
		},
		Server: ServerConfig{
			IngestionPort: getEnvAsInt("INGESTION_SERVICE_PORT", 8080),
			AnalyticsPort: getEnvAsInt("ANALYTICS_SERVICE_PORT", 8081),
			GRPCPort:      getEnvAsInt("GRPC_PORT", 50051),
		},
		Pipeline: PipelineConfig{
			CurrencyCode:  getEnv("CURRENCY_CODE", "RWF"),
			Timezone:      getEnv("TIMEZONE", "UTC"),
			ImportWorkers: getEnvAsInt("IMPORT_WORKERS", 4),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList разбирает список через запятую (например, несколько брокеров Kafka)
func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
