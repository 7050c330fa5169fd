package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"momo-analysis/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

const (
	categoryCountsKey = "analytics:categories"
	monthlyVolumeKey  = "analytics:volume:monthly"
	dailyCountTTL     = 48 * time.Hour
)

func dailyCountKey(day string) string {
	return fmt.Sprintf("analytics:daily:%s:count", day)
}

// RecordTransaction увеличивает счетчики категории, месячного объема и дневного количества
func (c *Client) RecordTransaction(tx *models.KafkaTransactionData) error {
	ctx := context.Background()
	day := tx.OccurredAt.UTC().Format("2006-01-02")
	month := tx.OccurredAt.UTC().Format("2006-01")

	pipe := c.rdb.TxPipeline()
	pipe.HIncrBy(ctx, categoryCountsKey, string(tx.Category), 1)
	pipe.HIncrByFloat(ctx, monthlyVolumeKey, month, tx.Amount.InexactFloat64())
	pipe.Incr(ctx, dailyCountKey(day))
	pipe.Expire(ctx, dailyCountKey(day), dailyCountTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// GetCategoryCounts количество транзакций по категориям
func (c *Client) GetCategoryCounts() (map[string]int64, error) {
	ctx := context.Background()

	raw, err := c.rdb.HGetAll(ctx, categoryCountsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get category counts: %w", err)
	}

	counts := make(map[string]int64, len(raw))
	for category, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid counter for %s: %w", category, err)
		}
		counts[category] = n
	}
	return counts, nil
}

// GetMonthlyVolume объем транзакций по месяцам
func (c *Client) GetMonthlyVolume() (map[string]decimal.Decimal, error) {
	ctx := context.Background()

	raw, err := c.rdb.HGetAll(ctx, monthlyVolumeKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly volume: %w", err)
	}

	volume := make(map[string]decimal.Decimal, len(raw))
	for month, value := range raw {
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid volume for %s: %w", month, err)
		}
		volume[month] = amount
	}
	return volume, nil
}

// GetDailyCount получает количество транзакций за день
func (c *Client) GetDailyCount(day string) (int64, error) {
	ctx := context.Background()
	count, err := c.rdb.Get(ctx, dailyCountKey(day)).Int64()
	if err == redisv9.Nil {
		return 0, nil
	}
	return count, err
}
