package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"momo-analysis/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

const (
	statsKey = "stats:summary"
	statsTTL = 5 * time.Minute
)

// SaveStats сохраняет статистику в Redis с TTL 5 минут
func (c *Client) SaveStats(stats *models.Stats) error {
	ctx := context.Background()

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	return c.rdb.Set(ctx, statsKey, data, statsTTL).Err()
}

// GetStats получает статистику из Redis
func (c *Client) GetStats() (*models.Stats, error) {
	ctx := context.Background()

	data, err := c.rdb.Get(ctx, statsKey).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	var stats models.Stats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	return &stats, nil
}

// InvalidateStats удаляет кэш статистики
func (c *Client) InvalidateStats() error {
	return c.rdb.Del(context.Background(), statsKey).Err()
}
