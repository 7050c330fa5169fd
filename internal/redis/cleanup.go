package redis

import (
	"context"
	"fmt"
)

// ClearTransactionData очищает кэш статистики и счетчики аналитики
func (c *Client) ClearTransactionData() error {
	ctx := context.Background()

	patterns := []string{
		"stats:*",
		"analytics:*",
	}

	for _, pattern := range patterns {
		iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to clear pattern %s: %w", pattern, err)
		}
	}

	return nil
}
