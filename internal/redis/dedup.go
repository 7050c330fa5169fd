package redis

import (
	"context"
	"fmt"
	"time"
)

// processedEventTTL сколько помнить обработанные события Kafka (повторная доставка at-least-once)
const processedEventTTL = 24 * time.Hour

// MarkEventProcessed возвращает true, если событие встречено впервые
func (c *Client) MarkEventProcessed(eventID string) (bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf("analytics:processed:%s", eventID)
	return c.rdb.SetNX(ctx, key, 1, processedEventTTL).Result()
}
