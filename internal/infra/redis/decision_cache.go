package redis

import (
	"context"
	"encoding/json"
	"time"

	"freight-assignment-engine/internal/domain/model"
	"freight-assignment-engine/internal/domain/ports/repository"
)

var _ repository.DecisionCacheRepository = (*DecisionCache)(nil)

// DecisionCache keeps the latest optimization decision per order under
// "orders:<orderID>:assignment" with a bounded TTL. Entries always expire;
// the assignment store remains the system-of-record.
type DecisionCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewDecisionCache(client RedisClient, ttl time.Duration) *DecisionCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &DecisionCache{client: client, ttl: ttl}
}

func decisionKey(orderID string) string {
	return "orders:" + orderID + ":assignment"
}

func (c *DecisionCache) SetDecision(ctx context.Context, d *model.CachedDecision) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, decisionKey(d.OrderID), data, c.ttl)
}
