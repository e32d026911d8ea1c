package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"demo/foodorders/internal/cache"
	"demo/foodorders/internal/model"
)

// Cached puts a read-through cache in front of another Repository.
// Writes go to the backend first and then drop the cached copy. Cache
// failures are logged and otherwise ignored.
type Cached struct {
	next   Repository
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(next Repository, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{next: next, cache: c, ttl: ttl, logger: logger}
}

func (c *Cached) UpsertOrder(ctx context.Context, o model.Order) error {
	if err := c.next.UpsertOrder(ctx, o); err != nil {
		return err
	}
	if err := c.cache.Delete(ctx, c.key(o.OrderID)); err != nil {
		c.logger.WarnContext(ctx, "cache invalidate failed", "order_id", o.OrderID, "error", err)
	}
	return nil
}

func (c *Cached) GetOrder(ctx context.Context, orderID string) (model.Order, bool, error) {
	key := c.key(orderID)

	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "cache get failed", "order_id", orderID, "error", err)
	} else if raw != "" {
		var o model.Order
		if err := json.Unmarshal([]byte(raw), &o); err == nil {
			return o, true, nil
		}
		c.logger.WarnContext(ctx, "cache entry corrupt", "order_id", orderID)
	}

	o, ok, err := c.next.GetOrder(ctx, orderID)
	if err != nil || !ok {
		return o, ok, err
	}

	if val, err := json.Marshal(o); err == nil {
		if err := c.cache.Set(ctx, key, string(val), c.ttl); err != nil {
			c.logger.WarnContext(ctx, "cache set failed", "order_id", orderID, "error", err)
		}
	}
	return o, true, nil
}

func (c *Cached) key(orderID string) string { return c.cache.GenerateKey("order", orderID) }
