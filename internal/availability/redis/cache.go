package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"eventspark/internal/models"
)

const keyPrefix = "seatmap:"

// Cache keeps rendered seat maps in Redis for a short TTL so bursts of seat
// pickers do not hammer the ledger. Writers invalidate after every claim or
// release.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: client, TTL: ttl}
}

// GetSeatMap returns the cached view, or nil on a miss.
func (c *Cache) GetSeatMap(ctx context.Context, eventID string) (*models.SeatMapView, error) {
	raw, err := c.Client.Get(ctx, keyPrefix+eventID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("seat map cache get: %w", err)
	}

	var view models.SeatMapView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("seat map cache decode: %w", err)
	}
	return &view, nil
}

func (c *Cache) SetSeatMap(ctx context.Context, eventID string, view *models.SeatMapView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("seat map cache encode: %w", err)
	}
	if err := c.Client.Set(ctx, keyPrefix+eventID, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("seat map cache set: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, eventID string) error {
	if err := c.Client.Del(ctx, keyPrefix+eventID).Err(); err != nil {
		return fmt.Errorf("seat map cache invalidate: %w", err)
	}
	return nil
}
