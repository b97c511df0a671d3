package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	admindomain "github.com/Stuart1162/fizzyjuice/internal/admin/domain"
)

const strengthsKey = "fizzyjuice:analytics:strengths"

// AnalyticsCache keeps the latest strength tally.
type AnalyticsCache struct {
	rdb goredis.UniversalClient
}

func NewAnalyticsCache(rdb goredis.UniversalClient) *AnalyticsCache {
	return &AnalyticsCache{rdb: rdb}
}

// GetStrengths returns ok=false on a cache miss.
func (c *AnalyticsCache) GetStrengths(ctx context.Context) (*admindomain.StrengthStats, bool, error) {
	raw, err := c.rdb.Get(ctx, strengthsKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", strengthsKey, err)
	}
	var stats admindomain.StrengthStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", strengthsKey, err)
	}
	return &stats, true, nil
}

func (c *AnalyticsCache) SetStrengths(ctx context.Context, stats admindomain.StrengthStats, ttl time.Duration) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode strengths: %w", err)
	}
	return c.rdb.Set(ctx, strengthsKey, payload, ttl).Err()
}
