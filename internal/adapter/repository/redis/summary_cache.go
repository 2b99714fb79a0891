package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

const (
	totalDebtKey     = "summary:total_debt"
	monthlyKeyPrefix = "summary:monthly:"
)

// SummaryCache implements domain.SummaryCache using Redis. Cached values are
// dropped wholesale whenever any payment is written; a TTL bounds staleness
// in case an invalidation is lost.
type SummaryCache struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewSummaryCache creates a new Redis-backed SummaryCache.
func NewSummaryCache(client *redis.Client, logger *slog.Logger, ttl time.Duration) *SummaryCache {
	return &SummaryCache{
		client: client,
		logger: logger.With("component", "summary_cache"),
		ttl:    ttl,
	}
}

func monthlyKey(month, year int) string {
	return monthlyKeyPrefix + strconv.Itoa(year) + ":" + strconv.Itoa(month)
}

func (c *SummaryCache) GetTotalDebt(ctx context.Context) (float64, bool, error) {
	val, err := c.client.Get(ctx, totalDebtKey).Float64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get total debt: %w", err)
	}
	return val, true, nil
}

func (c *SummaryCache) SetTotalDebt(ctx context.Context, total float64) error {
	if err := c.client.Set(ctx, totalDebtKey, total, c.ttl).Err(); err != nil {
		return fmt.Errorf("set total debt: %w", err)
	}
	return nil
}

func (c *SummaryCache) GetMonthlySummary(ctx context.Context, month, year int) (*domain.MonthlySummary, bool, error) {
	raw, err := c.client.Get(ctx, monthlyKey(month, year)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get monthly summary: %w", err)
	}

	var summary domain.MonthlySummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		// A corrupt entry is treated as a miss and left for Invalidate to clear.
		c.logger.Warn("discarding unreadable cache entry", "error", err, "month", month, "year", year)
		return nil, false, nil
	}

	return &summary, true, nil
}

func (c *SummaryCache) SetMonthlySummary(ctx context.Context, s *domain.MonthlySummary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal monthly summary: %w", err)
	}
	if err := c.client.Set(ctx, monthlyKey(s.Month, s.Year), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set monthly summary: %w", err)
	}
	return nil
}

// Invalidate drops every cached aggregate. Called after each payment write.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, totalDebtKey).Err(); err != nil {
		return fmt.Errorf("invalidate total debt: %w", err)
	}

	iter := c.client.Scan(ctx, 0, monthlyKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("invalidate monthly summary: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan summary keys: %w", err)
	}

	return nil
}
