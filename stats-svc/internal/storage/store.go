package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"dinein-preorder/stats-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	dailyTTL     = 7 * 24 * time.Hour
	seenTTL      = 7 * 24 * time.Hour
	popularLimit = 5
)

type Store struct {
	rdb *redis.Client
	now func() time.Time
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{
		rdb: rdb,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for "today".
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func restaurantKey(restaurantID string) string {
	return "stats:restaurant:" + restaurantID
}

func dailyKey(day time.Time, restaurantID string) string {
	return fmt.Sprintf("stats:daily:%s:%s", day.UTC().Format("2006-01-02"), restaurantID)
}

func popularKey(restaurantID string) string {
	return "stats:popular:" + restaurantID
}

func seenKey(orderID string) string {
	return "stats:seen:" + orderID
}

// RecordOrder folds one order into the restaurant aggregates. It returns false
// when the order id was already recorded, so redelivered events count once.
// A failed write releases the order id again so a retry is not taken for a
// duplicate.
func (s *Store) RecordOrder(ctx context.Context, event domain.OrderEvent) (bool, error) {
	if event.OrderID != "" {
		fresh, err := s.rdb.SetNX(ctx, seenKey(event.OrderID), 1, seenTTL).Result()
		if err != nil {
			return false, fmt.Errorf("mark order %s: %w", event.OrderID, err)
		}
		if !fresh {
			return false, nil
		}
	}

	day := event.Timestamp
	if day.IsZero() {
		day = s.now()
	}
	daily := dailyKey(day, event.RestaurantID)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, restaurantKey(event.RestaurantID), "orders", 1)
		pipe.HIncrByFloat(ctx, restaurantKey(event.RestaurantID), "revenue", event.Total)
		pipe.Incr(ctx, daily)
		pipe.Expire(ctx, daily, dailyTTL)
		for _, item := range event.Items {
			if item.MenuItemID == "" || item.Quantity <= 0 {
				continue
			}
			pipe.ZIncrBy(ctx, popularKey(event.RestaurantID), float64(item.Quantity), item.MenuItemID)
		}
		return nil
	})
	if err != nil {
		if event.OrderID != "" {
			s.rdb.Del(context.WithoutCancel(ctx), seenKey(event.OrderID))
		}
		return false, fmt.Errorf("record order %s: %w", event.OrderID, err)
	}
	return true, nil
}

func (s *Store) RestaurantStats(ctx context.Context, restaurantID string) (*domain.RestaurantStats, error) {
	fields, err := s.rdb.HGetAll(ctx, restaurantKey(restaurantID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read restaurant stats: %w", err)
	}
	stats := &domain.RestaurantStats{RestaurantID: restaurantID, PopularItems: []domain.PopularItem{}}
	if raw, ok := fields["orders"]; ok {
		stats.Orders, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw, ok := fields["revenue"]; ok {
		revenue, _ := strconv.ParseFloat(raw, 64)
		stats.Revenue = math.Round(revenue*100) / 100
	}

	today, err := s.rdb.Get(ctx, dailyKey(s.now(), restaurantID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read daily orders: %w", err)
	}
	stats.OrdersToday = today

	top, err := s.rdb.ZRevRangeWithScores(ctx, popularKey(restaurantID), 0, popularLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read popular items: %w", err)
	}
	for _, z := range top {
		member, _ := z.Member.(string)
		stats.PopularItems = append(stats.PopularItems, domain.PopularItem{
			MenuItemID: member,
			Quantity:   int64(z.Score),
		})
	}
	return stats, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
