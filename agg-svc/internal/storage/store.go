package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	allTimeKey = "analytics:alltime"
	statusKey  = "analytics:status"
	dailyTTL   = 7 * 24 * time.Hour
)

// RedisStore keeps the counters analytics-svc reads: dish summaries, daily
// popularity and revenue, the all-time rating ranking and status totals.
type RedisStore struct {
	Client   *redis.Client
	Location *time.Location
}

func NewRedisStore(client *redis.Client, loc *time.Location) *RedisStore {
	if loc == nil {
		loc = time.UTC
	}
	return &RedisStore{Client: client, Location: loc}
}

func (s *RedisStore) day(t time.Time) string {
	return t.In(s.Location).Format("2006-01-02")
}

func (s *RedisStore) MirrorDishRating(ctx context.Context, event domain.RatingEvent) error {
	member := strconv.Itoa(event.DishID)
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, "dish:"+member, map[string]interface{}{
			"avg_rating":   event.AverageRating,
			"review_count": event.TotalRatings,
			"last_updated": event.Timestamp.UTC().Format(time.RFC3339),
		})
		pipe.ZAdd(ctx, allTimeKey, redis.Z{Score: event.AverageRating, Member: member})
		return nil
	})
	return err
}

func (s *RedisStore) RecordOrderCreated(ctx context.Context, event domain.OrderEvent) error {
	day := s.day(event.Timestamp)
	dailyKey := "analytics:daily:" + day
	revenueKey := "analytics:revenue:" + day

	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, item := range event.Items {
			pipe.ZIncrBy(ctx, dailyKey, float64(item.Quantity), strconv.Itoa(item.DishID))
		}
		pipe.Expire(ctx, dailyKey, dailyTTL)
		pipe.HIncrByFloat(ctx, revenueKey, "revenue", event.Total)
		pipe.HIncrBy(ctx, revenueKey, "orders", 1)
		pipe.Expire(ctx, revenueKey, dailyTTL)
		pipe.HIncrBy(ctx, statusKey, string(event.Status), 1)
		return nil
	})
	return err
}

func (s *RedisStore) RecordStatusChange(ctx context.Context, event domain.OrderEvent) error {
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if event.PreviousStatus != "" {
			pipe.HIncrBy(ctx, statusKey, string(event.PreviousStatus), -1)
		}
		pipe.HIncrBy(ctx, statusKey, string(event.Status), 1)
		return nil
	})
	return err
}
