package storage

import (
	"context"
	"strconv"

	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const allTimeKey = "analytics:alltime"

type RedisPopularity struct {
	Client *redis.Client
}

func NewRedisPopularity(client *redis.Client) *RedisPopularity {
	return &RedisPopularity{Client: client}
}

func (p *RedisPopularity) TopDaily(ctx context.Context, date string, limit int) ([]domain.DishScore, error) {
	return p.top(ctx, "analytics:daily:"+date, limit)
}

func (p *RedisPopularity) TopAllTime(ctx context.Context, limit int) ([]domain.DishScore, error) {
	return p.top(ctx, allTimeKey, limit)
}

func (p *RedisPopularity) top(ctx context.Context, key string, limit int) ([]domain.DishScore, error) {
	members, err := p.Client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	scores := make([]domain.DishScore, 0, len(members))
	for _, member := range members {
		raw, _ := member.Member.(string)
		dishID, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		scores = append(scores, domain.DishScore{DishID: dishID, Score: member.Score})
	}
	return scores, nil
}

// DishStats returns nil when agg-svc has not mirrored the dish yet.
func (p *RedisPopularity) DishStats(ctx context.Context, dishID int) (*domain.DishStats, error) {
	fields, err := p.Client.HGetAll(ctx, "dish:"+strconv.Itoa(dishID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	avg, _ := strconv.ParseFloat(fields["avg_rating"], 64)
	count, _ := strconv.Atoi(fields["review_count"])
	return &domain.DishStats{
		DishID:      dishID,
		AvgRating:   avg,
		ReviewCount: count,
		LastUpdated: fields["last_updated"],
	}, nil
}
