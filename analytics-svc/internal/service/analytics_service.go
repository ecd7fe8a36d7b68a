package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/resilience"
)

const topLimit = 10

type Options struct {
	Policy   resilience.Policy
	Clock    func() time.Time
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	return o
}

func (o Options) do(ctx context.Context, fn func(ctx context.Context) error) error {
	return o.Policy.Do(ctx, domain.ErrStorageUnavailable, fn)
}

// FoldProjection recomputes the dashboard from a snapshot on every call.
type FoldProjection struct {
	source OrderSnapshotSource
	opts   Options
}

func NewFoldProjection(source OrderSnapshotSource, opts Options) *FoldProjection {
	return &FoldProjection{source: source, opts: opts.withDefaults()}
}

func (p *FoldProjection) Dashboard(ctx context.Context, window domain.Window) (domain.DashboardStats, error) {
	var orders []domain.OrderRecord
	if err := p.opts.do(ctx, func(ctx context.Context) error {
		var err error
		orders, err = p.source.Snapshot(ctx, window)
		return err
	}); err != nil {
		return domain.DashboardStats{}, err
	}
	return ComputeDashboard(orders, window, p.opts.Clock(), p.opts.Location), nil
}

type AnalyticsService struct {
	projection Projection
	repository AnalyticsRepository
	cache      PopularityCache
	opts       Options
}

func NewAnalyticsService(projection Projection, repository AnalyticsRepository, cache PopularityCache, opts Options) *AnalyticsService {
	return &AnalyticsService{
		projection: projection,
		repository: repository,
		cache:      cache,
		opts:       opts.withDefaults(),
	}
}

func (s *AnalyticsService) Dashboard(ctx context.Context, window domain.Window) (domain.DashboardStats, error) {
	if window.Start != nil && window.End != nil && window.Start.After(*window.End) {
		return domain.DashboardStats{}, fmt.Errorf("%w: start is after end", domain.ErrValidation)
	}
	return s.projection.Dashboard(ctx, window)
}

// TopToday ranks today's dishes by ordered quantity from the daily sorted
// set, falling back to the order tables when the set is empty or Redis fails.
func (s *AnalyticsService) TopToday(ctx context.Context) ([]domain.DishAnalytics, error) {
	now := s.opts.Clock().In(s.opts.Location)
	date := domain.DayKey(now, s.opts.Location)

	scores, err := s.cache.TopDaily(ctx, date, topLimit)
	if err != nil {
		logger.WithCtx(ctx).Warn("daily popularity lookup failed", "date", date, "error", err)
	}
	if err != nil || len(scores) == 0 {
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.opts.Location)
		var top []domain.DishAnalytics
		err := s.opts.do(ctx, func(ctx context.Context) error {
			var err error
			top, err = s.repository.TopOrderedBetween(ctx, from, from.AddDate(0, 0, 1), topLimit)
			return err
		})
		return top, err
	}
	return s.named(ctx, scores)
}

// TopAllTime ranks dishes by average rating.
func (s *AnalyticsService) TopAllTime(ctx context.Context) ([]domain.DishAnalytics, error) {
	scores, err := s.cache.TopAllTime(ctx, topLimit)
	if err != nil {
		logger.WithCtx(ctx).Warn("all-time ranking lookup failed", "error", err)
	}
	if err != nil || len(scores) == 0 {
		var top []domain.DishAnalytics
		err := s.opts.do(ctx, func(ctx context.Context) error {
			var err error
			top, err = s.repository.TopRated(ctx, topLimit)
			return err
		})
		return top, err
	}
	return s.named(ctx, scores)
}

// named attaches dish names, dropping members whose dish no longer exists.
func (s *AnalyticsService) named(ctx context.Context, scores []domain.DishScore) ([]domain.DishAnalytics, error) {
	ids := make([]int, 0, len(scores))
	for _, score := range scores {
		ids = append(ids, score.DishID)
	}
	var names map[int]string
	if err := s.opts.do(ctx, func(ctx context.Context) error {
		var err error
		names, err = s.repository.DishNames(ctx, ids)
		return err
	}); err != nil {
		return nil, err
	}

	top := make([]domain.DishAnalytics, 0, len(scores))
	for _, score := range scores {
		name, ok := names[score.DishID]
		if !ok {
			continue
		}
		top = append(top, domain.DishAnalytics{DishID: score.DishID, DishName: name, Score: score.Score})
	}
	return top, nil
}

func (s *AnalyticsService) DishStats(ctx context.Context, dishID int) (*domain.DishStats, error) {
	if dishID <= 0 {
		return nil, fmt.Errorf("%w: dish id must be positive", domain.ErrValidation)
	}
	stats, err := s.cache.DishStats(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if stats == nil {
		return nil, fmt.Errorf("%w: no stats for dish %d", domain.ErrNotFound, dishID)
	}
	return stats, nil
}

func (s *AnalyticsService) RatingDistribution(ctx context.Context, dishID int) (domain.Distribution, error) {
	if dishID <= 0 {
		return nil, fmt.Errorf("%w: dish id must be positive", domain.ErrValidation)
	}
	var dist domain.Distribution
	err := s.opts.do(ctx, func(ctx context.Context) error {
		var err error
		dist, err = s.repository.RatingDistribution(ctx, dishID)
		return err
	})
	return dist, err
}

func (s *AnalyticsService) GlobalDistribution(ctx context.Context) (domain.Distribution, error) {
	var dist domain.Distribution
	err := s.opts.do(ctx, func(ctx context.Context) error {
		var err error
		dist, err = s.repository.GlobalDistribution(ctx)
		return err
	})
	return dist, err
}
