package service

import (
	"context"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/domain"
)

type AnalyticsInterface interface {
	Dashboard(ctx context.Context, window domain.Window) (domain.DashboardStats, error)
	TopToday(ctx context.Context) ([]domain.DishAnalytics, error)
	TopAllTime(ctx context.Context) ([]domain.DishAnalytics, error)
	DishStats(ctx context.Context, dishID int) (*domain.DishStats, error)
	RatingDistribution(ctx context.Context, dishID int) (domain.Distribution, error)
	GlobalDistribution(ctx context.Context) (domain.Distribution, error)
}

// Projection produces dashboard statistics. The fold over a snapshot is the
// default; an incrementally maintained projection can replace it.
type Projection interface {
	Dashboard(ctx context.Context, window domain.Window) (domain.DashboardStats, error)
}

// OrderSnapshotSource returns every order in window as of one consistent
// point in time.
type OrderSnapshotSource interface {
	Snapshot(ctx context.Context, window domain.Window) ([]domain.OrderRecord, error)
}

type AnalyticsRepository interface {
	TopOrderedBetween(ctx context.Context, from, to time.Time, limit int) ([]domain.DishAnalytics, error)
	TopRated(ctx context.Context, limit int) ([]domain.DishAnalytics, error)
	DishNames(ctx context.Context, dishIDs []int) (map[int]string, error)
	RatingDistribution(ctx context.Context, dishID int) (domain.Distribution, error)
	GlobalDistribution(ctx context.Context) (domain.Distribution, error)
}

// PopularityCache reads the sorted sets and dish hashes kept by agg-svc.
type PopularityCache interface {
	TopDaily(ctx context.Context, date string, limit int) ([]domain.DishScore, error)
	TopAllTime(ctx context.Context, limit int) ([]domain.DishScore, error)
	DishStats(ctx context.Context, dishID int) (*domain.DishStats, error)
}

var (
	_ AnalyticsInterface = (*AnalyticsService)(nil)
	_ Projection         = (*FoldProjection)(nil)
)
