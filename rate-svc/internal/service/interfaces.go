package service

import (
	"context"

	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/domain"
)

type RatingServiceInterface interface {
	Submit(ctx context.Context, input domain.SubmitRatingInput) (*domain.SubmitResult, error)
	ListDishRatings(ctx context.Context, dishID int) ([]domain.Rating, error)
}

type RatingRepository interface {
	DishInOrder(ctx context.Context, dishID int, orderID string) (bool, error)
	// Append stores the rating and recomputes the dish summary in one
	// transaction. A second rating for the same user, dish and order fails
	// with ErrDuplicateRating.
	Append(ctx context.Context, rating *domain.Rating) (domain.DishSummary, error)
	ListByDish(ctx context.Context, dishID int) ([]domain.Rating, error)
}

type RatingCache interface {
	MarkerKey(userID string, dishID int, orderID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type RatingPublisher interface {
	PublishRating(ctx context.Context, event domain.RatingEvent) error
}

var _ RatingServiceInterface = (*RatingService)(nil)
