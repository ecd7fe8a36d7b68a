package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"
	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/resilience"
	"github.com/Edgar-Klewert/restaurant-delivery/validation"
)

type Options struct {
	Policy  resilience.Policy
	Metrics *metrics.Metrics
	Clock   func() time.Time
}

type RatingService struct {
	repository RatingRepository
	cache      RatingCache
	publisher  RatingPublisher
	opts       Options
}

func NewRatingService(repository RatingRepository, cache RatingCache, publisher RatingPublisher, opts Options) *RatingService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &RatingService{
		repository: repository,
		cache:      cache,
		publisher:  publisher,
		opts:       opts,
	}
}

func (s *RatingService) storage(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.opts.Policy.Do(ctx, domain.ErrStorageUnavailable, fn)
}

// Submit appends a rating. The Redis marker is a fast path only; the unique
// constraint in storage decides duplicates.
func (s *RatingService) Submit(ctx context.Context, input domain.SubmitRatingInput) (*domain.SubmitResult, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.OrderID = strings.TrimSpace(input.OrderID)
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var inOrder bool
	if err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		inOrder, err = s.repository.DishInOrder(ctx, input.DishID, input.OrderID)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to validate order: %w", err)
	}
	if !inOrder {
		return nil, domain.ErrDishNotInOrder
	}

	cacheKey := s.cache.MarkerKey(input.UserID, input.DishID, input.OrderID)
	exists, err := s.cache.Exists(ctx, cacheKey)
	if err != nil {
		logger.WithCtx(ctx).Warn("rating marker lookup failed", "key", cacheKey, "error", err)
	}
	if exists {
		return nil, domain.ErrDuplicateRating
	}

	rating := &domain.Rating{
		UserID:  input.UserID,
		DishID:  input.DishID,
		OrderID: input.OrderID,
		Score:   input.Score,
		Comment: strings.TrimSpace(input.Comment),
	}
	var summary domain.DishSummary
	attempt := 0
	if err := s.storage(ctx, func(ctx context.Context) error {
		attempt++
		var err error
		summary, err = s.repository.Append(ctx, rating)
		if attempt > 1 && errors.Is(err, domain.ErrDuplicateRating) {
			summary, err = s.reconcile(ctx, rating)
		}
		return err
	}); err != nil {
		return nil, err
	}

	if err := s.cache.SetMarker(ctx, cacheKey); err != nil {
		logger.WithCtx(ctx).Warn("failed to set rating marker", "key", cacheKey, "error", err)
	}

	if s.publisher != nil {
		event := domain.RatingEvent{
			Type:          domain.EventNewRating,
			RatingID:      rating.ID,
			UserID:        rating.UserID,
			DishID:        rating.DishID,
			OrderID:       rating.OrderID,
			Score:         rating.Score,
			AverageRating: summary.AverageRating,
			TotalRatings:  summary.TotalRatings,
			Timestamp:     s.opts.Clock(),
		}
		if err := s.publisher.PublishRating(ctx, event); err != nil {
			logger.WithCtx(ctx).Warn("failed to publish rating event", "dish_id", rating.DishID, "error", err)
		}
	}

	s.opts.Metrics.IncEvent(domain.EventNewRating)
	logger.WithCtx(ctx).Info("rating submitted",
		"dish_id", rating.DishID, "order_id", rating.OrderID, "score", rating.Score,
		"average", summary.AverageRating, "count", summary.TotalRatings)

	return &domain.SubmitResult{Rating: *rating, Dish: summary}, nil
}

// reconcile settles a retried append that hit the unique constraint. When
// the stored rating is this submission, an earlier attempt committed and its
// reply was lost; anything else stays a duplicate.
func (s *RatingService) reconcile(ctx context.Context, rating *domain.Rating) (domain.DishSummary, error) {
	ratings, err := s.repository.ListByDish(ctx, rating.DishID)
	if err != nil {
		return domain.DishSummary{}, err
	}
	scores := make([]int, 0, len(ratings))
	var stored *domain.Rating
	for i := range ratings {
		scores = append(scores, ratings[i].Score)
		r := &ratings[i]
		if r.UserID == rating.UserID && r.OrderID == rating.OrderID {
			stored = r
		}
	}
	if stored == nil || stored.Score != rating.Score || stored.Comment != rating.Comment {
		return domain.DishSummary{}, domain.ErrDuplicateRating
	}
	*rating = *stored
	return domain.Summarize(rating.DishID, scores), nil
}

func (s *RatingService) ListDishRatings(ctx context.Context, dishID int) ([]domain.Rating, error) {
	if dishID <= 0 {
		return nil, fmt.Errorf("%w: dish id must be positive", domain.ErrValidation)
	}
	var ratings []domain.Rating
	err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		ratings, err = s.repository.ListByDish(ctx, dishID)
		return err
	})
	return ratings, err
}
