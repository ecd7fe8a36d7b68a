package domain

import "time"

const EventNewRating = "new_rating"

type Rating struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	DishID    int       `json:"dish_id"`
	OrderID   string    `json:"order_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmitRatingInput struct {
	UserID  string `json:"user_id" validate:"required"`
	DishID  int    `json:"dish_id" validate:"required,gt=0"`
	OrderID string `json:"order_id" validate:"required"`
	Score   int    `json:"score" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// BulkRatingInput rates several dishes of one order at once.
type BulkRatingInput struct {
	UserID  string           `json:"user_id"`
	OrderID string           `json:"order_id"`
	Ratings []BulkRatingItem `json:"ratings"`
}

type BulkRatingItem struct {
	DishID  int    `json:"dish_id"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// DishSummary is the derived rating summary stored on the dish.
type DishSummary struct {
	DishID        int     `json:"dish_id"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

type SubmitResult struct {
	Rating Rating      `json:"rating"`
	Dish   DishSummary `json:"dish"`
}

// Summarize returns the exact arithmetic mean and the count. The mean of no
// scores is zero.
func Summarize(dishID int, scores []int) DishSummary {
	summary := DishSummary{DishID: dishID, TotalRatings: len(scores)}
	if len(scores) == 0 {
		return summary
	}
	sum := 0
	for _, score := range scores {
		sum += score
	}
	summary.AverageRating = float64(sum) / float64(len(scores))
	return summary
}

type RatingEvent struct {
	Type          string    `json:"type"`
	RatingID      int       `json:"rating_id"`
	UserID        string    `json:"user_id"`
	DishID        int       `json:"dish_id"`
	OrderID       string    `json:"order_id"`
	Score         int       `json:"score"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
	Timestamp     time.Time `json:"timestamp"`
}
