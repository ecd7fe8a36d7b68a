package domain

import (
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
)

const (
	EventNewRating          = "new_rating"
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// Envelope is decoded first to route a message by type.
type Envelope struct {
	Type string `json:"type"`
}

type RatingEvent struct {
	Type          string    `json:"type"`
	RatingID      int       `json:"rating_id"`
	DishID        int       `json:"dish_id"`
	OrderID       string    `json:"order_id"`
	Score         int       `json:"score"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
	Timestamp     time.Time `json:"timestamp"`
}

type OrderItem struct {
	DishID   int     `json:"dish_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderEvent struct {
	Type           string           `json:"type"`
	OrderID        string           `json:"order_id"`
	ClientID       string           `json:"client_id"`
	Status         lifecycle.Status `json:"status"`
	PreviousStatus lifecycle.Status `json:"previous_status,omitempty"`
	Total          float64          `json:"total"`
	Items          []OrderItem      `json:"items,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}
