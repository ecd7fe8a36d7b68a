package domain

import (
	"strconv"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
)

// OrderRecord is the slice of an order the dashboard folds over.
type OrderRecord struct {
	ID        string
	ClientID  string
	Status    lifecycle.Status
	Total     float64
	CreatedAt time.Time
	Items     []OrderLine
}

type OrderLine struct {
	DishID   int
	DishName string
	Quantity int
}

type PopularDish struct {
	DishID   int    `json:"dish_id"`
	DishName string `json:"dish_name"`
	// Orders is the summed quantity across the window.
	Orders int `json:"orders"`
}

type PeriodRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type StatusCount struct {
	Status lifecycle.Status `json:"status"`
	Count  int              `json:"count"`
}

type DashboardStats struct {
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      float64         `json:"total_revenue"`
	AverageOrderValue float64         `json:"average_order_value"`
	TotalClients      int             `json:"total_clients"`
	PopularDishes     []PopularDish   `json:"popular_dishes"`
	RevenueByPeriod   []PeriodRevenue `json:"revenue_by_period"`
	OrdersByStatus    []StatusCount   `json:"orders_by_status"`
}

type DishAnalytics struct {
	DishID      int     `json:"dish_id"`
	DishName    string  `json:"dish_name"`
	Score       float64 `json:"score"`
	ReviewCount int     `json:"review_count,omitempty"`
}

// DishScore is one member of a popularity or rating sorted set.
type DishScore struct {
	DishID int
	Score  float64
}

type DishStats struct {
	DishID      int     `json:"dish_id"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
	LastUpdated string  `json:"last_updated"`
}

// Distribution counts ratings per score, keyed "1".."5".
type Distribution map[string]int

func NewDistribution() Distribution {
	d := make(Distribution, 5)
	for score := 1; score <= 5; score++ {
		d[strconv.Itoa(score)] = 0
	}
	return d
}

// Add ignores scores outside 1..5.
func (d Distribution) Add(score, count int) {
	if score < 1 || score > 5 {
		return
	}
	d[strconv.Itoa(score)] += count
}
