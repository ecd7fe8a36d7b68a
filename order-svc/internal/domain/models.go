package domain

import (
	"math"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
)

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeTakeaway OrderType = "takeaway"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDelivery || t == OrderTypeTakeaway
}

type Order struct {
	ID               string           `json:"id"`
	ClientID         string           `json:"client_id"`
	Items            []OrderItem      `json:"items"`
	Status           lifecycle.Status `json:"status"`
	Type             OrderType        `json:"type"`
	Total            float64          `json:"total"`
	DeliveryFee      float64          `json:"delivery_fee"`
	Address          *string          `json:"address,omitempty"`
	Phone            string           `json:"phone"`
	Note             *string          `json:"note,omitempty"`
	EstimatedMinutes int              `json:"estimated_minutes"`
	DeliveryPersonID *int             `json:"delivery_person_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Subtotal is the sum of the item lines without the delivery fee.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return Round2(sum)
}

type OrderItem struct {
	DishID   int     `json:"dish_id"`
	DishName string  `json:"dish_name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Note     *string `json:"note,omitempty"`
}

type StatusChange struct {
	OrderID   string           `json:"order_id"`
	From      lifecycle.Status `json:"from,omitempty"`
	To        lifecycle.Status `json:"to"`
	ChangedBy lifecycle.Role   `json:"changed_by"`
	ChangedAt time.Time        `json:"changed_at"`
}

type KitchenTicket struct {
	Order
	Priority       lifecycle.Priority `json:"priority"`
	ElapsedMinutes int                `json:"elapsed_minutes"`
}

type OrderFilter struct {
	Status   *lifecycle.Status
	ClientID string
}

type OrderItemInput struct {
	DishID   int     `json:"dish_id" validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
	Note     *string `json:"note,omitempty"`
}

type CreateOrderInput struct {
	ClientID string           `json:"client_id" validate:"required"`
	Items    []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Type     OrderType        `json:"type" validate:"required,oneof=delivery takeaway"`
	Address  *string          `json:"address,omitempty"`
	Phone    string           `json:"phone" validate:"required"`
	Note     *string          `json:"note,omitempty"`
}

// DishSnapshot is the catalog view of a dish at order time.
type DishSnapshot struct {
	ID     int
	Name   string
	Price  float64
	Active bool
}

type Courier struct {
	ID            int       `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Phone         string    `json:"phone" validate:"required"`
	Vehicle       string    `json:"vehicle"`
	Active        bool      `json:"active"`
	CurrentOrders []string  `json:"current_orders"`
	CreatedAt     time.Time `json:"created_at"`
}

type FeeQuote struct {
	Address    string  `json:"address"`
	DistanceKm float64 `json:"distance_km"`
	Fee        float64 `json:"fee"`
}

type CartItem struct {
	DishID   int     `json:"dish_id"`
	DishName string  `json:"dish_name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Note     *string `json:"note,omitempty"`
}

type Cart struct {
	UserID     string     `json:"user_id"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

// Recalculate refreshes the derived totals after the items changed.
func (c *Cart) Recalculate() {
	c.TotalItems = 0
	var price float64
	for _, item := range c.Items {
		c.TotalItems += item.Quantity
		price += item.Price * float64(item.Quantity)
	}
	c.TotalPrice = Round2(price)
}

type CheckoutInput struct {
	Type    OrderType `json:"type" validate:"required,oneof=delivery takeaway"`
	Address *string   `json:"address,omitempty"`
	Phone   string    `json:"phone" validate:"required"`
	Note    *string   `json:"note,omitempty"`
}

// Round2 rounds a money amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
