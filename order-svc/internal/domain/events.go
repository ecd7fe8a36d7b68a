package domain

import (
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

type EventItem struct {
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
	Items          []EventItem      `json:"items,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}

func NewOrderCreatedEvent(order *Order) OrderEvent {
	items := make([]EventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, EventItem{DishID: item.DishID, Quantity: item.Quantity, Price: item.Price})
	}
	return OrderEvent{
		Type:      EventOrderCreated,
		OrderID:   order.ID,
		ClientID:  order.ClientID,
		Status:    order.Status,
		Total:     order.Total,
		Items:     items,
		Timestamp: order.CreatedAt,
	}
}

func NewStatusChangedEvent(order *Order, from lifecycle.Status) OrderEvent {
	return OrderEvent{
		Type:           EventOrderStatusChanged,
		OrderID:        order.ID,
		ClientID:       order.ClientID,
		Status:         order.Status,
		PreviousStatus: from,
		Total:          order.Total,
		Timestamp:      order.UpdatedAt,
	}
}
