package tests

import (
	"fmt"
	"sync"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/service"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/storage"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("order-%d", n)
	}
}

func testOptions() service.Options {
	return service.Options{
		Clock: func() time.Time { return fixedNow },
		NewID: sequentialIDs(),
	}
}

func testCatalog() *storage.MemoryCatalog {
	return storage.NewMemoryCatalog(
		domain.DishSnapshot{ID: 1, Name: "Margherita", Price: 10, Active: true},
		domain.DishSnapshot{ID: 2, Name: "Garlic Bread", Price: 5, Active: true},
		domain.DishSnapshot{ID: 3, Name: "Seasonal Soup", Price: 6, Active: false},
	)
}

type engine struct {
	store    *storage.MemoryStore
	orders   *service.OrderService
	delivery *service.DeliveryService
}

// newEngine wires the order and delivery services over the memory store with a
// flat 5.00 delivery fee.
func newEngine() *engine {
	store := storage.NewMemoryStore()
	opts := testOptions()
	opts.Locks = service.NewKeyedMutex()

	delivery := service.NewDeliveryService(store.Couriers(), store.Orders(),
		service.FeeSettings{BaseFee: 5, PerKm: 0}, opts)
	orders := service.NewOrderService(store.Orders(), testCatalog(), delivery, nil,
		service.DefaultQRGenerator{BaseURL: "http://localhost:8080"}, opts)

	return &engine{store: store, orders: orders, delivery: delivery}
}

func deliveryInput() domain.CreateOrderInput {
	return domain.CreateOrderInput{
		ClientID: "client-1",
		Items: []domain.OrderItemInput{
			{DishID: 1, Quantity: 2},
			{DishID: 2, Quantity: 1},
		},
		Type:    domain.OrderTypeDelivery,
		Address: strPtr("12 Baker Street"),
		Phone:   "+1 555 0100",
	}
}

func takeawayInput() domain.CreateOrderInput {
	return domain.CreateOrderInput{
		ClientID: "client-2",
		Items:    []domain.OrderItemInput{{DishID: 2, Quantity: 3}},
		Type:     domain.OrderTypeTakeaway,
		Phone:    "+1 555 0101",
	}
}
