package service

import (
	"context"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
)

type OrderServiceInterface interface {
	Create(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error)
	Transition(ctx context.Context, orderID string, to lifecycle.Status, actor lifecycle.Role) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	History(ctx context.Context, orderID string) ([]domain.StatusChange, error)
	ListActiveForKitchen(ctx context.Context) ([]domain.Order, error)
	KitchenQueue(ctx context.Context, now time.Time) ([]domain.KitchenTicket, error)
	RatingQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type DeliveryServiceInterface interface {
	CalculateFee(address string) (domain.FeeQuote, error)
	Assign(ctx context.Context, orderID string, courierID int) (*domain.Order, error)
	CreateCourier(ctx context.Context, courier *domain.Courier) error
	UpdateCourier(ctx context.Context, courier *domain.Courier) error
	GetCourier(ctx context.Context, id int) (*domain.Courier, error)
	ListCouriers(ctx context.Context, activeOnly bool) ([]domain.Courier, error)
}

type CartServiceInterface interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, dishID, quantity int, note *string) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID string, dishID, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID string, dishID int) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
	Checkout(ctx context.Context, userID string, input domain.CheckoutInput) (*domain.Order, error)
}

// OrderRepository persists the append-only order log and its status history.
type OrderRepository interface {
	// Insert is idempotent for a replay of the same order id, client and
	// creation time. Any other existing id is ErrConflict.
	Insert(ctx context.Context, order *domain.Order, change domain.StatusChange) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	ListActive(ctx context.Context) ([]domain.Order, error)
	// UpdateStatus applies the change only while the stored status still equals
	// change.From and returns ErrConflict otherwise. Replaying a change that is
	// already in the history succeeds without writing. Moving to a terminal status
	// also drops the order from its courier's current set.
	UpdateStatus(ctx context.Context, change domain.StatusChange) error
	History(ctx context.Context, orderID string) ([]domain.StatusChange, error)
}

type CourierRepository interface {
	Create(ctx context.Context, courier *domain.Courier) error
	Update(ctx context.Context, courier *domain.Courier) error
	Get(ctx context.Context, id int) (*domain.Courier, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Courier, error)
	// Assign points the order at the courier and moves it into that courier's
	// current set, atomically re-checking that the courier is active and the
	// order is still open.
	Assign(ctx context.Context, orderID string, courierID int, at time.Time) error
}

type DishCatalog interface {
	Lookup(ctx context.Context, dishIDs []int) (map[int]domain.DishSnapshot, error)
}

type CartStore interface {
	Load(ctx context.Context, userID string) (*domain.Cart, error)
	// Update applies fn to the current cart and stores the result atomically
	// against concurrent writers. fn may run more than once.
	Update(ctx context.Context, userID string, fn func(cart *domain.Cart) error) (*domain.Cart, error)
	Delete(ctx context.Context, userID string) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type FeeCalculator interface {
	CalculateFee(address string) (domain.FeeQuote, error)
}

var (
	_ OrderServiceInterface    = (*OrderService)(nil)
	_ DeliveryServiceInterface = (*DeliveryService)(nil)
	_ CartServiceInterface     = (*CartService)(nil)
	_ FeeCalculator            = (*DeliveryService)(nil)
)
