package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/resilience"
	"github.com/Edgar-Klewert/restaurant-delivery/validation"

	"github.com/lucsky/cuid"
)

const (
	defaultDeliveryETA = 45
	defaultTakeawayETA = 25
)

type Options struct {
	Policy      resilience.Policy
	DeliveryETA int
	TakeawayETA int
	Locks       *KeyedMutex
	Metrics     *metrics.Metrics
	Clock       func() time.Time
	NewID       func() string
}

func (o Options) withDefaults() Options {
	if o.DeliveryETA == 0 {
		o.DeliveryETA = defaultDeliveryETA
	}
	if o.TakeawayETA == 0 {
		o.TakeawayETA = defaultTakeawayETA
	}
	if o.Locks == nil {
		o.Locks = NewKeyedMutex()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.NewID == nil {
		o.NewID = cuid.New
	}
	return o
}

type OrderService struct {
	orders    OrderRepository
	catalog   DishCatalog
	fees      FeeCalculator
	publisher OrderPublisher
	qr        QRGenerator
	opts      Options
}

func NewOrderService(orders OrderRepository, catalog DishCatalog, fees FeeCalculator, publisher OrderPublisher, qr QRGenerator, opts Options) *OrderService {
	return &OrderService{
		orders:    orders,
		catalog:   catalog,
		fees:      fees,
		publisher: publisher,
		qr:        qr,
		opts:      opts.withDefaults(),
	}
}

func (s *OrderService) storage(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.opts.Policy.Do(ctx, domain.ErrStorageUnavailable, fn)
}

func (s *OrderService) Create(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error) {
	input.ClientID = strings.TrimSpace(input.ClientID)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var address *string
	if input.Type == domain.OrderTypeDelivery {
		if input.Address == nil || strings.TrimSpace(*input.Address) == "" {
			return nil, fmt.Errorf("%w: address is required for delivery orders", domain.ErrValidation)
		}
		trimmed := strings.TrimSpace(*input.Address)
		address = &trimmed
	}

	items, err := s.snapshotItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	var fee float64
	eta := s.opts.TakeawayETA
	if input.Type == domain.OrderTypeDelivery {
		quote, err := s.fees.CalculateFee(*address)
		if err != nil {
			return nil, err
		}
		fee = quote.Fee
		eta = s.opts.DeliveryETA
	}

	now := s.opts.Clock()
	order := &domain.Order{
		ID:               s.opts.NewID(),
		ClientID:         input.ClientID,
		Items:            items,
		Status:           lifecycle.StatusPending,
		Type:             input.Type,
		DeliveryFee:      fee,
		Address:          address,
		Phone:            input.Phone,
		Note:             input.Note,
		EstimatedMinutes: eta,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	order.Total = domain.Round2(order.Subtotal() + fee)

	unlock := s.opts.Locks.Lock(order.ID)
	defer unlock()

	change := domain.StatusChange{
		OrderID:   order.ID,
		To:        lifecycle.StatusPending,
		ChangedBy: lifecycle.RoleClient,
		ChangedAt: now,
	}
	if err := s.storage(ctx, func(ctx context.Context) error {
		return s.orders.Insert(ctx, order, change)
	}); err != nil {
		return nil, err
	}

	s.opts.Metrics.IncEvent(domain.EventOrderCreated)
	s.publish(ctx, domain.NewOrderCreatedEvent(order))
	logger.WithCtx(ctx).Info("order created",
		"order_id", order.ID, "client_id", order.ClientID, "total", order.Total)

	return order, nil
}

// snapshotItems resolves every line against the catalog and copies the
// current name and unit price into the order.
func (s *OrderService) snapshotItems(ctx context.Context, inputs []domain.OrderItemInput) ([]domain.OrderItem, error) {
	ids := make([]int, 0, len(inputs))
	seen := make(map[int]bool, len(inputs))
	for _, in := range inputs {
		if !seen[in.DishID] {
			seen[in.DishID] = true
			ids = append(ids, in.DishID)
		}
	}

	var dishes map[int]domain.DishSnapshot
	if err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		dishes, err = s.catalog.Lookup(ctx, ids)
		return err
	}); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		dish, ok := dishes[in.DishID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown dish %d", domain.ErrValidation, in.DishID)
		}
		if !dish.Active {
			return nil, fmt.Errorf("%w: dish %d is not available", domain.ErrValidation, in.DishID)
		}
		items = append(items, domain.OrderItem{
			DishID:   dish.ID,
			DishName: dish.Name,
			Quantity: in.Quantity,
			Price:    dish.Price,
			Note:     in.Note,
		})
	}
	return items, nil
}

func (s *OrderService) Transition(ctx context.Context, orderID string, to lifecycle.Status, actor lifecycle.Role) (*domain.Order, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, to)
	}
	if _, err := lifecycle.ParseRole(string(actor)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	unlock := s.opts.Locks.Lock(orderID)
	defer unlock()

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if !lifecycle.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	if !lifecycle.Permits(actor, from, to) {
		return nil, fmt.Errorf("%w: %s may not move %s -> %s", domain.ErrForbidden, actor, from, to)
	}

	now := s.opts.Clock()
	change := domain.StatusChange{
		OrderID:   orderID,
		From:      from,
		To:        to,
		ChangedBy: actor,
		ChangedAt: now,
	}
	if err := s.storage(ctx, func(ctx context.Context) error {
		return s.orders.UpdateStatus(ctx, change)
	}); err != nil {
		return nil, err
	}

	order.Status = to
	order.UpdatedAt = now

	s.opts.Metrics.ObserveTransition(from.String(), to.String())
	s.publish(ctx, domain.NewStatusChangedEvent(order, from))
	logger.WithCtx(ctx).Info("order status changed",
		"order_id", orderID, "from", from, "to", to, "actor", actor)

	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		orders, err = s.orders.List(ctx, filter)
		return err
	})
	return orders, err
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	var order *domain.Order
	err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.Get(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) History(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}
	var history []domain.StatusChange
	err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		history, err = s.orders.History(ctx, orderID)
		return err
	})
	return history, err
}

// ListActiveForKitchen returns every order that is neither delivered nor
// cancelled, oldest first.
func (s *OrderService) ListActiveForKitchen(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		orders, err = s.orders.ListActive(ctx)
		return err
	})
	return orders, err
}

func (s *OrderService) KitchenQueue(ctx context.Context, now time.Time) ([]domain.KitchenTicket, error) {
	orders, err := s.ListActiveForKitchen(ctx)
	if err != nil {
		return nil, err
	}

	tickets := make([]domain.KitchenTicket, 0, len(orders))
	for _, order := range orders {
		tickets = append(tickets, domain.KitchenTicket{
			Order:          order,
			Priority:       lifecycle.PriorityOf(order.CreatedAt, now),
			ElapsedMinutes: int(now.Sub(order.CreatedAt) / time.Minute),
		})
	}
	return tickets, nil
}

func (s *OrderService) RatingQRCode(ctx context.Context, orderID string) ([]byte, error) {
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return s.qr.Generate(orderID)
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.WithCtx(ctx).Warn("failed to publish order event",
			"type", event.Type, "order_id", event.OrderID, "error", err)
	}
}
