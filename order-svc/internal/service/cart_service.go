package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/validation"
)

type CartService struct {
	carts   CartStore
	catalog DishCatalog
	orders  OrderServiceInterface
	opts    Options
}

func NewCartService(carts CartStore, catalog DishCatalog, orders OrderServiceInterface, opts Options) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
		orders:  orders,
		opts:    opts.withDefaults(),
	}
}

func (s *CartService) storage(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.opts.Policy.Do(ctx, domain.ErrStorageUnavailable, fn)
}

func (s *CartService) load(ctx context.Context, userID string) (*domain.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	var cart *domain.Cart
	err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		cart, err = s.carts.Load(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// update runs a single check-and-set cycle. A lost acknowledgement is not
// replayed because adding a quantity twice is not idempotent.
func (s *CartService) update(ctx context.Context, userID string, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	var cart *domain.Cart
	err := s.opts.Policy.DoOnce(ctx, domain.ErrStorageUnavailable, func(ctx context.Context) error {
		var err error
		cart, err = s.carts.Update(ctx, userID, fn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.load(ctx, userID)
}

// AddItem merges the quantity into an existing line for the same dish.
func (s *CartService) AddItem(ctx context.Context, userID string, dishID, quantity int, note *string) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	var dishes map[int]domain.DishSnapshot
	if err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		dishes, err = s.catalog.Lookup(ctx, []int{dishID})
		return err
	}); err != nil {
		return nil, err
	}
	dish, ok := dishes[dishID]
	if !ok {
		return nil, fmt.Errorf("%w: dish %d", domain.ErrNotFound, dishID)
	}
	if !dish.Active {
		return nil, fmt.Errorf("%w: dish %d is not available", domain.ErrValidation, dishID)
	}

	return s.update(ctx, userID, func(cart *domain.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].DishID == dishID {
				cart.Items[i].Quantity += quantity
				cart.Items[i].Price = dish.Price
				cart.Items[i].DishName = dish.Name
				if note != nil {
					cart.Items[i].Note = note
				}
				return nil
			}
		}
		cart.Items = append(cart.Items, domain.CartItem{
			DishID:   dish.ID,
			DishName: dish.Name,
			Price:    dish.Price,
			Quantity: quantity,
			Note:     note,
		})
		return nil
	})
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, dishID, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, dishID)
	}

	return s.update(ctx, userID, func(cart *domain.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].DishID == dishID {
				cart.Items[i].Quantity = quantity
				return nil
			}
		}
		return fmt.Errorf("%w: dish %d is not in the cart", domain.ErrNotFound, dishID)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, dishID int) (*domain.Cart, error) {
	return s.update(ctx, userID, func(cart *domain.Cart) error {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.DishID != dishID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	return s.storage(ctx, func(ctx context.Context) error {
		return s.carts.Delete(ctx, userID)
	})
}

// Checkout places the cart as an order. The cart is cleared only when the
// order was created.
func (s *CartService) Checkout(ctx context.Context, userID string, input domain.CheckoutInput) (*domain.Order, error) {
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	items := make([]domain.OrderItemInput, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, domain.OrderItemInput{
			DishID:   item.DishID,
			Quantity: item.Quantity,
			Note:     item.Note,
		})
	}

	order, err := s.orders.Create(ctx, domain.CreateOrderInput{
		ClientID: userID,
		Items:    items,
		Type:     input.Type,
		Address:  input.Address,
		Phone:    input.Phone,
		Note:     input.Note,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Clear(ctx, userID); err != nil {
		logger.WithCtx(ctx).Warn("order placed but cart was not cleared",
			"user_id", userID, "order_id", order.ID, "error", err)
	}
	return order, nil
}
