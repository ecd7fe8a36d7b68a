package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/validation"
)

const (
	minDistanceKm = 1.0
	maxDistanceKm = 11.0
)

// FeeSettings prices delivery as BaseFee plus PerKm for every kilometre.
// Distances maps lower-case address or zone prefixes to a known distance.
type FeeSettings struct {
	BaseFee   float64
	PerKm     float64
	Distances map[string]float64
}

type DeliveryService struct {
	couriers CourierRepository
	orders   OrderRepository
	fees     FeeSettings
	zones    []string
	opts     Options
}

func NewDeliveryService(couriers CourierRepository, orders OrderRepository, fees FeeSettings, opts Options) *DeliveryService {
	zones := make([]string, 0, len(fees.Distances))
	normalized := make(map[string]float64, len(fees.Distances))
	for zone, km := range fees.Distances {
		key := normalizeAddress(zone)
		normalized[key] = km
		zones = append(zones, key)
	}
	// longest prefix wins, ties broken alphabetically
	sort.Slice(zones, func(i, j int) bool {
		if len(zones[i]) != len(zones[j]) {
			return len(zones[i]) > len(zones[j])
		}
		return zones[i] < zones[j]
	})
	fees.Distances = normalized

	return &DeliveryService{
		couriers: couriers,
		orders:   orders,
		fees:     fees,
		zones:    zones,
		opts:     opts.withDefaults(),
	}
}

func (s *DeliveryService) storage(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.opts.Policy.Do(ctx, domain.ErrStorageUnavailable, fn)
}

// CalculateFee is deterministic: a configured zone gives its distance, any
// other address hashes to a stable distance between 1 and 11 km.
func (s *DeliveryService) CalculateFee(address string) (domain.FeeQuote, error) {
	normalized := normalizeAddress(address)
	if normalized == "" {
		return domain.FeeQuote{}, fmt.Errorf("%w: address is required", domain.ErrValidation)
	}

	km := s.distanceFor(normalized)
	return domain.FeeQuote{
		Address:    strings.TrimSpace(address),
		DistanceKm: km,
		Fee:        domain.Round2(s.fees.BaseFee + km*s.fees.PerKm),
	}, nil
}

func (s *DeliveryService) distanceFor(normalized string) float64 {
	for _, zone := range s.zones {
		if strings.HasPrefix(normalized, zone) {
			return s.fees.Distances[zone]
		}
	}

	h := fnv.New32a()
	h.Write([]byte(normalized))
	steps := uint32((maxDistanceKm - minDistanceKm) * 100)
	return domain.Round2(minDistanceKm + float64(h.Sum32()%(steps+1))/100)
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

func (s *DeliveryService) Assign(ctx context.Context, orderID string, courierID int) (*domain.Order, error) {
	unlock := s.opts.Locks.Lock(orderID)
	defer unlock()

	var order *domain.Order
	if err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.Get(ctx, orderID)
		return err
	}); err != nil {
		return nil, err
	}

	courier, err := s.GetCourier(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if !courier.Active {
		return nil, fmt.Errorf("%w: courier %d", domain.ErrInactiveCourier, courierID)
	}
	if order.Type != domain.OrderTypeDelivery {
		return nil, fmt.Errorf("%w: takeaway orders have no courier", domain.ErrValidation)
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is %s", domain.ErrOrderClosed, orderID, order.Status)
	}

	now := s.opts.Clock()
	if err := s.storage(ctx, func(ctx context.Context) error {
		return s.couriers.Assign(ctx, orderID, courierID, now)
	}); err != nil {
		return nil, err
	}

	order.DeliveryPersonID = &courierID
	order.UpdatedAt = now

	s.opts.Metrics.IncEvent("courier_assigned")
	logger.WithCtx(ctx).Info("courier assigned", "order_id", orderID, "courier_id", courierID)
	return order, nil
}

func (s *DeliveryService) CreateCourier(ctx context.Context, courier *domain.Courier) error {
	if err := validation.Struct(courier); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.opts.Policy.DoOnce(ctx, domain.ErrStorageUnavailable, func(ctx context.Context) error {
		return s.couriers.Create(ctx, courier)
	})
}

func (s *DeliveryService) UpdateCourier(ctx context.Context, courier *domain.Courier) error {
	if err := validation.Struct(courier); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.storage(ctx, func(ctx context.Context) error {
		return s.couriers.Update(ctx, courier)
	})
}

func (s *DeliveryService) GetCourier(ctx context.Context, id int) (*domain.Courier, error) {
	var courier *domain.Courier
	err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		courier, err = s.couriers.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return courier, nil
}

func (s *DeliveryService) ListCouriers(ctx context.Context, activeOnly bool) ([]domain.Courier, error) {
	var couriers []domain.Courier
	err := s.storage(ctx, func(ctx context.Context) error {
		var err error
		couriers, err = s.couriers.List(ctx, activeOnly)
		return err
	})
	return couriers, err
}
