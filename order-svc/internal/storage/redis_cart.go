package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCartStore keeps one JSON document per user under cart:{user_id}.
// Every save refreshes the TTL.
type RedisCartStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{Client: client, TTL: ttl}
}

func (s *RedisCartStore) CartKey(userID string) string {
	return "cart:" + userID
}

// maxCartUpdates bounds how often Update restarts after a concurrent write.
const maxCartUpdates = 10

func (s *RedisCartStore) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	return decodeCart(s.Client.Get(ctx, s.CartKey(userID)), userID)
}

func decodeCart(cmd *redis.StringCmd, userID string) (*domain.Cart, error) {
	raw, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, redisError(err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", userID, err)
	}
	cart.UserID = userID
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	cart.Recalculate()
	return &cart, nil
}

// Update loads the cart under WATCH, applies fn and writes it back in a
// MULTI block. A concurrent write to the same cart restarts the cycle with
// the fresh document, so fn may run more than once.
func (s *RedisCartStore) Update(ctx context.Context, userID string, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	key := s.CartKey(userID)
	var updated *domain.Cart

	txf := func(tx *redis.Tx) error {
		cart, err := decodeCart(tx.Get(ctx, key), userID)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}
		cart.Recalculate()
		payload, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("encode cart %s: %w", userID, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.TTL)
			return nil
		})
		if err == nil {
			updated = cart
		}
		return err
	}

	for i := 0; i < maxCartUpdates; i++ {
		err := s.Client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, redisError(err)
	}
	return nil, fmt.Errorf("%w: cart %s kept changing", domain.ErrConflict, userID)
}

func (s *RedisCartStore) Delete(ctx context.Context, userID string) error {
	if err := s.Client.Del(ctx, s.CartKey(userID)).Err(); err != nil {
		return redisError(err)
	}
	return nil
}

func redisError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, redis.ErrClosed) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return err
}
