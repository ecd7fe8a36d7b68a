package service

import (
	"context"

	"github.com/Edgar-Klewert/restaurant-delivery/agg-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	MirrorDishRating(ctx context.Context, event domain.RatingEvent) error
	RecordOrderCreated(ctx context.Context, event domain.OrderEvent) error
	RecordStatusChange(ctx context.Context, event domain.OrderEvent) error
}

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Handle(ctx context.Context, payload []byte) error
}

var (
	_ StoreInterface    = (*storage.RedisStore)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
