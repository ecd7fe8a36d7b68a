package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishRating keys messages by dish so one dish's events stay ordered.
func (p *KafkaPublisher) PublishRating(ctx context.Context, event domain.RatingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.DishID)),
		Value: payload,
	})
}
