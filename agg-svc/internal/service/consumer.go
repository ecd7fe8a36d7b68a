package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/agg-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"
)

const readErrorBackoff = time.Second

type Consumer struct {
	Name    string
	Reader  MessageReader
	Store   StoreInterface
	Metrics *metrics.Metrics
}

func NewConsumer(name string, reader MessageReader, store StoreInterface, m *metrics.Metrics) *Consumer {
	return &Consumer{
		Name:    name,
		Reader:  reader,
		Store:   store,
		Metrics: m,
	}
}

// Start reads until ctx is cancelled. A message that fails to apply is logged
// and skipped.
func (c *Consumer) Start(ctx context.Context) {
	log := logger.WithCtx(ctx).With("consumer", c.Name)
	log.Info("starting consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("error reading message", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(readErrorBackoff):
			}
			continue
		}

		if err := c.Handle(ctx, message.Value); err != nil {
			log.Error("failed to apply message", "offset", message.Offset, "error", err)
		}
	}
}

var errMalformed = errors.New("malformed message")

func (c *Consumer) Handle(ctx context.Context, payload []byte) error {
	var envelope domain.Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}

	var err error
	switch envelope.Type {
	case domain.EventNewRating:
		var event domain.RatingEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		err = c.Store.MirrorDishRating(ctx, event)
	case domain.EventOrderCreated, domain.EventOrderStatusChanged:
		var event domain.OrderEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		if envelope.Type == domain.EventOrderCreated {
			err = c.Store.RecordOrderCreated(ctx, event)
		} else {
			err = c.Store.RecordStatusChange(ctx, event)
		}
	default:
		logger.WithCtx(ctx).Debug("ignoring message", "type", envelope.Type)
		return nil
	}
	if err != nil {
		return err
	}

	c.Metrics.IncEvent("aggregated_" + envelope.Type)
	return nil
}
