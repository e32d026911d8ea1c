// Package events publishes order events to an external sink. Publishing is
// fire-and-forget: callers never wait on or react to delivery.
package events

import (
	"context"
	"time"

	"demo/foodorders/internal/model"
)

const TypeOrderReceived = "order.received"

type Publisher interface {
	Publish(ctx context.Context, o model.Order)
}

type Event struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	Item       string    `json:"item"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Nop struct{}

func (Nop) Publish(context.Context, model.Order) {}
