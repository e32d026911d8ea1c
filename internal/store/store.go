// Package store holds the order persistence backends. Every backend is an
// unconditional upsert plus a point lookup keyed by order id.
package store

import (
	"context"

	"demo/foodorders/internal/model"
)

//go:generate mockgen -destination=storemock/mock_repository.go -package=storemock demo/foodorders/internal/store Repository

type Repository interface {
	UpsertOrder(ctx context.Context, o model.Order) error
	// GetOrder reports ok=false with a nil error when no order has the id.
	GetOrder(ctx context.Context, orderID string) (model.Order, bool, error)
}
