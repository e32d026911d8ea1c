package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"demo/foodorders/internal/events"
	"demo/foodorders/internal/model"
	"demo/foodorders/internal/store"
	"demo/foodorders/internal/validate"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrStoreUnavailable = errors.New("order store unavailable")
)

var tracer = otel.Tracer("demo/foodorders/internal/service")

type Service struct {
	repo      store.Repository
	publisher events.Publisher
	logger    *slog.Logger
}

func New(repo store.Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

// GetOrder returns ErrNotFound on a miss and wraps backend failures in
// ErrStoreUnavailable. Malformed ids never reach the store.
func (s *Service) GetOrder(ctx context.Context, id string) (model.Order, error) {
	ctx, span := tracer.Start(ctx, "service.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	if err := validate.ValidateOrderID(id); err != nil {
		return model.Order{}, fail(span, err)
	}

	o, ok, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "get order", "order_id", id, "error", err)
		return model.Order{}, fail(span, fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
	}
	if !ok {
		span.SetAttributes(attribute.Bool("order.found", false))
		return model.Order{}, ErrNotFound
	}
	span.SetAttributes(attribute.Bool("order.found", true))
	return o, nil
}

// CreateOrUpdateOrder validates o and upserts it; an existing order with the
// same id is overwritten.
func (s *Service) CreateOrUpdateOrder(ctx context.Context, o model.Order) (model.Order, error) {
	ctx, span := tracer.Start(ctx, "service.CreateOrUpdateOrder", trace.WithAttributes(attribute.String("order.id", o.OrderID)))
	defer span.End()

	if err := validate.ValidateOrder(o); err != nil {
		return model.Order{}, fail(span, err)
	}

	if err := s.repo.UpsertOrder(ctx, o); err != nil {
		s.logger.ErrorContext(ctx, "upsert order", "order_id", o.OrderID, "error", err)
		return model.Order{}, fail(span, fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
	}

	s.publisher.Publish(ctx, o)
	s.logger.InfoContext(ctx, "order received", "order_id", o.OrderID, "item", o.Item)
	return o, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
