package store

import (
	"context"
	"errors"

	"demo/foodorders/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repo struct {
	Pool PgxIface
}

type PgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func New(pool PgxIface) *Repo { return &Repo{Pool: pool} }

func (r *Repo) UpsertOrder(ctx context.Context, o model.Order) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO orders (order_id, item)
		VALUES ($1, $2)
		ON CONFLICT (order_id) DO UPDATE SET
		  item = EXCLUDED.item, updated_at = now()
	`, o.OrderID, o.Item)
	return err
}

func (r *Repo) GetOrder(ctx context.Context, orderID string) (model.Order, bool, error) {
	var o model.Order
	err := r.Pool.QueryRow(ctx, `SELECT order_id, item FROM orders WHERE order_id = $1`, orderID).
		Scan(&o.OrderID, &o.Item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, false, nil
		}
		return model.Order{}, false, err
	}
	return o, true, nil
}
