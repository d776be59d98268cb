package repository

import (
	"context"
	"errors"

	"github.com/leanlee/shopchat/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var orderColumns = []string{
	"id", "customer_id", "order_number", "placed_at", "status",
	"COALESCE(shipping_carrier, '')", "COALESCE(tracking_number, '')", "eta_date",
}

type OrderRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewOrderRepository(db *pgxpool.Pool, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

// ListOpenByCustomer returns the customer's orders still in flight
// (processing or in transit), newest first.
func (r *OrderRepository) ListOpenByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	query := squirrel.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"LOWER(status)": []string{"processing", "in_transit"}}).
		OrderBy("placed_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}

	return orders, rows.Err()
}

// GetBundleByID fetches one order together with its line items.
func (r *OrderRepository) GetBundleByID(ctx context.Context, id int64) (*models.Order, []models.OrderItem, error) {
	query := squirrel.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	itemsQuery := squirrel.Select("order_id", "sku", "name", "qty").
		From("order_items").
		Where(squirrel.Eq{"order_id": id}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = itemsQuery.ToSql()
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.OrderID, &it.SKU, &it.Name, &it.Qty); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}

	return order, items, rows.Err()
}

// HasAnyForCustomer reports whether the customer ever placed an order,
// regardless of status.
func (r *OrderRepository) HasAnyForCustomer(ctx context.Context, customerID int64) (bool, error) {
	query := squirrel.Select("1").
		From("orders").
		Where(squirrel.Eq{"customer_id": customerID}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.OrderNumber, &o.PlacedAt, &o.Status,
		&o.ShippingCarrier, &o.TrackingNumber, &o.ETADate,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
