package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// CreateOrder сохраняет заказ, его позиции и набор продавцов в одной транзакции
// и возвращает идентификатор заказа.
func (r *PostgresRepository) CreateOrder(ctx context.Context, o *model.Order) (string, error) {
	id := uuid.NewString()

	err := r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		_, err = tx.Exec(ctx,
			`INSERT INTO orders (id, customer_id, total_cents, ship_full_name, ship_address,
			                     ship_city, ship_state, ship_zip_code, ship_country, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, o.CustomerID, o.TotalCents,
			o.ShippingAddress.FullName, o.ShippingAddress.Address, o.ShippingAddress.City,
			o.ShippingAddress.State, o.ShippingAddress.ZipCode, o.ShippingAddress.Country,
			string(o.Status),
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i, vendorID := range o.VendorIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO order_vendors (order_id, vendor_id, position) VALUES ($1, $2, $3)`,
				id, vendorID, i,
			)
			if err != nil {
				return fmt.Errorf("insert order vendor: %w", err)
			}
		}

		for i, it := range o.Items {
			_, err := tx.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, position) VALUES ($1, $2, $3, $4)`,
				id, it.ProductID, it.Quantity, i,
			)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

const orderColumns = `id, customer_id, total_cents, ship_full_name, ship_address,
	ship_city, ship_state, ship_zip_code, ship_country, status, created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var status string

	err := row.Scan(&o.ID, &o.CustomerID, &o.TotalCents,
		&o.ShippingAddress.FullName, &o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.State, &o.ShippingAddress.ZipCode, &o.ShippingAddress.Country,
		&status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	o.Status = model.OrderStatus(status)
	return &o, nil
}

func (r *PostgresRepository) loadOrderDetails(ctx context.Context, o *model.Order) error {
	vendorRows, err := r.pool.Query(ctx,
		`SELECT vendor_id FROM order_vendors WHERE order_id = $1 ORDER BY position`, o.ID,
	)
	if err != nil {
		return fmt.Errorf("select order vendors: %w", err)
	}
	defer vendorRows.Close()

	for vendorRows.Next() {
		var vendorID string
		if err := vendorRows.Scan(&vendorID); err != nil {
			return fmt.Errorf("scan order vendor: %w", err)
		}
		o.VendorIDs = append(o.VendorIDs, vendorID)
	}
	if err := vendorRows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	itemRows, err := r.pool.Query(ctx,
		`SELECT product_id, quantity FROM order_items WHERE order_id = $1 ORDER BY position`, o.ID,
	)
	if err != nil {
		return fmt.Errorf("select order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it model.CartItem
		if err := itemRows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	return nil
}

// GetOrderByID возвращает заказ вместе с позициями и набором продавцов.
func (r *PostgresRepository) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := r.loadOrderDetails(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *PostgresRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var res []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		res = append(res, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range res {
		if err := r.loadOrderDetails(ctx, &res[i]); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// ListOrdersByCustomer возвращает заказы покупателя, новые первыми.
func (r *PostgresRepository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID,
	)
}

// ListOrdersByVendor возвращает заказы, в которых участвует продавец, новые первыми.
func (r *PostgresRepository) ListOrdersByVendor(ctx context.Context, vendorID string) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE id IN (SELECT order_id FROM order_vendors WHERE vendor_id = $1)
		 ORDER BY created_at DESC`,
		vendorID,
	)
}

// ListOrders возвращает все заказы, новые первыми.
func (r *PostgresRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`,
	)
}

// UpdateOrderStatus устанавливает статус заказа.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}
