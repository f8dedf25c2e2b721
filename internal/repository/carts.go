package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/markethub-system/internal/model"
)

func (r *PostgresRepository) loadCartItems(ctx context.Context, cartID string) ([]model.CartItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY position`,
		cartID,
	)
	if err != nil {
		return nil, fmt.Errorf("select cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

// GetCartByUser возвращает корзину покупателя.
func (r *PostgresRepository) GetCartByUser(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id FROM carts WHERE user_id = $1`, userID,
	).Scan(&cart.ID, &cart.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	cart.Items, err = r.loadCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

// GetCartByID возвращает корзину по идентификатору.
func (r *PostgresRepository) GetCartByID(ctx context.Context, id string) (*model.Cart, error) {
	var cart model.Cart
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id FROM carts WHERE id = $1`, id,
	).Scan(&cart.ID, &cart.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	cart.Items, err = r.loadCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

// SaveCart сохраняет корзину целиком, создавая её при необходимости.
// Позиции перезаписываются состоянием из cart.Items (last-write-wins).
func (r *PostgresRepository) SaveCart(ctx context.Context, cart *model.Cart) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		if cart.ID == "" {
			cart.ID = uuid.NewString()
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO carts (id, user_id) VALUES ($1, $2)
			 ON CONFLICT (user_id) DO NOTHING`,
			cart.ID, cart.UserID,
		)
		if err != nil {
			return fmt.Errorf("insert cart: %w", err)
		}

		// При гонке за создание корзины берём идентификатор победившей строки.
		err = tx.QueryRow(ctx,
			`SELECT id FROM carts WHERE user_id = $1`, cart.UserID,
		).Scan(&cart.ID)
		if err != nil {
			return fmt.Errorf("select cart id: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
			return fmt.Errorf("delete cart items: %w", err)
		}

		for i, it := range cart.Items {
			_, err := tx.Exec(ctx,
				`INSERT INTO cart_items (cart_id, product_id, quantity, position) VALUES ($1, $2, $3, $4)`,
				cart.ID, it.ProductID, it.Quantity, i,
			)
			if err != nil {
				return fmt.Errorf("insert cart item: %w", err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}

		return nil
	})
}

// DeleteCartByUser удаляет корзину покупателя вместе с позициями.
func (r *PostgresRepository) DeleteCartByUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
