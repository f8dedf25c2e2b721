package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// CreateReview создаёт отзыв и возвращает его идентификатор.
func (r *PostgresRepository) CreateReview(ctx context.Context, rv *model.Review) (string, error) {
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO reviews (id, product_id, customer_id, rating, comment) VALUES ($1, $2, $3, $4, $5)`,
		id, rv.ProductID, rv.CustomerID, rv.Rating, rv.Comment,
	)
	if err != nil {
		return "", fmt.Errorf("create review: %w", err)
	}

	return id, nil
}

// GetReviewByID возвращает отзыв по идентификатору.
func (r *PostgresRepository) GetReviewByID(ctx context.Context, id string) (*model.Review, error) {
	var rv model.Review
	err := r.pool.QueryRow(ctx,
		`SELECT id, product_id, customer_id, rating, comment, created_at FROM reviews WHERE id = $1`,
		id,
	).Scan(&rv.ID, &rv.ProductID, &rv.CustomerID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &rv, nil
}

// ListReviewsByProduct возвращает отзывы о товаре вместе с именами авторов.
func (r *PostgresRepository) ListReviewsByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.product_id, r.customer_id, COALESCE(u.name, ''), r.rating, r.comment, r.created_at
		 FROM reviews r
		 LEFT JOIN users u ON u.id = r.customer_id
		 WHERE r.product_id = $1
		 ORDER BY r.created_at DESC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	var res []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.CustomerID, &rv.CustomerName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		res = append(res, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// DeleteReview удаляет отзыв.
func (r *PostgresRepository) DeleteReview(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}
