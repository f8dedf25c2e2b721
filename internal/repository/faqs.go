package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// CreateFAQ создаёт запись FAQ и возвращает её идентификатор.
func (r *PostgresRepository) CreateFAQ(ctx context.Context, f *model.FAQ) (string, error) {
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO faqs (id, question, answer, category) VALUES ($1, $2, $3, $4)`,
		id, f.Question, f.Answer, f.Category,
	)
	if err != nil {
		return "", fmt.Errorf("create faq: %w", err)
	}

	return id, nil
}

// ListFAQs возвращает все записи FAQ.
func (r *PostgresRepository) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question, answer, category, created_at FROM faqs ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("select faqs: %w", err)
	}
	defer rows.Close()

	var res []model.FAQ
	for rows.Next() {
		var f model.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		res = append(res, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// UpdateFAQ обновляет вопрос и ответ записи FAQ.
func (r *PostgresRepository) UpdateFAQ(ctx context.Context, id, question, answer string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE faqs SET question = $2, answer = $3 WHERE id = $1`,
		id, question, answer,
	)
	if err != nil {
		return fmt.Errorf("update faq: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrFAQNotFound
	}

	return nil
}

// DeleteFAQ удаляет запись FAQ.
func (r *PostgresRepository) DeleteFAQ(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faq: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrFAQNotFound
	}

	return nil
}
