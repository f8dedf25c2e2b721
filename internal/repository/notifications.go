package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// CreateNotification создаёт непрочитанное уведомление и возвращает его идентификатор.
func (r *PostgresRepository) CreateNotification(ctx context.Context, userID, message, ntype string) (string, error) {
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO notifications (id, user_id, message, type) VALUES ($1, $2, $3, $4)`,
		id, userID, message, ntype,
	)
	if err != nil {
		return "", fmt.Errorf("create notification: %w", err)
	}

	return id, nil
}

// ListNotificationsByUser возвращает уведомления пользователя, новые первыми.
func (r *PostgresRepository) ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, message, type, is_read, created_at
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select notifications: %w", err)
	}
	defer rows.Close()

	var res []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		res = append(res, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// MarkNotificationRead отмечает уведомление прочитанным. Операция идемпотентна.
func (r *PostgresRepository) MarkNotificationRead(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// CountUnreadNotifications возвращает число непрочитанных уведомлений пользователя.
func (r *PostgresRepository) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}
