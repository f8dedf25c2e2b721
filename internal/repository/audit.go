package repository

import (
	"context"
	"fmt"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// CreateAuditLog добавляет запись в журнал действий.
func (r *PostgresRepository) CreateAuditLog(ctx context.Context, userID, action, details string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (user_id, action, details) VALUES ($1, $2, $3)`,
		userID, action, details,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}

	return nil
}

// ListAuditLogs возвращает записи журнала действий, новые первыми.
func (r *PostgresRepository) ListAuditLogs(ctx context.Context) ([]model.AuditLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, action, details, created_at FROM audit_logs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select audit logs: %w", err)
	}
	defer rows.Close()

	var res []model.AuditLog
	for rows.Next() {
		var l model.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		res = append(res, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}
