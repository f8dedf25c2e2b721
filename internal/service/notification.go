package service

import (
	"context"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// CreateNotification создаёт непрочитанное уведомление указанному получателю.
func (s *Service) CreateNotification(ctx context.Context, userID, message, ntype string) (*model.Notification, error) {
	if userID == "" || message == "" || ntype == "" {
		return nil, ErrMissingFields
	}

	id, err := s.repo.CreateNotification(ctx, userID, message, ntype)
	if err != nil {
		return nil, err
	}

	return &model.Notification{
		ID:      id,
		UserID:  userID,
		Message: message,
		Type:    ntype,
	}, nil
}

// ListNotifications возвращает уведомления пользователя, новые первыми.
func (s *Service) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.repo.ListNotificationsByUser(ctx, userID)
}

// MarkNotificationRead отмечает уведомление прочитанным. Повторный вызов
// для уже прочитанного уведомления также завершается успешно.
func (s *Service) MarkNotificationRead(ctx context.Context, id string) error {
	return s.repo.MarkNotificationRead(ctx, id)
}

// UnreadNotificationCount возвращает число непрочитанных уведомлений пользователя.
func (s *Service) UnreadNotificationCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnreadNotifications(ctx, userID)
}
