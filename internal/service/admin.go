package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// Операции этого файла доступны только администраторам; проверка роли
// выполняется единым гейтом на уровне маршрутизации.

// ListUsers возвращает всех пользователей.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser возвращает пользователя по идентификатору.
func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateUser обновляет изменяемые поля пользователя.
func (s *Service) UpdateUser(ctx context.Context, id, name, email string, role model.Role, isVerified bool) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if err := s.repo.UpdateUser(ctx, id, name, email, role, isVerified); err != nil {
		return nil, err
	}

	return s.repo.GetUserByID(ctx, id)
}

// DeleteUser удаляет пользователя.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}

// CreateUser создаёт пользователя в обход обычной регистрации: письмо
// подтверждения не отправляется. Администраторы создаются сразу
// подтверждёнными и одобренными, остальные роли проходят модерацию.
func (s *Service) CreateUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	if name == "" || email == "" || password == "" || role == "" {
		return nil, ErrMissingFields
	}
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsVerified:   role == model.RoleAdmin,
		Status:       model.AccountStatusPending,
	}
	if role == model.RoleAdmin {
		u.Status = model.AccountStatusApproved
	}

	u.ID, err = s.repo.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// ApproveVendor одобряет регистрацию продавца.
func (s *Service) ApproveVendor(ctx context.Context, id string) (*model.User, error) {
	return s.moderateVendor(ctx, id, true, model.AccountStatusApproved)
}

// RejectVendor отклоняет регистрацию продавца.
func (s *Service) RejectVendor(ctx context.Context, id string) (*model.User, error) {
	return s.moderateVendor(ctx, id, false, model.AccountStatusRejected)
}

func (s *Service) moderateVendor(ctx context.Context, id string, verified bool, status model.AccountStatus) (*model.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Role != model.RoleVendor {
		return nil, ErrNotVendorAccount
	}

	if err := s.repo.SetUserModeration(ctx, id, verified, status); err != nil {
		return nil, err
	}

	u.IsVerified = verified
	u.Status = status
	return u, nil
}

// ListAllProducts возвращает все товары для экрана модерации.
func (s *Service) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts(ctx)
}

// ApproveProduct устанавливает флаг одобрения товара.
func (s *Service) ApproveProduct(ctx context.Context, id string) error {
	return s.repo.SetProductApproval(ctx, id, true)
}

// RejectProduct снимает флаг одобрения товара. Отдельного статуса
// «отклонён» у товаров нет: отклонение и снятие одобрения совпадают.
func (s *Service) RejectProduct(ctx context.Context, id string) error {
	return s.repo.SetProductApproval(ctx, id, false)
}

// ListAllOrders возвращает все заказы.
func (s *Service) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.repo.ListOrders(ctx)
}

// ForceOrderStatus устанавливает статус заказа без проверки принадлежности.
func (s *Service) ForceOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}

// ResolveDispute назначает заказу терминальный статус разрешения спора.
// Допустимы только Refunded, Disputed и Cancelled.
func (s *Service) ResolveDispute(ctx context.Context, orderID string, resolution model.OrderStatus) (*model.Order, error) {
	switch resolution {
	case model.OrderStatusRefunded, model.OrderStatusDisputed, model.OrderStatusCancelled:
	default:
		return nil, ErrInvalidResolution
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, resolution); err != nil {
		return nil, err
	}

	order.Status = resolution
	return order, nil
}

// ListAuditLogs возвращает журнал действий.
func (s *Service) ListAuditLogs(ctx context.Context) ([]model.AuditLog, error) {
	return s.repo.ListAuditLogs(ctx)
}
