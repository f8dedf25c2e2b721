package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/markethub-system/internal/model"
	"github.com/mmeshcher/markethub-system/internal/repository"
)

// PlaceOrder оформляет заказ из списка позиций. Повторы одного товара
// сливаются в одну позицию с суммарным количеством. Сумма и набор продавцов
// фиксируются по состоянию товаров на момент вызова. После сохранения заказа
// каждому задействованному продавцу создаётся уведомление; сбой уведомления
// заказ не откатывает (доставка best-effort, транзакции между записями нет).
func (s *Service) PlaceOrder(ctx context.Context, customerID string, items []model.CartItem, address model.ShippingAddress) (*model.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	items = mergeOrderItems(items)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var totalCents int64
	var vendorIDs []string
	seenVendors := make(map[string]bool)

	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", repository.ErrProductNotFound, it.ProductID)
		}

		totalCents += p.PriceCents * int64(it.Quantity)

		if !seenVendors[p.VendorID] {
			seenVendors[p.VendorID] = true
			vendorIDs = append(vendorIDs, p.VendorID)
		}
	}

	order := &model.Order{
		CustomerID:      customerID,
		VendorIDs:       vendorIDs,
		Items:           items,
		TotalCents:      totalCents,
		ShippingAddress: address,
		Status:          model.OrderStatusPending,
	}

	order.ID, err = s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	for _, vendorID := range vendorIDs {
		message := fmt.Sprintf("New Order Received! Order ID: %s", order.ID)
		if _, err := s.repo.CreateNotification(ctx, vendorID, message, "order"); err != nil {
			s.logger.Error("vendor notification error",
				zap.Error(err), zap.String("orderID", order.ID), zap.String("vendorID", vendorID))
		}
	}

	return order, nil
}

// mergeOrderItems сливает повторяющиеся товары в одну позицию, сохраняя
// порядок первого появления.
func mergeOrderItems(items []model.CartItem) []model.CartItem {
	merged := make([]model.CartItem, 0, len(items))
	index := make(map[string]int, len(items))

	for _, it := range items {
		if i, ok := index[it.ProductID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}

	return merged
}

// ListOrders возвращает заказы в зависимости от роли: покупатель видит свои
// заказы, продавец — заказы со своими товарами. Остальным ролям доступ закрыт.
func (s *Service) ListOrders(ctx context.Context, userID string, role model.Role) ([]model.Order, error) {
	switch role {
	case model.RoleCustomer:
		return s.repo.ListOrdersByCustomer(ctx, userID)
	case model.RoleVendor:
		return s.repo.ListOrdersByVendor(ctx, userID)
	default:
		return nil, ErrForbidden
	}
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

// UpdateOrderStatus устанавливает статус заказа. Продавец может менять только
// заказы со своими товарами, администратор — любые. Граф переходов статусов
// намеренно не проверяется.
func (s *Service) UpdateOrderStatus(ctx context.Context, userID string, role model.Role, orderID string, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch role {
	case model.RoleVendor:
		isVendorOrder := false
		for _, vendorID := range order.VendorIDs {
			if vendorID == userID {
				isVendorOrder = true
				break
			}
		}
		if !isVendorOrder {
			return nil, ErrForbidden
		}
	case model.RoleAdmin:
	default:
		return nil, ErrForbidden
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}

// CancelOrder отменяет заказ покупателя. Отмена доступна только владельцу
// заказа и только из статуса Pending.
func (s *Service) CancelOrder(ctx context.Context, customerID, orderID string) (*model.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.CustomerID != customerID {
		return nil, ErrForbidden
	}

	if order.Status != model.OrderStatusPending {
		return nil, ErrOrderNotCancellable
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
		return nil, err
	}

	order.Status = model.OrderStatusCancelled
	return order, nil
}
