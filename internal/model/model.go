// Package model содержит доменные сущности маркетплейса.
package model

import "time"

// Role определяет роль учётной записи.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// ValidRole сообщает, входит ли роль в допустимый набор.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// AccountStatus описывает статус модерации учётной записи продавца.
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
	AccountStatusRejected AccountStatus = "rejected"
)

// User представляет учётную запись: покупателя, продавца или администратора.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   []byte
	Role           Role
	IsVerified     bool
	Status         AccountStatus
	ProfileDetails map[string]string
	CreatedAt      time.Time
}

// Product описывает товар, принадлежащий одному продавцу.
// Цена хранится в копейках.
type Product struct {
	ID          string
	VendorID    string
	Name        string
	PriceCents  int64
	Image       string
	Description string
	Category    string
	Stock       int
	Approved    bool
	CreatedAt   time.Time
}

// CartItem описывает позицию корзины или заказа: товар и количество.
type CartItem struct {
	ProductID string
	Quantity  int
}

// Cart описывает корзину покупателя. У покупателя не более одной корзины.
type Cart struct {
	ID     string
	UserID string
	Items  []CartItem
}

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
	OrderStatusRefunded  OrderStatus = "Refunded"
	OrderStatusDisputed  OrderStatus = "Disputed"
)

// ValidOrderStatus сообщает, входит ли статус в допустимый набор.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded,
		OrderStatusDisputed:
		return true
	}
	return false
}

// ShippingAddress содержит адрес доставки заказа.
type ShippingAddress struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// Order описывает заказ. Сумма фиксируется в копейках на момент оформления
// и после создания не меняется.
type Order struct {
	ID              string
	CustomerID      string
	VendorIDs       []string
	Items           []CartItem
	TotalCents      int64
	ShippingAddress ShippingAddress
	Status          OrderStatus
	CreatedAt       time.Time
}

// Notification описывает сообщение пользователю с флагом прочтения.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	Type      string
	IsRead    bool
	CreatedAt time.Time
}

// Review описывает отзыв покупателя о товаре.
type Review struct {
	ID           string
	ProductID    string
	CustomerID   string
	CustomerName string
	Rating       int
	Comment      string
	CreatedAt    time.Time
}

// AuditLog описывает запись журнала действий. Записи не изменяются и не удаляются.
type AuditLog struct {
	ID        int64
	UserID    string
	Action    string
	Details   string
	CreatedAt time.Time
}

// FAQ описывает пару вопрос-ответ.
type FAQ struct {
	ID        string
	Question  string
	Answer    string
	Category  string
	CreatedAt time.Time
}
