package handler

import (
	"github.com/mmeshcher/markethub-system/internal/model"
)

// userResponse отдаёт учётную запись без хэша пароля.
type userResponse struct {
	UserID         string            `json:"userId"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Role           string            `json:"role"`
	IsVerified     bool              `json:"isVerified"`
	Status         string            `json:"status"`
	ProfileDetails map[string]string `json:"profileDetails"`
	CreatedAt      string            `json:"createdAt"`
}

func toUserResponse(u *model.User) userResponse {
	details := u.ProfileDetails
	if details == nil {
		details = map[string]string{}
	}

	return userResponse{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		IsVerified:     u.IsVerified,
		Status:         string(u.Status),
		ProfileDetails: details,
		CreatedAt:      formatTime(u.CreatedAt),
	}
}

type productResponse struct {
	ID          string  `json:"id"`
	VendorID    string  `json:"vendorId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Approved    bool    `json:"approved"`
	CreatedAt   string  `json:"createdAt"`
}

func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		VendorID:    p.VendorID,
		Name:        p.Name,
		Price:       money(p.PriceCents),
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Stock:       p.Stock,
		Approved:    p.Approved,
		CreatedAt:   formatTime(p.CreatedAt),
	}
}

func toProductResponses(products []model.Product) []productResponse {
	res := make([]productResponse, 0, len(products))
	for i := range products {
		res = append(res, toProductResponse(&products[i]))
	}
	return res
}

type cartItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	ID       string             `json:"id"`
	UserID   string             `json:"userId"`
	Products []cartItemResponse `json:"products"`
}

func toCartResponse(c *model.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	return cartResponse{ID: c.ID, UserID: c.UserID, Products: items}
}

type orderResponse struct {
	ID              string                `json:"id"`
	CustomerID      string                `json:"customerId"`
	VendorIDs       []string              `json:"vendorIds"`
	Products        []cartItemResponse    `json:"products"`
	TotalAmount     float64               `json:"totalAmount"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	OrderStatus     string                `json:"orderStatus"`
	CreatedAt       string                `json:"createdAt"`
}

func toOrderResponse(o *model.Order) orderResponse {
	items := make([]cartItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, cartItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	vendorIDs := o.VendorIDs
	if vendorIDs == nil {
		vendorIDs = []string{}
	}

	return orderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		VendorIDs:       vendorIDs,
		Products:        items,
		TotalAmount:     money(o.TotalCents),
		ShippingAddress: o.ShippingAddress,
		OrderStatus:     string(o.Status),
		CreatedAt:       formatTime(o.CreatedAt),
	}
}

func toOrderResponses(orders []model.Order) []orderResponse {
	res := make([]orderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toOrderResponse(&orders[i]))
	}
	return res
}

type notificationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

func toNotificationResponse(n *model.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: formatTime(n.CreatedAt),
	}
}

type reviewResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName,omitempty"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"createdAt"`
}

func toReviewResponse(rv *model.Review) reviewResponse {
	return reviewResponse{
		ID:           rv.ID,
		ProductID:    rv.ProductID,
		CustomerID:   rv.CustomerID,
		CustomerName: rv.CustomerName,
		Rating:       rv.Rating,
		Comment:      rv.Comment,
		CreatedAt:    formatTime(rv.CreatedAt),
	}
}

type faqResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
}

func toFAQResponse(f *model.FAQ) faqResponse {
	return faqResponse{ID: f.ID, Question: f.Question, Answer: f.Answer, Category: f.Category}
}

type auditLogResponse struct {
	ID        int64  `json:"id"`
	UserID    string `json:"userId"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}

func toAuditLogResponse(l *model.AuditLog) auditLogResponse {
	return auditLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		Details:   l.Details,
		Timestamp: formatTime(l.CreatedAt),
	}
}
