// Package handler содержит HTTP-обработчики API сервиса маркетплейса.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/markethub-system/internal/middleware"
	"github.com/mmeshcher/markethub-system/internal/model"
	"github.com/mmeshcher/markethub-system/internal/repository"
	"github.com/mmeshcher/markethub-system/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	SignUp(ctx context.Context, name, email, password string, role model.Role, details map[string]string) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID, name string, details map[string]string) (*model.User, error)

	CreateProduct(ctx context.Context, vendorID string, role model.Role, p *model.Product) (*model.Product, error)
	ListProducts(ctx context.Context, userID string, role model.Role) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	GetProductDetails(ctx context.Context, id string) (*model.Product, []model.Review, error)
	UpdateProduct(ctx context.Context, userID string, role model.Role, p *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, userID string, role model.Role, productID string) error

	AddCartItem(ctx context.Context, userID, productID string, qty int) (*model.Cart, error)
	GetCart(ctx context.Context, userID string) (*model.Cart, error)
	IncreaseCartItem(ctx context.Context, cartID, productID string) (*model.Cart, error)
	DecreaseCartItem(ctx context.Context, cartID, productID string) (*model.Cart, error)
	SetCartItemQuantity(ctx context.Context, cartID, productID string, qty int) (*model.Cart, error)
	RemoveCartItem(ctx context.Context, userID, productID string) (*model.Cart, error)
	ClearCart(ctx context.Context, userID string) error

	PlaceOrder(ctx context.Context, customerID string, items []model.CartItem, address model.ShippingAddress) (*model.Order, error)
	ListOrders(ctx context.Context, userID string, role model.Role) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, userID string, role model.Role, orderID string, status model.OrderStatus) (*model.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID string) (*model.Order, error)

	CreateNotification(ctx context.Context, userID, message, ntype string) (*model.Notification, error)
	ListNotifications(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	UnreadNotificationCount(ctx context.Context, userID string) (int64, error)

	AddReview(ctx context.Context, customerID, productID string, rating int, comment string) (*model.Review, error)
	ListReviews(ctx context.Context, productID string) ([]model.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID string) error

	ListFAQs(ctx context.Context) ([]model.FAQ, error)
	CreateFAQ(ctx context.Context, question, answer, category string) (*model.FAQ, error)
	UpdateFAQ(ctx context.Context, id, question, answer string) error
	DeleteFAQ(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateUser(ctx context.Context, id, name, email string, role model.Role, isVerified bool) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	CreateUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)
	ApproveVendor(ctx context.Context, id string) (*model.User, error)
	RejectVendor(ctx context.Context, id string) (*model.User, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	ApproveProduct(ctx context.Context, id string) error
	RejectProduct(ctx context.Context, id string) error
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	ForceOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error)
	ResolveDispute(ctx context.Context, orderID string, resolution model.OrderStatus) (*model.Order, error)
	ListAuditLogs(ctx context.Context) ([]model.AuditLog, error)

	VendorSalesReport(ctx context.Context, vendorID string) (*service.SalesReport, error)
}

// Handler реализует HTTP-обработчики API сервиса маркетплейса.
type Handler struct {
	service         Service
	logger          *zap.Logger
	authMiddleware  *middleware.AuthMiddleware
	frontendAddress string
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware, frontendAddress string) *Handler {
	return &Handler{
		service:         s,
		logger:          logger,
		authMiddleware:  auth,
		frontendAddress: frontendAddress,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// writeError переводит ошибки сервиса в HTTP-статусы. Неожиданные ошибки
// логируются и отдаются как 500 без внутренних деталей.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int

	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrQuantityTooSmall),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidResolution),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrNotVendorAccount),
		errors.Is(err, service.ErrAlreadyVerified):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotVerified):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrNotificationNotFound),
		errors.Is(err, repository.ErrReviewNotFound),
		errors.Is(err, repository.ErrFAQNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, service.ErrOrderNotCancellable):
		status = http.StatusConflict
	default:
		h.logger.Error("internal error", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Server Error"})
		return
	}

	h.writeJSON(w, status, errorResponse{Message: err.Error()})
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
	return identity, ok
}

func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func money(cents int64) float64 {
	return float64(cents) / 100
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
