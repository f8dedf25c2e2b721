// Package service реализует бизнес-логику сервиса маркетплейса.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mmeshcher/markethub-system/internal/model"
	"github.com/mmeshcher/markethub-system/internal/repository"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotVerified возвращается при входе без подтверждённого email.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrAlreadyVerified возвращается при повторном подтверждении email.
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrInvalidToken возвращается при недействительном токене подтверждения.
	ErrInvalidToken = errors.New("invalid verification token")
	// ErrInvalidRole возвращается, если роль не входит в допустимый набор.
	ErrInvalidRole = errors.New("invalid role")
	// ErrForbidden возвращается при несоответствии роли или владельца ресурса.
	ErrForbidden = errors.New("access denied")
	// ErrQuantityTooSmall возвращается, если количество в корзине меньше единицы.
	ErrQuantityTooSmall = errors.New("quantity must be at least 1")
	// ErrEmptyOrder возвращается при оформлении заказа без позиций.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrInvalidStatus возвращается, если статус заказа не входит в допустимый набор.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidResolution возвращается, если статус разрешения спора не входит в допустимый набор.
	ErrInvalidResolution = errors.New("invalid resolution status")
	// ErrOrderNotCancellable возвращается при отмене заказа не в статусе Pending.
	ErrOrderNotCancellable = errors.New("order can be cancelled only while pending")
	// ErrNotVendorAccount возвращается при модерации пользователя, не являющегося продавцом.
	ErrNotVendorAccount = errors.New("user is not a vendor")
	// ErrMissingFields возвращается при отсутствии обязательных полей запроса.
	ErrMissingFields = errors.New("missing required fields")
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	CreateUser(ctx context.Context, u *model.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id, name string, details map[string]string) error
	UpdateUser(ctx context.Context, id, name, email string, role model.Role, isVerified bool) error
	DeleteUser(ctx context.Context, id string) error
	SetUserVerified(ctx context.Context, id string) error
	SetUserModeration(ctx context.Context, id string, isVerified bool, status model.AccountStatus) error

	CreateProduct(ctx context.Context, p *model.Product) (string, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) (map[string]model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByVendor(ctx context.Context, vendorID string) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	SetProductApproval(ctx context.Context, id string, approved bool) error

	GetCartByUser(ctx context.Context, userID string) (*model.Cart, error)
	GetCartByID(ctx context.Context, id string) (*model.Cart, error)
	SaveCart(ctx context.Context, cart *model.Cart) error
	DeleteCartByUser(ctx context.Context, userID string) error

	CreateOrder(ctx context.Context, o *model.Order) (string, error)
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]model.Order, error)
	ListOrdersByVendor(ctx context.Context, vendorID string) ([]model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error

	CreateNotification(ctx context.Context, userID, message, ntype string) (string, error)
	ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	CountUnreadNotifications(ctx context.Context, userID string) (int64, error)

	CreateReview(ctx context.Context, rv *model.Review) (string, error)
	GetReviewByID(ctx context.Context, id string) (*model.Review, error)
	ListReviewsByProduct(ctx context.Context, productID string) ([]model.Review, error)
	DeleteReview(ctx context.Context, id string) error

	CreateAuditLog(ctx context.Context, userID, action, details string) error
	ListAuditLogs(ctx context.Context) ([]model.AuditLog, error)

	CreateFAQ(ctx context.Context, f *model.FAQ) (string, error)
	ListFAQs(ctx context.Context) ([]model.FAQ, error)
	UpdateFAQ(ctx context.Context, id, question, answer string) error
	DeleteFAQ(ctx context.Context, id string) error

	VendorMonthlySales(ctx context.Context, vendorID string) ([]repository.MonthlySales, error)
}

// Mailer описывает контракт отправки писем подтверждения.
type Mailer interface {
	SendVerificationMail(ctx context.Context, email, link string) error
}

// Service содержит бизнес-логику сервиса маркетплейса.
type Service struct {
	repo          Repository
	mailer        Mailer
	logger        *zap.Logger
	tokenSecret   []byte
	publicAddress string
}

// NewService создаёт новый сервис с указанным репозиторием и отправителем писем.
func NewService(repo Repository, mailer Mailer, logger *zap.Logger, tokenSecret, publicAddress string) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:          repo,
		mailer:        mailer,
		logger:        logger,
		tokenSecret:   []byte(tokenSecret),
		publicAddress: publicAddress,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// audit добавляет запись в журнал действий. Сбой журнала не прерывает операцию.
func (s *Service) audit(ctx context.Context, userID, action, details string) {
	if err := s.repo.CreateAuditLog(ctx, userID, action, details); err != nil {
		s.logger.Error("audit log error", zap.Error(err), zap.String("action", action))
	}
}
