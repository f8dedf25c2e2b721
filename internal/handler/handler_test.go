package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mmeshcher/markethub-system/internal/chat"
	"github.com/mmeshcher/markethub-system/internal/middleware"
	"github.com/mmeshcher/markethub-system/internal/model"
	"github.com/mmeshcher/markethub-system/internal/repository"
	"github.com/mmeshcher/markethub-system/internal/service"
)

type stubService struct {
	user    *model.User
	userErr error

	product    *model.Product
	products   []model.Product
	productErr error

	cart    *model.Cart
	cartErr error

	order    *model.Order
	orders   []model.Order
	orderErr error

	notification    *model.Notification
	notifications   []model.Notification
	notificationErr error
	unreadCount     int64

	review    *model.Review
	reviews   []model.Review
	reviewErr error

	faq  *model.FAQ
	faqs []model.FAQ

	auditLogs []model.AuditLog

	report    *service.SalesReport
	reportErr error

	verifyErr error
}

func (s *stubService) SignUp(ctx context.Context, name, email, password string, role model.Role, details map[string]string) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) VerifyEmail(ctx context.Context, token string) error { return s.verifyErr }

func (s *stubService) Login(ctx context.Context, email, password string) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) UpdateProfile(ctx context.Context, userID, name string, details map[string]string) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) CreateProduct(ctx context.Context, vendorID string, role model.Role, p *model.Product) (*model.Product, error) {
	return s.product, s.productErr
}

func (s *stubService) ListProducts(ctx context.Context, userID string, role model.Role) ([]model.Product, error) {
	return s.products, s.productErr
}

func (s *stubService) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return s.products, s.productErr
}

func (s *stubService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.product, s.productErr
}

func (s *stubService) GetProductDetails(ctx context.Context, id string) (*model.Product, []model.Review, error) {
	return s.product, s.reviews, s.productErr
}

func (s *stubService) UpdateProduct(ctx context.Context, userID string, role model.Role, p *model.Product) (*model.Product, error) {
	return s.product, s.productErr
}

func (s *stubService) DeleteProduct(ctx context.Context, userID string, role model.Role, productID string) error {
	return s.productErr
}

func (s *stubService) AddCartItem(ctx context.Context, userID, productID string, qty int) (*model.Cart, error) {
	return s.cart, s.cartErr
}

func (s *stubService) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	return s.cart, s.cartErr
}

func (s *stubService) IncreaseCartItem(ctx context.Context, cartID, productID string) (*model.Cart, error) {
	return s.cart, s.cartErr
}

func (s *stubService) DecreaseCartItem(ctx context.Context, cartID, productID string) (*model.Cart, error) {
	return s.cart, s.cartErr
}

func (s *stubService) SetCartItemQuantity(ctx context.Context, cartID, productID string, qty int) (*model.Cart, error) {
	return s.cart, s.cartErr
}

func (s *stubService) RemoveCartItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	return s.cart, s.cartErr
}

func (s *stubService) ClearCart(ctx context.Context, userID string) error { return s.cartErr }

func (s *stubService) PlaceOrder(ctx context.Context, customerID string, items []model.CartItem, address model.ShippingAddress) (*model.Order, error) {
	return s.order, s.orderErr
}

func (s *stubService) ListOrders(ctx context.Context, userID string, role model.Role) ([]model.Order, error) {
	return s.orders, s.orderErr
}

func (s *stubService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return s.order, s.orderErr
}

func (s *stubService) UpdateOrderStatus(ctx context.Context, userID string, role model.Role, orderID string, status model.OrderStatus) (*model.Order, error) {
	return s.order, s.orderErr
}

func (s *stubService) CancelOrder(ctx context.Context, customerID, orderID string) (*model.Order, error) {
	return s.order, s.orderErr
}

func (s *stubService) CreateNotification(ctx context.Context, userID, message, ntype string) (*model.Notification, error) {
	return s.notification, s.notificationErr
}

func (s *stubService) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.notifications, s.notificationErr
}

func (s *stubService) MarkNotificationRead(ctx context.Context, id string) error {
	return s.notificationErr
}

func (s *stubService) UnreadNotificationCount(ctx context.Context, userID string) (int64, error) {
	return s.unreadCount, s.notificationErr
}

func (s *stubService) AddReview(ctx context.Context, customerID, productID string, rating int, comment string) (*model.Review, error) {
	return s.review, s.reviewErr
}

func (s *stubService) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	return s.reviews, s.reviewErr
}

func (s *stubService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	return s.reviewErr
}

func (s *stubService) ListFAQs(ctx context.Context) ([]model.FAQ, error) { return s.faqs, nil }

func (s *stubService) CreateFAQ(ctx context.Context, question, answer, category string) (*model.FAQ, error) {
	return s.faq, nil
}

func (s *stubService) UpdateFAQ(ctx context.Context, id, question, answer string) error { return nil }
func (s *stubService) DeleteFAQ(ctx context.Context, id string) error                   { return nil }

func (s *stubService) ListUsers(ctx context.Context) ([]model.User, error) { return nil, nil }

func (s *stubService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) UpdateUser(ctx context.Context, id, name, email string, role model.Role, isVerified bool) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) DeleteUser(ctx context.Context, id string) error { return s.userErr }

func (s *stubService) CreateUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) ApproveVendor(ctx context.Context, id string) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) RejectVendor(ctx context.Context, id string) (*model.User, error) {
	return s.user, s.userErr
}

func (s *stubService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.products, s.productErr
}

func (s *stubService) ApproveProduct(ctx context.Context, id string) error { return s.productErr }
func (s *stubService) RejectProduct(ctx context.Context, id string) error  { return s.productErr }

func (s *stubService) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.orders, s.orderErr
}

func (s *stubService) ForceOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	return s.order, s.orderErr
}

func (s *stubService) ResolveDispute(ctx context.Context, orderID string, resolution model.OrderStatus) (*model.Order, error) {
	return s.order, s.orderErr
}

func (s *stubService) ListAuditLogs(ctx context.Context) ([]model.AuditLog, error) {
	return s.auditLogs, nil
}

func (s *stubService) VendorSalesReport(ctx context.Context, vendorID string) (*service.SalesReport, error) {
	return s.report, s.reportErr
}

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	auth := middleware.NewAuthMiddleware("test-secret")

	return NewHandler(svc, logger, auth, "")
}

func authRequest(t *testing.T, h *Handler, req *http.Request, userID string, role model.Role) *http.Request {
	t.Helper()

	token, err := h.authMiddleware.IssueToken(userID, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestSignup_Created(t *testing.T) {
	svc := &stubService{
		user: &model.User{ID: "user-1", Email: "user@example.com", Role: model.RoleCustomer},
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(signupRequest{
		Name:     "User",
		Email:    "user@example.com",
		Password: "pass",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}
}

func TestSignup_EmailTakenConflict(t *testing.T) {
	svc := &stubService{userErr: repository.ErrEmailTaken}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(signupRequest{Name: "User", Email: "user@example.com", Password: "pass"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusConflict)
	}
}

func TestLogin_ReturnsToken(t *testing.T) {
	svc := &stubService{
		user: &model.User{ID: "user-1", Email: "user@example.com", Role: model.RoleCustomer, IsVerified: true},
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(loginRequest{Email: "user@example.com", Password: "pass"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp loginResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("token must not be empty")
	}
	if resp.User.UserID != "user-1" {
		t.Fatalf("user id = %q, want user-1", resp.User.UserID)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &stubService{userErr: service.ErrInvalidCredentials}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(loginRequest{Email: "user@example.com", Password: "wrong"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusUnauthorized)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	body, _ := json.Marshal(loginRequest{Email: "user@example.com"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	svc := &stubService{verifyErr: service.ErrInvalidToken}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify-email?token=bad", nil)
	rec := httptest.NewRecorder()

	h.VerifyEmail(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestPlaceOrder_Created(t *testing.T) {
	svc := &stubService{
		order: &model.Order{
			ID:         "order-1",
			CustomerID: "user-1",
			VendorIDs:  []string{"vendor-a"},
			TotalCents: 2500,
			Status:     model.OrderStatusPending,
		},
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(placeOrderRequest{
		Products: []orderItemRequest{{ProductID: "p1", Quantity: 2}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req = authRequest(t, h, req, "user-1", model.RoleCustomer)

	rec := httptest.NewRecorder()
	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.PlaceOrder))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}

	var resp orderResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalAmount != 25.0 {
		t.Fatalf("totalAmount = %v, want 25.0", resp.TotalAmount)
	}
}

func TestPlaceOrder_EmptyOrderBadRequest(t *testing.T) {
	svc := &stubService{orderErr: service.ErrEmptyOrder}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(placeOrderRequest{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req = authRequest(t, h, req, "user-1", model.RoleCustomer)

	rec := httptest.NewRecorder()
	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.PlaceOrder))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestGetCart_JSONResponse(t *testing.T) {
	svc := &stubService{
		cart: &model.Cart{
			ID:     "cart-1",
			UserID: "user-1",
			Items:  []model.CartItem{{ProductID: "p1", Quantity: 2}},
		},
	}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req = authRequest(t, h, req, "user-1", model.RoleCustomer)

	rec := httptest.NewRecorder()
	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.GetCart))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q, want application/json", ct)
	}

	var resp cartResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Products) != 1 || resp.Products[0].ProductID != "p1" {
		t.Fatalf("unexpected cart products: %+v", resp.Products)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := &stubService{productErr: repository.ErrProductNotFound}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
	rec := httptest.NewRecorder()

	h.GetProduct(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
}

func TestWriteError_UnknownErrorIsMasked(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	rec := httptest.NewRecorder()
	h.writeError(rec, errors.New("pg: connection refused"))

	res := rec.Result()
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusInternalServerError)
	}

	var resp errorResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Server Error" {
		t.Fatalf("message = %q, internal details must not leak", resp.Message)
	}
}

func TestCancelOrder_Conflict(t *testing.T) {
	svc := &stubService{orderErr: service.ErrOrderNotCancellable}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/order-1/cancel", nil)
	req = authRequest(t, h, req, "user-1", model.RoleCustomer)

	rec := httptest.NewRecorder()
	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.CancelOrder))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusConflict)
	}
}

func TestRouter_OrderRoutes(t *testing.T) {
	svc := &stubService{
		order: &model.Order{
			ID:         "order-1",
			CustomerID: "user-1",
			Status:     model.OrderStatusPending,
		},
	}
	h := newTestHandler(t, svc)

	router := h.SetupRouter(chat.NewHub(nil))

	body, _ := json.Marshal(placeOrderRequest{
		Products: []orderItemRequest{{ProductID: "p1", Quantity: 1}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req = authRequest(t, h, req, "user-1", model.RoleCustomer)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusCreated {
		t.Fatalf("POST /api/orders status = %d, want %d", rec.Result().StatusCode, http.StatusCreated)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/orders/order-1/cancel", nil)
	req = authRequest(t, h, req, "user-1", model.RoleCustomer)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("DELETE /api/orders/{id}/cancel status = %d, want %d", rec.Result().StatusCode, http.StatusOK)
	}
}

func TestCentsRounding(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{amount: 10.55, want: 1055},
		{amount: 0.1, want: 10},
		{amount: -10.55, want: -1055},
		{amount: 0, want: 0},
	}

	for _, tt := range tests {
		if got := cents(tt.amount); got != tt.want {
			t.Fatalf("cents(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestVendorSalesReport_MoneyConversion(t *testing.T) {
	svc := &stubService{
		report: &service.SalesReport{
			TotalSales:   10,
			RevenueCents: 14550,
			SalesByMonth: map[string]int64{"Jan": 3, "Jun": 7},
		},
	}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/vendors/sales-report/vendor-a", nil)
	rec := httptest.NewRecorder()

	h.VendorSalesReport(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp salesReportResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalRevenue != 145.5 {
		t.Fatalf("totalRevenue = %v, want 145.5", resp.TotalRevenue)
	}
	if resp.SalesByMonth["Jan"] != 3 {
		t.Fatalf("unexpected salesByMonth: %v", resp.SalesByMonth)
	}
}

func TestUnreadNotificationCount(t *testing.T) {
	svc := &stubService{unreadCount: 5}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/unread", nil)
	req = authRequest(t, h, req, "user-1", model.RoleCustomer)

	rec := httptest.NewRecorder()
	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.UnreadNotificationCount))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp unreadCountResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UnreadCount != 5 {
		t.Fatalf("unreadCount = %d, want 5", resp.UnreadCount)
	}
}
