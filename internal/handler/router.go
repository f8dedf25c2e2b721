package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/markethub-system/internal/chat"
	custommiddleware "github.com/mmeshcher/markethub-system/internal/middleware"
	"github.com/mmeshcher/markethub-system/internal/model"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса маркетплейса.
func (h *Handler) SetupRouter(hub *chat.Hub) *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)
		r.Get("/auth/verify-email", h.VerifyEmail)

		r.Get("/products/search", h.SearchProducts)
		r.Get("/products/details/{productId}", h.GetProductDetails)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/reviews/{productId}", h.ListReviews)
		r.Get("/faqs", h.ListFAQs)
		r.Get("/vendors/sales-report/{vendorId}", h.VendorSalesReport)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Get("/auth/profile", h.GetProfile)
			r.Put("/auth/profile", h.UpdateProfile)

			r.Post("/products", h.CreateProduct)
			r.Get("/products", h.ListProducts)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)

			r.Post("/cart/add", h.AddCartItem)
			r.Get("/cart", h.GetCart)
			r.Put("/cart/update/{cartId}/{productId}", h.SetCartItemQuantity)
			r.Put("/cart/increase/{cartId}/{productId}", h.IncreaseCartItem)
			r.Put("/cart/decrease/{cartId}/{productId}", h.DecreaseCartItem)
			r.Delete("/cart/remove/{productId}", h.RemoveCartItem)
			r.Delete("/cart/clear", h.ClearCart)

			r.Post("/orders", h.PlaceOrder)
			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{orderId}", h.GetOrder)
			r.Put("/orders/{orderId}/status", h.UpdateOrderStatus)
			r.Delete("/orders/{orderId}/cancel", h.CancelOrder)

			r.Get("/notifications", h.ListNotifications)
			r.Post("/notifications", h.CreateNotification)
			r.Get("/notifications/unread", h.UnreadNotificationCount)
			r.Put("/notifications/{id}/read", h.MarkNotificationRead)

			r.Post("/reviews", h.AddReview)
			r.Delete("/reviews/{reviewId}", h.DeleteReview)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)
			r.Use(custommiddleware.RequireRole(model.RoleAdmin))

			r.Get("/admin/users", h.AdminListUsers)
			r.Post("/admin/users", h.AdminCreateUser)
			r.Get("/admin/users/{id}", h.AdminGetUser)
			r.Put("/admin/users/{id}", h.AdminUpdateUser)
			r.Delete("/admin/users/{id}", h.AdminDeleteUser)
			r.Put("/admin/users/{id}/approve", h.AdminApproveVendor)
			r.Put("/admin/users/{id}/reject", h.AdminRejectVendor)

			r.Get("/admin/products", h.AdminListProducts)
			r.Put("/admin/products/{productId}/approve", h.AdminApproveProduct)
			r.Put("/admin/products/{productId}/reject", h.AdminRejectProduct)

			r.Get("/admin/orders", h.AdminListOrders)
			r.Put("/admin/orders/{orderId}/status", h.AdminUpdateOrderStatus)
			r.Put("/admin/orders/{orderId}/resolve", h.AdminResolveDispute)

			r.Get("/audit-logs", h.AdminListAuditLogs)

			r.Post("/faqs", h.CreateFAQ)
			r.Put("/faqs/{id}", h.UpdateFAQ)
			r.Delete("/faqs/{id}", h.DeleteFAQ)
		})
	})

	r.Get("/ws/chat", hub.HandleWS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
