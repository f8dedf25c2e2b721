package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// Обработчики этого файла смонтированы за гейтом RequireRole(admin).

// AdminListUsers возвращает всех пользователей без хэшей паролей.
func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// AdminGetUser возвращает пользователя по идентификатору.
func (h *Handler) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}

type adminUserUpdateRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

// AdminUpdateUser обновляет изменяемые поля пользователя.
func (h *Handler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req adminUserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	u, err := h.service.UpdateUser(r.Context(), chi.URLParam(r, "id"), req.Name, req.Email, model.Role(req.Role), req.IsVerified)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}

// AdminDeleteUser удаляет пользователя.
func (h *Handler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

type adminCreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AdminCreateUser создаёт пользователя в обход обычной регистрации.
func (h *Handler) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req adminCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	u, err := h.service.CreateUser(r.Context(), req.Name, req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toUserResponse(u))
}

// AdminApproveVendor одобряет регистрацию продавца.
func (h *Handler) AdminApproveVendor(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.ApproveVendor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}

// AdminRejectVendor отклоняет регистрацию продавца.
func (h *Handler) AdminRejectVendor(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.RejectVendor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}

// AdminListProducts возвращает все товары для экрана модерации.
func (h *Handler) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListAllProducts(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponses(products))
}

// AdminApproveProduct устанавливает флаг одобрения товара.
func (h *Handler) AdminApproveProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ApproveProduct(r.Context(), chi.URLParam(r, "productId")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Product approved successfully"})
}

// AdminRejectProduct снимает флаг одобрения товара.
func (h *Handler) AdminRejectProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RejectProduct(r.Context(), chi.URLParam(r, "productId")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Product rejected successfully"})
}

// AdminListOrders возвращает все заказы.
func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAllOrders(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

type adminOrderStatusRequest struct {
	Status string `json:"status"`
}

// AdminUpdateOrderStatus устанавливает статус заказа без проверки принадлежности.
func (h *Handler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req adminOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	order, err := h.service.ForceOrderStatus(r.Context(), chi.URLParam(r, "orderId"), model.OrderStatus(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type resolveDisputeRequest struct {
	ResolutionStatus string `json:"resolutionStatus"`
}

// AdminResolveDispute назначает заказу терминальный статус разрешения спора.
func (h *Handler) AdminResolveDispute(w http.ResponseWriter, r *http.Request) {
	var req resolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	order, err := h.service.ResolveDispute(r.Context(), chi.URLParam(r, "orderId"), model.OrderStatus(req.ResolutionStatus))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// AdminListAuditLogs возвращает журнал действий, новые записи первыми.
func (h *Handler) AdminListAuditLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.ListAuditLogs(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]auditLogResponse, 0, len(logs))
	for i := range logs {
		resp = append(resp, toAuditLogResponse(&logs[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}
