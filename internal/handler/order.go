package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/markethub-system/internal/model"
)

type orderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type placeOrderRequest struct {
	Products        []orderItemRequest    `json:"products"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
}

// PlaceOrder оформляет заказ текущего покупателя.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	items := make([]model.CartItem, 0, len(req.Products))
	for _, it := range req.Products {
		items = append(items, model.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.service.PlaceOrder(r.Context(), identity.UserID, items, req.ShippingAddress)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// ListOrders возвращает заказы текущего пользователя с учётом роли.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListOrders(r.Context(), identity.UserID, identity.Role)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// GetOrder возвращает заказ по идентификатору.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type orderStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

// UpdateOrderStatus устанавливает статус заказа от имени продавца или администратора.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), identity.UserID, identity.Role,
		chi.URLParam(r, "orderId"), model.OrderStatus(req.OrderStatus))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// CancelOrder отменяет заказ текущего покупателя.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	order, err := h.service.CancelOrder(r.Context(), identity.UserID, chi.URLParam(r, "orderId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponse(order))
}
