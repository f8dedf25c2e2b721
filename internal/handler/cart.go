package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type addCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddCartItem добавляет товар в корзину текущего пользователя.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req addCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	cart, err := h.service.AddCartItem(r.Context(), identity.UserID, req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

// GetCart возвращает корзину текущего пользователя.
// Отсутствие корзины отдаётся как пустой список позиций.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

// IncreaseCartItem увеличивает количество позиции на единицу.
func (h *Handler) IncreaseCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.IncreaseCartItem(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

// DecreaseCartItem уменьшает количество позиции на единицу.
func (h *Handler) DecreaseCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.DecreaseCartItem(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// SetCartItemQuantity устанавливает количество позиции.
func (h *Handler) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	cart, err := h.service.SetCartItemQuantity(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "productId"), req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

// RemoveCartItem удаляет позицию из корзины текущего пользователя.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	cart, err := h.service.RemoveCartItem(r.Context(), identity.UserID, chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

// ClearCart удаляет корзину текущего пользователя целиком.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearCart(r.Context(), identity.UserID); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared successfully"})
}
