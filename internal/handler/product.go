package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/markethub-system/internal/model"
)

type productRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

// CreateProduct создаёт товар от имени текущего продавца.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p := &model.Product{
		Name:        req.Name,
		PriceCents:  cents(req.Price),
		Image:       req.Image,
		Description: req.Description,
		Category:    req.Category,
		Stock:       req.Stock,
	}

	created, err := h.service.CreateProduct(r.Context(), identity.UserID, identity.Role, p)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// ListProducts возвращает товары с учётом роли текущего пользователя.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	products, err := h.service.ListProducts(r.Context(), identity.UserID, identity.Role)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponses(products))
}

// SearchProducts ищет товары по подстроке имени или категории.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	products, err := h.service.SearchProducts(r.Context(), query)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponses(products))
}

// GetProduct возвращает товар по идентификатору.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponse(p))
}

type productDetailsResponse struct {
	Product productResponse  `json:"product"`
	Reviews []reviewResponse `json:"reviews"`
}

// GetProductDetails возвращает товар вместе с отзывами о нём.
func (h *Handler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	p, reviews, err := h.service.GetProductDetails(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := productDetailsResponse{
		Product: toProductResponse(p),
		Reviews: make([]reviewResponse, 0, len(reviews)),
	}
	for i := range reviews {
		resp.Reviews = append(resp.Reviews, toReviewResponse(&reviews[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// UpdateProduct обновляет товар текущего продавца.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p := &model.Product{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		PriceCents:  cents(req.Price),
		Image:       req.Image,
		Description: req.Description,
		Category:    req.Category,
		Stock:       req.Stock,
	}

	updated, err := h.service.UpdateProduct(r.Context(), identity.UserID, identity.Role, p)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProduct удаляет товар текущего продавца.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
