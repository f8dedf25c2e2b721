package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type addReviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// AddReview создаёт отзыв текущего покупателя о товаре.
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	rv, err := h.service.AddReview(r.Context(), identity.UserID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toReviewResponse(rv))
}

// ListReviews возвращает отзывы о товаре.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListReviews(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, toReviewResponse(&reviews[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// DeleteReview удаляет отзыв. Доступно только его автору.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteReview(r.Context(), identity.UserID, chi.URLParam(r, "reviewId")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
