package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListFAQs возвращает все записи FAQ. Доступно без аутентификации.
func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.service.ListFAQs(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]faqResponse, 0, len(faqs))
	for i := range faqs {
		resp = append(resp, toFAQResponse(&faqs[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// CreateFAQ создаёт запись FAQ.
func (h *Handler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	f, err := h.service.CreateFAQ(r.Context(), req.Question, req.Answer, req.Category)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toFAQResponse(f))
}

// UpdateFAQ обновляет запись FAQ.
func (h *Handler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateFAQ(r.Context(), chi.URLParam(r, "id"), req.Question, req.Answer); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "FAQ updated successfully"})
}

// DeleteFAQ удаляет запись FAQ.
func (h *Handler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFAQ(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "FAQ deleted successfully"})
}
