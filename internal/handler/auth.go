package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/markethub-system/internal/model"
)

type signupRequest struct {
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Password       string            `json:"password"`
	Role           string            `json:"role"`
	ProfileDetails map[string]string `json:"profileDetails"`
}

// Signup обрабатывает регистрацию нового пользователя.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	_, err := h.service.SignUp(r.Context(), req.Name, req.Email, req.Password, model.Role(req.Role), req.ProfileDetails)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered! Check your email for verification link.",
	})
}

// VerifyEmail подтверждает email по токену из письма и переадресует на фронтенд.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		h.writeError(w, err)
		return
	}

	if h.frontendAddress != "" {
		http.Redirect(w, r, h.frontendAddress+"/email-verified", http.StatusFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Login выполняет аутентификацию пользователя и выпускает bearer-токен.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	token, err := h.authMiddleware.IssueToken(u.ID, u.Role)
	if err != nil {
		h.logger.Error("issue token error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(u)})
}

// GetProfile возвращает профиль текущего пользователя.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	u, err := h.service.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}

type profileUpdateRequest struct {
	Name           string            `json:"name"`
	ProfileDetails map[string]string `json:"profileDetails"`
}

// UpdateProfile обновляет профиль текущего пользователя.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), identity.UserID, req.Name, req.ProfileDetails)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}
