package server

import (
	"net/http"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/service"
)

type registerRequest struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Contacts []string `json:"contacts"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string       `json:"accessToken"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (h *APIHandlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Name:     payload.Name,
		Phone:    payload.Phone,
		Email:    payload.Email,
		Password: payload.Password,
		Contacts: payload.Contacts,
	})
	if err != nil {
		h.respondServiceError(w, err, "failed to register user")
		return
	}

	respondJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (h *APIHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.accounts.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.respondServiceError(w, err, "failed to log in", "email", payload.Email)
		return
	}

	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *APIHandlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.RevokeSession(r.Context(), currentToken(r)); err != nil {
		h.respondServiceError(w, err, "failed to revoke session")
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{Status: "logged out"})
}

func (h *APIHandlers) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

func toSessionResponse(session service.Session) sessionResponse {
	return sessionResponse{
		Token: session.Token,
		User:  toUserResponse(session.User),
	}
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Email:     user.Email,
		CreatedAt: formatTime(user.CreatedAt),
	}
}
