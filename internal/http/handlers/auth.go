package handlers

import (
	"errors"
	"net/http"

	"github.com/pribylovaa/menu-service/internal/auth"
	"github.com/pribylovaa/menu-service/internal/http/response"
	"github.com/pribylovaa/menu-service/internal/models"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.Auth.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.observeLogin(false)
		}
		response.WriteError(w, r, err)
		return
	}

	h.observeLogin(true)
	response.WriteSuccess(w, http.StatusOK, msgLoginSucceeded, models.LoginResponse{
		Token:     res.Token,
		Username:  res.Username,
		ExpiresIn: res.ExpiresIn,
	})
}

// ValidateToken всегда отвечает 200 на корректное тело; data — признак валидности.
func (h *Handlers) ValidateToken(w http.ResponseWriter, r *http.Request) {
	var in models.ValidateTokenRequest
	if err := decodeStrict(r, &in); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if h.Auth.ValidateToken(r.Context(), in.Token) {
		response.WriteSuccess(w, http.StatusOK, msgTokenValid, true)
		return
	}

	response.WriteSuccess(w, http.StatusOK, msgTokenInvalid, false)
}
