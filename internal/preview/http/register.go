package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/previewhq/previewd/internal/preview/service"
	"github.com/previewhq/previewd/pkg/httpx"
	"github.com/previewhq/previewd/pkg/previewsdk"
)

type RegisterHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles user registration.
//
//	@Summary		Register a new user
//	@Description	Creates a user account with a hashed password. Email addresses are unique.
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			request	body		previewsdk.RegisterRequest	true	"Registration details"
//	@Success		200		{object}	previewsdk.RegisterResponse
//	@Failure		400		{object}	previewsdk.ErrorResponse	"Email already registered or invalid body"
//	@Failure		429		{object}	previewsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	previewsdk.ErrorResponse
//	@Router			/user/register [post]
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req previewsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.AccountService.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusBadRequest, "Email already registered")
		default:
			httpx.WriteError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, previewsdk.RegisterResponse{
		UserID:  result.UserID,
		Message: result.Message,
	})
}
