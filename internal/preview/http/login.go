package http

import (
	"encoding/json"
	"net/http"

	"github.com/previewhq/previewd/internal/preview/service"
	"github.com/previewhq/previewd/pkg/httpx"
	"github.com/previewhq/previewd/pkg/previewsdk"
)

type LoginHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles user authentication.
//
// Failed attempts return 200 with success=false rather than 401; the body
// carries the same message for unknown identifiers and wrong passwords.
//
//	@Summary		Authenticate a user
//	@Description	Verifies credentials by email or user id and issues a session token on success.
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			request	body		previewsdk.LoginRequest	true	"Login credentials"
//	@Success		200		{object}	previewsdk.LoginResponse
//	@Failure		400		{object}	previewsdk.ErrorResponse	"Invalid body"
//	@Failure		429		{object}	previewsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	previewsdk.ErrorResponse
//	@Router			/user/login [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req previewsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UsernameOrEmail == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "username_or_email and password are required")
		return
	}

	result, err := h.AccountService.Login(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, previewsdk.LoginResponse{
		Success: result.Success,
		Message: result.Message,
		Token:   result.Token,
		User:    result.User,
	})
}
