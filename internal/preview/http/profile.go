package http

import (
	"encoding/json"
	"net/http"

	"github.com/previewhq/previewd/internal/preview/service"
	"github.com/previewhq/previewd/pkg/httpx"
	"github.com/previewhq/previewd/pkg/previewsdk"
)

type ProfileHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles profile updates.
//
// Each provided field is applied independently. The response carries
// success=true only when every attempted field succeeded; failed_updates
// is null when nothing failed.
//
//	@Summary		Update a user profile
//	@Description	Updates any of email, username, bio, and profile picture URL. Omitted fields are untouched.
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			request	body		previewsdk.UpdateProfileRequest	true	"Fields to update"
//	@Success		200		{object}	previewsdk.UpdateProfileResponse
//	@Failure		400		{object}	previewsdk.ErrorResponse	"Invalid body"
//	@Failure		429		{object}	previewsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	previewsdk.ErrorResponse
//	@Router			/user/profile/update [put]
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req previewsdk.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.AccountService.UpdateProfile(r.Context(), service.ProfileUpdate{
		Email:             req.Email,
		Username:          req.Username,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, previewsdk.UpdateProfileResponse{
		Success:       result.Success,
		Message:       result.Message,
		UpdatedFields: result.UpdatedFields,
		FailedUpdates: result.FailedUpdates,
	})
}
