package http

import (
	"encoding/json"
	"net/http"

	"github.com/previewhq/previewd/internal/preview/service"
	"github.com/previewhq/previewd/pkg/httpx"
	"github.com/previewhq/previewd/pkg/previewsdk"
)

type RetrieveHandler struct {
	PreviewService *service.PreviewService
}

// ServeHTTP handles webpage content retrieval.
//
// Fetch failures come back as 200 with status=failed and a classified
// error message; the endpoint itself only fails on malformed requests.
//
//	@Summary		Retrieve webpage content
//	@Description	Fetches the given URL and returns its body plus the extracted page title.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			request	body		previewsdk.RetrieveContentRequest	true	"URL to fetch"
//	@Success		200		{object}	previewsdk.RetrieveContentResponse
//	@Failure		400		{object}	previewsdk.ErrorResponse	"Invalid body"
//	@Failure		429		{object}	previewsdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/content/retrieve [post]
func (h *RetrieveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req previewsdk.RetrieveContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		httpx.WriteError(w, http.StatusBadRequest, "url is required")
		return
	}

	result := h.PreviewService.FetchContent(r.Context(), req.URL)

	httpx.WriteJSON(w, http.StatusOK, previewsdk.RetrieveContentResponse{
		Status:  result.Status,
		Content: result.Content,
		Title:   result.Title,
		Error:   result.Error,
	})
}
