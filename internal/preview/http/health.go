package http

import (
	"net/http"
	"time"

	"github.com/previewhq/previewd/internal/preview/store"
	"github.com/previewhq/previewd/pkg/httpx"
	"github.com/previewhq/previewd/pkg/previewsdk"
)

// LivezHandler reports process liveness.
//
//	@Summary		Liveness probe
//	@Description	Returns ok while the process is running.
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	previewsdk.HealthResponse
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, previewsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		})
	})
}

// ReadyzHandler reports readiness, including database connectivity.
//
//	@Summary		Readiness probe
//	@Description	Returns ok when the database connection is alive.
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	previewsdk.HealthResponse
//	@Failure		503	{object}	previewsdk.HealthResponse
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.NoCache(w)

		resp := previewsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  &previewsdk.HealthChecks{Database: "ok"},
		}

		code := http.StatusOK
		if err := st.Ping(r.Context()); err != nil {
			resp.Status = "unavailable"
			resp.Checks.Database = err.Error()
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, resp)
	})
}
