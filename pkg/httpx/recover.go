package httpx

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/previewhq/previewd/pkg/slogx"
)

// RecoverMiddleware is the boundary safety net: any panic escaping a
// handler is logged with its stack and converted into a 500 with the shared
// failure envelope. Expected failures never reach this path.
func RecoverMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// Let the server's own abort signal propagate.
					panic(rec)
				}

				slogx.FromContext(r.Context()).Error("panic recovered",
					"panic", fmt.Sprintf("%v", rec),
					"stack", string(debug.Stack()),
				)
				WriteError(w, http.StatusInternalServerError, fmt.Sprintf("%v", rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
