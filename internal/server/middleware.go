package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/cors"

	applog "mixup/internal/log"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 128
)

// withRequestID reuses the caller's X-Request-ID or generates one, echoes it
// on the response and attaches it to the request context for logging.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := applog.WithRequestID(r.Context(), id)
		applog.Debug(ctx, "request received", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withCORS allows cross-origin calls from the configured origins. With no
// origins configured the handler is returned unchanged.
func withCORS(origins []string, next http.Handler) http.Handler {
	if len(origins) == 0 {
		return next
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader, "HX-Request", "HX-Target", "HX-Current-URL"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	}).Handler(next)
}
