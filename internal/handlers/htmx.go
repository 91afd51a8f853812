package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	applog "mixup/internal/log"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}

// renderPage writes partial for htmx swaps and full otherwise.
func renderPage(w http.ResponseWriter, r *http.Request, status int, full, partial templ.Component) {
	component := full
	if isHTMX(r) {
		component = partial
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "path", r.URL.Path, "htmx", isHTMX(r), "error", err)
	}
}
