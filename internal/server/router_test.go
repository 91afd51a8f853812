package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRouterPublicRoutes(t *testing.T) {
	router := newRouter()

	tests := []struct {
		path     string
		code     int
		location string
		content  string
	}{
		{path: "/healthz", code: http.StatusOK, content: "application/json"},
		{path: "/login", code: http.StatusOK, content: "text/html"},
		{path: "/signup", code: http.StatusOK, content: "text/html"},
		{path: "/", code: http.StatusSeeOther, location: "/login"},
		{path: "/menu", code: http.StatusNotFound},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rr.Code != tt.code {
			t.Fatalf("%s: expected %d, got %d", tt.path, tt.code, rr.Code)
		}
		if tt.location != "" && rr.Header().Get("Location") != tt.location {
			t.Fatalf("%s: expected Location %q, got %q", tt.path, tt.location, rr.Header().Get("Location"))
		}
		if tt.content != "" && !strings.HasPrefix(rr.Header().Get("Content-Type"), tt.content) {
			t.Fatalf("%s: expected %s content, got %q", tt.path, tt.content, rr.Header().Get("Content-Type"))
		}
	}
}

func TestNewRouterProtectsAppRoutes(t *testing.T) {
	router := newRouter()

	for _, rt := range routes {
		if !rt.protected {
			continue
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, rt.path, nil))

		switch {
		case strings.HasPrefix(rt.path, "/app/api/"):
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("%s: expected 401 for anonymous api call, got %d", rt.path, rr.Code)
			}
		default:
			if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
				t.Fatalf("%s: expected redirect to /login, got %d %q", rt.path, rr.Code, rr.Header().Get("Location"))
			}
		}
	}
}
