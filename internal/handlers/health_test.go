package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func checkHealth(t *testing.T) (int, healthResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}
	var resp healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Time.IsZero() {
		t.Fatal("expected response time to be populated")
	}
	return w.Code, resp
}

func TestHealthWithoutDatabase(t *testing.T) {
	code, resp := checkHealth(t)
	if code != http.StatusOK || resp.Status != "ok" || resp.Database != "" {
		t.Fatalf("unexpected health %d %+v", code, resp)
	}
}

func TestHealthCountsBackBar(t *testing.T) {
	db := withSeededDatabase(t)

	code, resp := checkHealth(t)
	if code != http.StatusOK || resp.Database != "ok" {
		t.Fatalf("expected healthy database, got %d %+v", code, resp)
	}
	if resp.Liquids != 4 || resp.Drinks != 3 {
		t.Fatalf("expected 4 liquids and 3 drinks, got %+v", resp)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.Close()

	code, resp = checkHealth(t)
	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected 503 degraded after the database is closed, got %d %+v", code, resp)
	}
}
