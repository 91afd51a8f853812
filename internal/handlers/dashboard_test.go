package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mixup/internal/mix"
	"mixup/models"
)

func TestDashboardRendersComposedDrinks(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	withSeededDatabase(t)

	req := authenticateRequest(t, sm, httptest.NewRequest(http.MethodGet, "/app", nil), 1)
	sm.Put(req.Context(), sessionUserNameKey, "House Bartender")
	w := httptest.NewRecorder()
	Dashboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	out := w.Body.String()
	for _, token := range []string{"<!DOCTYPE html>", "House Bartender", "Jack Rose", "Applejack Sidecar", "Orchard Stir", "6.40 oz"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected dashboard to contain %q", token)
		}
	}
}

func TestDashboardPartialShowsDanglingDrink(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	db := withSeededDatabase(t)

	if err := db.Unscoped().Where("name = ?", "Cointreau").Delete(&models.Liquid{}).Error; err != nil {
		t.Fatalf("delete liquid: %v", err)
	}

	req := authenticateRequest(t, sm, httptest.NewRequest(http.MethodGet, "/app", nil), 1)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	Dashboard(w, req)

	out := w.Body.String()
	if strings.Contains(out, "<!DOCTYPE html>") {
		t.Fatal("expected HTMX partial without document shell")
	}
	if !strings.Contains(out, "drink-error") || !strings.Contains(out, "Cointreau") {
		t.Fatalf("expected dangling Cointreau drinks to report an error: %s", out)
	}
}

func TestLoadDashboardWithoutDatabase(t *testing.T) {
	snapshot, err := loadDashboard(t.Context(), "Guest")
	if err != nil {
		t.Fatalf("loadDashboard() error = %v", err)
	}
	if snapshot.UserName != "Guest" || len(snapshot.Drinks) != 0 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
}

func TestDrinkViewFlagsUnknownStyle(t *testing.T) {
	t.Parallel()

	view := drinkView(composedDrink{Record: models.Drink{Name: "Slush", Style: "frozen"}})
	if !view.UnknownStyle {
		t.Fatalf("expected unknown style to be flagged: %+v", view)
	}

	view = drinkView(composedDrink{Record: models.Drink{Name: "Jack Rose", Style: "shaken"}})
	if view.UnknownStyle || view.Style != mix.Shaken {
		t.Fatalf("expected shaken style: %+v", view)
	}
}
