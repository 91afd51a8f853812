package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"mixup/internal/mix"
	"mixup/models"
)

func serveDrinks(t *testing.T, sm *scs.SessionManager, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = authenticateRequest(t, sm, req, 1)
	w := httptest.NewRecorder()
	DrinkResource(w, req)
	return w
}

func decodeDrinks(t *testing.T, w *httptest.ResponseRecorder) map[string]drinkResponse {
	t.Helper()
	var drinks []drinkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &drinks); err != nil {
		t.Fatalf("decode drinks: %v", err)
	}
	byName := make(map[string]drinkResponse, len(drinks))
	for _, d := range drinks {
		byName[d.Name] = d
	}
	return byName
}

func TestDrinkResourceListComposesDrinks(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	withSeededDatabase(t)

	w := serveDrinks(t, sm, http.MethodGet, "/app/api/drinks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	drinks := decodeDrinks(t, w)
	if len(drinks) != 3 {
		t.Fatalf("expected 3 drinks, got %d", len(drinks))
	}

	jackRose := drinks["Jack Rose"]
	if jackRose.Stats == nil {
		t.Fatalf("expected Jack Rose stats, got error %q", jackRose.Error)
	}
	if jackRose.Stats.StartOunces != 3.5 {
		t.Fatalf("start ounces = %g, want 3.5", jackRose.Stats.StartOunces)
	}
	if math.Abs(jackRose.Stats.Ounces-6.400214285714286) > 1e-9 {
		t.Fatalf("ounces = %g", jackRose.Stats.Ounces)
	}
	if len(jackRose.Pours) != 3 || jackRose.Pours[0].Ingredient != "Lairds Applejack" {
		t.Fatalf("unexpected pours: %+v", jackRose.Pours)
	}

	if stir := drinks["Orchard Stir"]; stir.Style != "stirred" || stir.Stats == nil {
		t.Fatalf("unexpected stirred drink: %+v", stir)
	}
}

func TestDrinkResourceListsDanglingDrinkWithError(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	db := withSeededDatabase(t)

	if err := db.Unscoped().Where("name = ?", "Simple Syrup").Delete(&models.Liquid{}).Error; err != nil {
		t.Fatalf("delete liquid: %v", err)
	}

	drinks := decodeDrinks(t, serveDrinks(t, sm, http.MethodGet, "/app/api/drinks", ""))
	jackRose, ok := drinks["Jack Rose"]
	if !ok {
		t.Fatal("expected dangling drink to still be listed")
	}
	if jackRose.Stats != nil || jackRose.Error == "" {
		t.Fatalf("expected error without stats, got %+v", jackRose)
	}
	if drinks["Applejack Sidecar"].Stats == nil {
		t.Fatal("expected other drinks to be unaffected")
	}
}

func TestDrinkResourceCreateMapsErrors(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	withSeededDatabase(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"created", `{"name":"Applejack Sour","style":"shaken","pours":[{"ingredient":"Lairds Applejack","ounces":2},{"ingredient":"Lemon Juice","ounces":1},{"ingredient":"Simple Syrup","ounces":0.75}]}`, http.StatusCreated},
		{"duplicate", `{"name":"Jack Rose","style":"shaken","pours":[{"ingredient":"Lairds Applejack","ounces":2}]}`, http.StatusConflict},
		{"unknown ingredient", `{"name":"Mystery","style":"stirred","pours":[{"ingredient":"Ectoplasm","ounces":2}]}`, http.StatusUnprocessableEntity},
		{"built", `{"name":"Highball","style":"built","pours":[{"ingredient":"Lairds Applejack","ounces":2}]}`, http.StatusNotImplemented},
		{"unknown style", `{"name":"Frozen","style":"blended","pours":[{"ingredient":"Lairds Applejack","ounces":2}]}`, http.StatusBadRequest},
		{"no pours", `{"name":"Empty","style":"shaken","pours":[]}`, http.StatusBadRequest},
		{"zero ounces", `{"name":"Dry","style":"shaken","pours":[{"ingredient":"Lemon Juice","ounces":0}]}`, http.StatusBadRequest},
		{"missing name", `{"style":"shaken","pours":[{"ingredient":"Lemon Juice","ounces":1}]}`, http.StatusBadRequest},
		{"malformed", `{"name":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := serveDrinks(t, sm, http.MethodPost, "/app/api/drinks", tt.body)
		if w.Code != tt.status {
			t.Fatalf("%s: expected %d, got %d: %s", tt.name, tt.status, w.Code, w.Body.String())
		}
	}

	var count int64
	if err := database.Model(&models.Drink{}).Count(&count).Error; err != nil || count != 4 {
		t.Fatalf("expected only the valid drink to be stored, count=%d err=%v", count, err)
	}
}

func TestDrinkResourceUpdateAndDelete(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	db := withSeededDatabase(t)

	var stir models.Drink
	if err := db.Where("name = ?", "Orchard Stir").First(&stir).Error; err != nil {
		t.Fatalf("load drink: %v", err)
	}
	path := fmt.Sprintf("/app/api/drinks/%d", stir.ID)

	w := serveDrinks(t, sm, http.MethodPut, path, `{"name":"Orchard Shake","style":"shaken","notes":"now shaken","pours":[{"ingredient":"Lairds Applejack","ounces":2},{"ingredient":"Lemon Juice","ounces":0.5}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated drinkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.ID != stir.ID || updated.Name != "Orchard Shake" || updated.Style != "shaken" || len(updated.Pours) != 2 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Stats == nil || updated.Stats.StartOunces != 2.5 {
		t.Fatalf("expected recomputed stats, got %+v", updated.Stats)
	}

	if w := serveDrinks(t, sm, http.MethodPut, path, `{"name":"Jack Rose","style":"shaken","pours":[{"ingredient":"Lemon Juice","ounces":1}]}`); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 when renaming onto another drink, got %d", w.Code)
	}

	if w := serveDrinks(t, sm, http.MethodDelete, path, ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := serveDrinks(t, sm, http.MethodGet, path, ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}

	var pours int64
	if err := db.Unscoped().Model(&models.DrinkPour{}).Where("drink_id = ?", stir.ID).Count(&pours).Error; err != nil || pours != 0 {
		t.Fatalf("expected pours to be removed with the drink, count=%d err=%v", pours, err)
	}
}

func TestComposeDrink(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	withSeededDatabase(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"jack rose", `{"name":"Jack Rose","style":"shaken","pours":[{"ingredient":"Lairds Applejack","ounces":2},{"ingredient":"Simple Syrup","ounces":0.75},{"ingredient":"Lemon Juice","ounces":0.75}]}`, http.StatusOK},
		{"unknown ingredient", `{"name":"Ghost","style":"shaken","pours":[{"ingredient":"Ectoplasm","ounces":1}]}`, http.StatusUnprocessableEntity},
		{"zero volume", `{"name":"Nothing","style":"shaken","pours":[]}`, http.StatusUnprocessableEntity},
		{"built", `{"name":"Highball","style":"built","pours":[{"ingredient":"Lairds Applejack","ounces":2}]}`, http.StatusNotImplemented},
		{"bad style", `{"name":"Frozen","style":"blended","pours":[]}`, http.StatusBadRequest},
		{"bad payload", `[]`, http.StatusBadRequest},
		{"overflowing pours", `{"pours":[{"ingredient":"Lairds Applejack","ounces":1e308},{"ingredient":"Lairds Applejack","ounces":1e308}],"style":"shaken"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/app/api/compose", bytes.NewBufferString(tt.body))
		req = authenticateRequest(t, sm, req, 1)
		w := httptest.NewRecorder()
		ComposeDrink(w, req)
		if w.Code != tt.status {
			t.Fatalf("%s: expected %d, got %d: %s", tt.name, tt.status, w.Code, w.Body.String())
		}
		if w.Body.Len() == 0 {
			t.Fatalf("%s: expected a response body", tt.name)
		}
		if tt.status != http.StatusOK {
			continue
		}
		var resp drinkResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Stats == nil || math.Abs(resp.Stats.ABV-0.15624476859033737) > 1e-12 {
			t.Fatalf("unexpected stats: %+v", resp.Stats)
		}
	}

	var count int64
	if err := database.Model(&models.Drink{}).Count(&count).Error; err != nil || count != 3 {
		t.Fatalf("compose must not store drinks, count=%d err=%v", count, err)
	}

	w := httptest.NewRecorder()
	ComposeDrink(w, httptest.NewRequest(http.MethodGet, "/app/api/compose", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestComposeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{&mix.UnknownIngredientError{Name: "Ectoplasm"}, http.StatusUnprocessableEntity},
		{fmt.Errorf("drink: %w", mix.ErrZeroVolume), http.StatusUnprocessableEntity},
		{&mix.UnsupportedStyleError{Style: mix.Built}, http.StatusNotImplemented},
		{fmt.Errorf("%w: pour 1", mix.ErrInvalidPour), http.StatusBadRequest},
		{mix.ErrOutOfRange, http.StatusUnprocessableEntity},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := composeStatus(tt.err); got != tt.want {
			t.Fatalf("composeStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteJSONRejectsNonFinite(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	writeJSON(w, http.StatusOK, map[string]float64{"abv": math.Inf(1)})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp["error"] == "" {
		t.Fatalf("expected json error body, got %q (%v)", w.Body.String(), err)
	}
}
