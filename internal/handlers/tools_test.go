package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"mixup/internal/store"
)

const rosyJackText = `Rosy Jack
- 2 oz Lairds Applejack
- 3/4 oz Simple Syrup
- 3/4 oz Lemon Juice
Style: shaken
`

func postRecipeForm(t *testing.T, sm *scs.SessionManager, form url.Values, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/app/tools/import-recipe", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	req = authenticateRequest(t, sm, req, 1)
	w := httptest.NewRecorder()
	ToolsImportRecipe(w, req)
	return w
}

func postRecipeFile(t *testing.T, sm *scs.SessionManager, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/app/tools/import-recipe", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = authenticateRequest(t, sm, req, 1)
	w := httptest.NewRecorder()
	ToolsImportRecipe(w, req)
	return w
}

func TestToolsImportRecipeFromText(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	db := withSeededDatabase(t)

	w := postRecipeForm(t, sm, url.Values{"recipe": {rosyJackText}}, false)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp drinkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "Rosy Jack" || resp.Stats == nil || resp.Stats.StartOunces != 3.5 {
		t.Fatalf("unexpected imported drink: %+v", resp)
	}
	if resp.Notes != "Imported from pasted text" {
		t.Fatalf("unexpected notes %q", resp.Notes)
	}

	stored, err := store.FindDrink(t.Context(), db, "Rosy Jack")
	if err != nil {
		t.Fatalf("expected imported drink to be stored: %v", err)
	}
	if len(stored.Pours) != 3 || stored.Style != "shaken" {
		t.Fatalf("unexpected stored drink: %+v", stored)
	}
}

func TestToolsImportRecipeNameOverrideAndHTMX(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	withSeededDatabase(t)

	w := postRecipeForm(t, sm, url.Values{"recipe": {rosyJackText}, "name": {"House Rose"}}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected HTML for HTMX request, got %q", ct)
	}
	out := w.Body.String()
	if !strings.Contains(out, "House Rose") || !strings.Contains(out, "drink-stats") {
		t.Fatalf("expected rendered drink card: %s", out)
	}
}

func TestToolsImportRecipeFromUpload(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	withSeededDatabase(t)

	w := postRecipeFile(t, sm, "rosy-jack.txt", []byte(rosyJackText))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp drinkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Notes != "Imported from rosy-jack.txt" {
		t.Fatalf("unexpected notes %q", resp.Notes)
	}

	if w := postRecipeFile(t, sm, "menu.pdf", []byte("%PDF-1.4 truncated")); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unreadable PDF, got %d: %s", w.Code, w.Body.String())
	}
}

func TestToolsImportRecipeRejections(t *testing.T) {
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	withSeededDatabase(t)

	tests := []struct {
		name   string
		form   url.Values
		status int
	}{
		{"empty", url.Values{}, http.StatusBadRequest},
		{"no pours", url.Values{"recipe": {"Just a name\nwith prose"}}, http.StatusUnprocessableEntity},
		{"no name", url.Values{"recipe": {"2 oz Lairds Applejack"}}, http.StatusBadRequest},
		{"unknown ingredient", url.Values{"recipe": {"Ghost\n2 oz Ectoplasm"}}, http.StatusUnprocessableEntity},
		{"built", url.Values{"recipe": {"Highball\n2 oz Lairds Applejack\nbuilt"}}, http.StatusNotImplemented},
	}
	for _, tt := range tests {
		if w := postRecipeForm(t, sm, tt.form, false); w.Code != tt.status {
			t.Fatalf("%s: expected %d, got %d: %s", tt.name, tt.status, w.Code, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	ToolsImportRecipe(w, httptest.NewRequest(http.MethodGet, "/app/tools/import-recipe", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
