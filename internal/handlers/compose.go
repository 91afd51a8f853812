package handlers

import (
	"net/http"

	applog "mixup/internal/log"
	"mixup/internal/mix"
	"mixup/internal/store"
)

type composeRequest struct {
	Name  string         `json:"name"`
	Style string         `json:"style"`
	Pours []mix.PourSpec `json:"pours"`
}

// ComposeDrink computes a drink from ad-hoc pours without storing it. The
// pours are passed to the composer as given, so an empty or zero-volume
// list is reported as unprocessable rather than invalid.
func ComposeDrink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	var payload composeRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(ctx, "invalid compose payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	recipe, err := recipeFromPayload(payload.Name, payload.Style, payload.Pours)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	reg, err := store.Snapshot(ctx, database)
	if err != nil {
		applog.Error(ctx, "failed to load liquids", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load liquids")
		return
	}

	drink, err := recipe.Build(reg)
	if err != nil {
		applog.Debug(ctx, "compose rejected", "name", recipe.Name, "error", err)
		writeJSONError(w, composeStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, drinkResponse{
		Name:  drink.Name,
		Style: drink.Style.String(),
		Pours: recipe.Pours,
		Stats: projectStats(drink),
	})
}
