package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"mixup/internal/catalog"
	applog "mixup/internal/log"
	"mixup/internal/mix"
	"mixup/internal/store"
	"mixup/models"
)

type drinkRequest struct {
	Name  string         `json:"name"`
	Style string         `json:"style"`
	Notes string         `json:"notes"`
	Pours []mix.PourSpec `json:"pours"`
}

type drinkStats struct {
	StartOunces   float64 `json:"start_ounces"`
	StartABV      float64 `json:"start_abv"`
	StartSugar    float64 `json:"start_sugar"`
	StartAcid     float64 `json:"start_acid"`
	DilutionRatio float64 `json:"dilution_ratio"`
	WaterOunces   float64 `json:"water_ounces"`
	Ounces        float64 `json:"ounces"`
	ABV           float64 `json:"abv"`
	Sugar         float64 `json:"sugar"`
	Acid          float64 `json:"acid"`
}

type drinkResponse struct {
	ID        uint           `json:"id,omitempty"`
	Name      string         `json:"name"`
	Style     string         `json:"style"`
	Notes     string         `json:"notes,omitempty"`
	Pours     []mix.PourSpec `json:"pours"`
	Stats     *drinkStats    `json:"stats,omitempty"`
	Error     string         `json:"error,omitempty"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

// composedDrink pairs a stored drink with the result of composing it.
type composedDrink struct {
	Record models.Drink
	Recipe catalog.Recipe
	Drink  *mix.Drink
	Err    error
}

// DrinkResource handles CRUD interactions for drinks. Every response carries
// the drink's composition computed against the current liquids.
func DrinkResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "drink request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	if _, ok := currentUserID(r); !ok {
		applog.Debug(r.Context(), "drink request without authenticated user")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/drinks")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listDrinks(w, r)
		case http.MethodPost:
			createDrink(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid drink identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	drinkID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		showDrink(w, r, drinkID)
	case http.MethodPut:
		updateDrink(w, r, drinkID)
	case http.MethodDelete:
		deleteDrink(w, r, drinkID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listDrinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	composed, err := composeStoredDrinks(ctx)
	if err != nil {
		applog.Error(ctx, "failed to list drinks", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load drinks")
		return
	}

	responses := make([]drinkResponse, 0, len(composed))
	for _, entry := range composed {
		responses = append(responses, projectComposedDrink(entry))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showDrink(w http.ResponseWriter, r *http.Request, drinkID uint) {
	ctx := r.Context()
	record, ok := loadDrink(w, r, drinkID)
	if !ok {
		return
	}
	reg, err := store.Snapshot(ctx, database)
	if err != nil {
		applog.Error(ctx, "failed to load liquids", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load liquids")
		return
	}
	writeJSON(w, http.StatusOK, projectComposedDrink(composeRecord(*record, reg)))
}

func createDrink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recipe, notes, status, err := decodeDrinkRequest(w, r)
	if err != nil {
		writeJSONError(w, status, err.Error())
		return
	}

	existing, err := store.FindDrink(ctx, database, recipe.Name)
	switch {
	case err == nil:
		applog.Debug(ctx, "drink name already in use", "name", recipe.Name, "id", existing.ID)
		writeJSONError(w, http.StatusConflict, "a drink with that name already exists")
		return
	case !errors.Is(err, store.ErrDrinkNotFound):
		applog.Error(ctx, "failed to check drink name", "error", err, "name", recipe.Name)
		writeJSONError(w, http.StatusInternalServerError, "unable to create drink")
		return
	}

	if status, err := checkComposes(ctx, recipe); err != nil {
		writeJSONError(w, status, err.Error())
		return
	}

	saved, err := store.SaveDrink(ctx, database, recipe, notes)
	if err != nil {
		applog.Error(ctx, "failed to create drink", "error", err, "name", recipe.Name)
		writeJSONError(w, http.StatusInternalServerError, "unable to create drink")
		return
	}

	applog.Debug(ctx, "drink created", "id", saved.ID, "name", saved.Name)
	respondWithStoredDrink(w, r, http.StatusCreated, saved)
}

func updateDrink(w http.ResponseWriter, r *http.Request, drinkID uint) {
	ctx := r.Context()
	record, ok := loadDrink(w, r, drinkID)
	if !ok {
		return
	}

	recipe, notes, status, err := decodeDrinkRequest(w, r)
	if err != nil {
		writeJSONError(w, status, err.Error())
		return
	}

	if recipe.Name != record.Name {
		if _, err := store.FindDrink(ctx, database, recipe.Name); err == nil {
			writeJSONError(w, http.StatusConflict, "a drink with that name already exists")
			return
		} else if !errors.Is(err, store.ErrDrinkNotFound) {
			applog.Error(ctx, "failed to check drink name", "error", err, "name", recipe.Name)
			writeJSONError(w, http.StatusInternalServerError, "unable to update drink")
			return
		}
	}

	if status, err := checkComposes(ctx, recipe); err != nil {
		writeJSONError(w, status, err.Error())
		return
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Drink{}).Where("id = ?", drinkID).Updates(map[string]any{
			"name":  recipe.Name,
			"style": recipe.Style.String(),
			"notes": notes,
		}).Error; err != nil {
			return err
		}
		return store.ReplacePours(tx, drinkID, recipe.Pours)
	})
	if err != nil {
		applog.Error(ctx, "failed to update drink", "error", err, "id", drinkID)
		writeJSONError(w, http.StatusInternalServerError, "unable to update drink")
		return
	}

	updated, err := store.FindDrink(ctx, database, recipe.Name)
	if err != nil {
		applog.Error(ctx, "failed to reload drink after update", "error", err, "id", drinkID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load updated record")
		return
	}
	respondWithStoredDrink(w, r, http.StatusOK, updated)
}

func deleteDrink(w http.ResponseWriter, r *http.Request, drinkID uint) {
	ctx := r.Context()
	record, ok := loadDrink(w, r, drinkID)
	if !ok {
		return
	}

	if err := store.DeleteDrink(ctx, database, drinkID); err != nil {
		applog.Error(ctx, "failed to delete drink", "error", err, "id", drinkID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete drink")
		return
	}

	applog.Debug(ctx, "drink deleted", "id", drinkID, "name", record.Name)
	w.WriteHeader(http.StatusNoContent)
}

// decodeDrinkRequest reads and validates a drink payload, returning the
// status to use when it is rejected.
func decodeDrinkRequest(w http.ResponseWriter, r *http.Request) (catalog.Recipe, string, int, error) {
	var payload drinkRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid drink payload", "error", err)
		return catalog.Recipe{}, "", http.StatusBadRequest, errors.New("invalid request payload")
	}
	recipe, err := recipeFromPayload(payload.Name, payload.Style, payload.Pours)
	if err != nil {
		return catalog.Recipe{}, "", http.StatusBadRequest, err
	}
	if err := mix.ValidatePours(recipe.Pours); err != nil {
		return catalog.Recipe{}, "", http.StatusBadRequest, err
	}
	if recipe.Name == "" {
		return catalog.Recipe{}, "", http.StatusBadRequest, errors.New("name is required")
	}
	return recipe, strings.TrimSpace(payload.Notes), http.StatusOK, nil
}

// recipeFromPayload trims names and parses the style. Pours are not
// validated here; stored drinks are checked by decodeDrinkRequest.
func recipeFromPayload(name, style string, pours []mix.PourSpec) (catalog.Recipe, error) {
	parsed, err := mix.ParseStyle(style)
	if err != nil {
		return catalog.Recipe{}, err
	}
	specs := make([]mix.PourSpec, 0, len(pours))
	for _, p := range pours {
		specs = append(specs, mix.PourSpec{Ingredient: strings.TrimSpace(p.Ingredient), Ounces: p.Ounces})
	}
	return catalog.Recipe{Name: strings.TrimSpace(name), Style: parsed, Pours: specs}, nil
}

// checkComposes builds recipe against the current liquids so that drinks
// which cannot be composed are rejected before they are stored.
func checkComposes(ctx context.Context, recipe catalog.Recipe) (int, error) {
	reg, err := store.Snapshot(ctx, database)
	if err != nil {
		applog.Error(ctx, "failed to load liquids", "error", err)
		return http.StatusInternalServerError, errors.New("unable to load liquids")
	}
	if _, err := recipe.Build(reg); err != nil {
		applog.Debug(ctx, "drink does not compose", "name", recipe.Name, "error", err)
		return composeStatus(err), err
	}
	return http.StatusOK, nil
}

func respondWithStoredDrink(w http.ResponseWriter, r *http.Request, status int, record *models.Drink) {
	ctx := r.Context()
	reg, err := store.Snapshot(ctx, database)
	if err != nil {
		applog.Error(ctx, "failed to load liquids", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load liquids")
		return
	}
	writeJSON(w, status, projectComposedDrink(composeRecord(*record, reg)))
}

func loadDrink(w http.ResponseWriter, r *http.Request, drinkID uint) (*models.Drink, bool) {
	ctx := r.Context()
	var drink models.Drink
	err := database.WithContext(ctx).
		Preload("Pours", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		First(&drink, drinkID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "drink not found", "id", drinkID)
			http.NotFound(w, r)
			return nil, false
		}
		applog.Error(ctx, "failed to load drink", "error", err, "id", drinkID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load drink")
		return nil, false
	}
	return &drink, true
}

// composeStoredDrinks loads every drink and composes them in parallel
// against one snapshot of the liquids.
func composeStoredDrinks(ctx context.Context) ([]composedDrink, error) {
	records, err := store.Drinks(ctx, database)
	if err != nil {
		return nil, err
	}
	reg, err := store.Snapshot(ctx, database)
	if err != nil {
		return nil, err
	}

	composed := make([]composedDrink, len(records))
	recipes := make([]catalog.Recipe, 0, len(records))
	index := make([]int, 0, len(records))
	for i, record := range records {
		composed[i].Record = record
		recipe, err := store.RecipeFromModel(record)
		if err != nil {
			composed[i].Err = err
			continue
		}
		composed[i].Recipe = recipe
		recipes = append(recipes, recipe)
		index = append(index, i)
	}

	for j, outcome := range catalog.Rebuild(ctx, recipes, reg, catalogWorkers) {
		i := index[j]
		if outcome.Err != nil {
			composed[i].Err = outcome.Err
			continue
		}
		drink := outcome.Drink
		composed[i].Drink = &drink
	}
	return composed, nil
}

func composeRecord(record models.Drink, reg mix.Registry) composedDrink {
	entry := composedDrink{Record: record}
	recipe, err := store.RecipeFromModel(record)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Recipe = recipe
	drink, err := recipe.Build(reg)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Drink = &drink
	return entry
}

func projectComposedDrink(entry composedDrink) drinkResponse {
	pours := make([]mix.PourSpec, 0, len(entry.Record.Pours))
	for _, p := range entry.Record.Pours {
		pours = append(pours, mix.PourSpec{Ingredient: p.IngredientName, Ounces: p.Ounces})
	}
	createdAt, updatedAt := entry.Record.CreatedAt, entry.Record.UpdatedAt
	response := drinkResponse{
		ID:        entry.Record.ID,
		Name:      entry.Record.Name,
		Style:     entry.Record.Style,
		Notes:     entry.Record.Notes,
		Pours:     pours,
		CreatedAt: &createdAt,
		UpdatedAt: &updatedAt,
	}
	if entry.Err != nil {
		response.Error = entry.Err.Error()
		return response
	}
	if entry.Drink != nil {
		response.Stats = projectStats(*entry.Drink)
	}
	return response
}

func projectStats(d mix.Drink) *drinkStats {
	return &drinkStats{
		StartOunces:   d.StartOunces,
		StartABV:      d.StartABV,
		StartSugar:    d.StartSugar,
		StartAcid:     d.StartAcid,
		DilutionRatio: d.DilutionRatio,
		WaterOunces:   d.WaterOunces,
		Ounces:        d.Ounces,
		ABV:           d.ABV,
		Sugar:         d.Sugar,
		Acid:          d.Acid,
	}
}
