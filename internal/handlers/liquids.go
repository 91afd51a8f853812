package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	applog "mixup/internal/log"
	"mixup/internal/mix"
	"mixup/models"
)

type liquidRequest struct {
	Name  string  `json:"name"`
	ABV   float64 `json:"abv"`
	Sugar float64 `json:"sugar"`
	Acid  float64 `json:"acid"`
	Notes string  `json:"notes"`
}

func (p liquidRequest) liquid() mix.Liquid {
	return mix.Liquid{
		Name:  strings.TrimSpace(p.Name),
		ABV:   p.ABV,
		Sugar: p.Sugar,
		Acid:  p.Acid,
	}
}

type liquidResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	ABV       float64   `json:"abv"`
	Sugar     float64   `json:"sugar"`
	Acid      float64   `json:"acid"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LiquidResource handles REST-style interactions for liquid records.
func LiquidResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "liquid request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	if _, ok := currentUserID(r); !ok {
		applog.Debug(r.Context(), "liquid request missing authenticated user")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/liquids")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listLiquids(w, r)
		case http.MethodPost:
			createLiquid(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid liquid identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	liquidID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		showLiquid(w, r, liquidID)
	case http.MethodPut:
		updateLiquid(w, r, liquidID)
	case http.MethodDelete:
		deleteLiquid(w, r, liquidID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listLiquids(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var results []models.Liquid
	if err := database.WithContext(ctx).Order("name asc").Find(&results).Error; err != nil {
		applog.Error(ctx, "failed to list liquids", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load liquids")
		return
	}

	responses := make([]liquidResponse, 0, len(results))
	for _, liquid := range results {
		responses = append(responses, projectLiquid(liquid))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showLiquid(w http.ResponseWriter, r *http.Request, liquidID uint) {
	liquid, ok := loadLiquid(w, r, liquidID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, projectLiquid(*liquid))
}

func createLiquid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload liquidRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(ctx, "invalid liquid payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	liquid := payload.liquid()
	if err := mix.ValidateLiquid(liquid); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if taken, err := liquidNameTaken(r, liquid.Name, 0); err != nil {
		applog.Error(ctx, "failed to check liquid name", "error", err, "name", liquid.Name)
		writeJSONError(w, http.StatusInternalServerError, "unable to create liquid")
		return
	} else if taken {
		writeJSONError(w, http.StatusConflict, "a liquid with that name already exists")
		return
	}

	record := models.Liquid{
		Name:  liquid.Name,
		ABV:   liquid.ABV,
		Sugar: liquid.Sugar,
		Acid:  liquid.Acid,
		Notes: strings.TrimSpace(payload.Notes),
	}
	if err := database.WithContext(ctx).Create(&record).Error; err != nil {
		applog.Error(ctx, "failed to create liquid", "error", err, "name", liquid.Name)
		writeJSONError(w, http.StatusInternalServerError, "unable to create liquid")
		return
	}

	applog.Debug(ctx, "liquid created", "id", record.ID, "name", record.Name)
	writeJSON(w, http.StatusCreated, projectLiquid(record))
}

func updateLiquid(w http.ResponseWriter, r *http.Request, liquidID uint) {
	ctx := r.Context()
	record, ok := loadLiquid(w, r, liquidID)
	if !ok {
		return
	}

	var payload liquidRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(ctx, "invalid liquid update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	liquid := payload.liquid()
	if err := mix.ValidateLiquid(liquid); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if taken, err := liquidNameTaken(r, liquid.Name, liquidID); err != nil {
		applog.Error(ctx, "failed to check liquid name", "error", err, "name", liquid.Name)
		writeJSONError(w, http.StatusInternalServerError, "unable to update liquid")
		return
	} else if taken {
		writeJSONError(w, http.StatusConflict, "a liquid with that name already exists")
		return
	}

	// Renaming a liquid leaves pours that used the old name dangling.
	updates := map[string]any{
		"name":  liquid.Name,
		"abv":   liquid.ABV,
		"sugar": liquid.Sugar,
		"acid":  liquid.Acid,
		"notes": strings.TrimSpace(payload.Notes),
	}
	if err := database.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
		applog.Error(ctx, "failed to update liquid", "error", err, "id", liquidID)
		writeJSONError(w, http.StatusInternalServerError, "unable to update liquid")
		return
	}

	if err := database.WithContext(ctx).First(record, liquidID).Error; err != nil {
		applog.Error(ctx, "failed to reload liquid after update", "error", err, "id", liquidID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load updated record")
		return
	}
	writeJSON(w, http.StatusOK, projectLiquid(*record))
}

func deleteLiquid(w http.ResponseWriter, r *http.Request, liquidID uint) {
	ctx := r.Context()
	record, ok := loadLiquid(w, r, liquidID)
	if !ok {
		return
	}

	// Hard delete so the unique name can be reused.
	if err := database.WithContext(ctx).Unscoped().Delete(record).Error; err != nil {
		applog.Error(ctx, "failed to delete liquid", "error", err, "id", liquidID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete liquid")
		return
	}

	applog.Debug(ctx, "liquid deleted", "id", liquidID, "name", record.Name)
	w.WriteHeader(http.StatusNoContent)
}

func loadLiquid(w http.ResponseWriter, r *http.Request, liquidID uint) (*models.Liquid, bool) {
	ctx := r.Context()
	var liquid models.Liquid
	if err := database.WithContext(ctx).First(&liquid, liquidID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "liquid not found", "id", liquidID)
			http.NotFound(w, r)
			return nil, false
		}
		applog.Error(ctx, "failed to load liquid", "error", err, "id", liquidID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load liquid")
		return nil, false
	}
	return &liquid, true
}

func liquidNameTaken(r *http.Request, name string, exceptID uint) (bool, error) {
	var count int64
	query := database.WithContext(r.Context()).Model(&models.Liquid{}).Where("name = ?", name)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func projectLiquid(liquid models.Liquid) liquidResponse {
	return liquidResponse{
		ID:        liquid.ID,
		Name:      liquid.Name,
		ABV:       liquid.ABV,
		Sugar:     liquid.Sugar,
		Acid:      liquid.Acid,
		Notes:     liquid.Notes,
		CreatedAt: liquid.CreatedAt,
		UpdatedAt: liquid.UpdatedAt,
	}
}
