package handlers

import (
	"net/http"
	"time"

	applog "mixup/internal/log"
	"mixup/models"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database,omitempty"`
	Liquids  int64     `json:"liquids"`
	Drinks   int64     `json:"drinks"`
	Time     time.Time `json:"time"`
}

// Health reports readiness. With a database configured it pings it and
// counts the back bar; a failed ping answers 503.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Time: time.Now().UTC()}
	if database == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx := r.Context()
	sqlDB, err := database.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err == nil {
		err = database.WithContext(ctx).Model(&models.Liquid{}).Count(&resp.Liquids).Error
	}
	if err == nil {
		err = database.WithContext(ctx).Model(&models.Drink{}).Count(&resp.Drinks).Error
	}
	if err != nil {
		applog.Error(ctx, "database health check failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.Database = "ok"
	writeJSON(w, http.StatusOK, resp)
}
