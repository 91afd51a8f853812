package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	applog "mixup/internal/log"
	"mixup/internal/mix"
)

const maxJSONBody = 1 << 20

// writeJSON encodes before writing the header so an unencodable payload
// becomes a 500 rather than an empty body under the intended status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
		buf.Reset()
		buf.WriteString(`{"error":"unable to encode response"}` + "\n")
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		applog.Debug(context.Background(), "failed to write json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// composeStatus maps composition failures onto HTTP statuses.
func composeStatus(err error) int {
	switch {
	case errors.Is(err, mix.ErrInvalidPour), errors.Is(err, mix.ErrInvalidLiquid):
		return http.StatusBadRequest
	case errors.Is(err, mix.ErrUnknownIngredient), errors.Is(err, mix.ErrZeroVolume), errors.Is(err, mix.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, mix.ErrUnsupportedStyle):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
