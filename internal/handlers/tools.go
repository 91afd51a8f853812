package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	applog "mixup/internal/log"
	"mixup/internal/recipe"
	"mixup/internal/store"
	"mixup/internal/views/components"
)

const maxRecipeUpload = 10 << 20

var pdfMagic = []byte("%PDF")

// ToolsImportRecipe parses a recipe from pasted text or an uploaded text or
// PDF file, composes it against the current liquids and stores it.
func ToolsImportRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxRecipeUpload)

	text, source, err := readRecipeSubmission(r)
	if err != nil {
		applog.Debug(ctx, "invalid recipe submission", "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	parsed, err := recipe.Parse(text)
	if err != nil {
		applog.Debug(ctx, "recipe parse failed", "source", source, "error", err)
		writeJSONError(w, http.StatusUnprocessableEntity, fmt.Sprintf("could not read a recipe from %s: %v", source, err))
		return
	}
	if name := strings.TrimSpace(r.FormValue("name")); name != "" {
		parsed.Name = name
	}
	if parsed.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "the recipe has no name; provide one with the name field")
		return
	}

	if status, err := checkComposes(ctx, parsed); err != nil {
		writeJSONError(w, status, err.Error())
		return
	}

	saved, err := store.SaveDrink(ctx, database, parsed, "Imported from "+source)
	if err != nil {
		applog.Error(ctx, "failed to store imported recipe", "error", err, "name", parsed.Name)
		writeJSONError(w, http.StatusInternalServerError, "unable to store imported recipe")
		return
	}
	applog.Info(ctx, "recipe imported", "name", saved.Name, "source", source, "pours", len(saved.Pours))

	if isHTMX(r) {
		reg, err := store.Snapshot(ctx, database)
		if err != nil {
			applog.Error(ctx, "failed to load liquids", "error", err)
			http.Error(w, "unable to load liquids", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		if err := components.DrinkCard(drinkView(composeRecord(*saved, reg))).Render(ctx, w); err != nil {
			applog.Error(ctx, "failed to render imported drink", "error", err)
		}
		return
	}
	respondWithStoredDrink(w, r, http.StatusCreated, saved)
}

// readRecipeSubmission returns the recipe text and a label for where it came
// from. An uploaded file takes precedence over the text field.
func readRecipeSubmission(r *http.Request) (string, string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxRecipeUpload); err != nil {
			return "", "", fmt.Errorf("invalid upload: %w", err)
		}
		file, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return "", "", fmt.Errorf("read upload: %w", err)
			}
			text, err := uploadText(header.Filename, data)
			if err != nil {
				return "", "", err
			}
			return text, header.Filename, nil
		case !errors.Is(err, http.ErrMissingFile):
			return "", "", fmt.Errorf("invalid upload: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return "", "", fmt.Errorf("invalid form submission: %w", err)
	}

	text := r.FormValue("recipe")
	if strings.TrimSpace(text) == "" {
		return "", "", errors.New("provide recipe text or upload a file")
	}
	return text, "pasted text", nil
}

func uploadText(filename string, data []byte) (string, error) {
	if bytes.HasPrefix(data, pdfMagic) || strings.EqualFold(filepath.Ext(filename), ".pdf") {
		text, err := recipe.ExtractPDFText(data)
		if err != nil {
			return "", fmt.Errorf("read pdf %s: %w", filename, err)
		}
		return text, nil
	}
	return string(data), nil
}
