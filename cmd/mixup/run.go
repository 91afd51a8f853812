package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"mixup/internal/catalog"
	"mixup/internal/config"
	"mixup/internal/db"
	"mixup/internal/db/mock"
	"mixup/internal/mix"
	"mixup/internal/recipe"
	"mixup/internal/store"
)

var openDatabase = func(ctx context.Context, useMock bool) (*gorm.DB, int, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, 0, fmt.Errorf("load config: %w", err)
	}
	if useMock || cfg.Database.UseMock {
		database, err := mock.New(ctx)
		return database, cfg.Catalog.Workers, err
	}
	database, err := db.Configure(cfg.Database)
	return database, cfg.Catalog.Workers, err
}

func runCompose(ctx context.Context, out io.Writer, bookPath, name string, asJSON bool) error {
	book, err := recipe.LoadBook(bookPath)
	if err != nil {
		return err
	}

	recipes := book.Recipes()
	if name != "" {
		r, ok := book.Drink(name)
		if !ok {
			return fmt.Errorf("drink %q not found in %s", name, filepath.Base(bookPath))
		}
		recipes = []catalog.Recipe{r}
	}

	outcomes := catalog.Rebuild(ctx, recipes, book.Catalog(), 0)
	if asJSON {
		return printJSON(out, outcomes)
	}
	printOutcomes(out, outcomes)
	return failureError(outcomes)
}

func runParse(out io.Writer, path, bookPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read recipe: %w", err)
	}

	text := string(data)
	if bytes.HasPrefix(data, []byte("%PDF")) || strings.EqualFold(filepath.Ext(path), ".pdf") {
		if text, err = recipe.ExtractPDFText(data); err != nil {
			return err
		}
	}

	parsed, err := recipe.Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	printRecipe(out, parsed)

	if bookPath == "" {
		return nil
	}
	book, err := recipe.LoadBook(bookPath)
	if err != nil {
		return err
	}
	drink, err := parsed.Build(book.Catalog())
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	printDrink(out, drink)
	return nil
}

func runCatalog(ctx context.Context, out io.Writer, useMock bool, workers int) error {
	database, configured, err := openDatabase(ctx, useMock)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close(database)
	if workers <= 0 {
		workers = configured
	}

	recipes, err := store.Recipes(ctx, database)
	if err != nil {
		return err
	}
	reg, err := store.Snapshot(ctx, database)
	if err != nil {
		return err
	}

	outcomes := catalog.Rebuild(ctx, recipes, reg, workers)
	printOutcomes(out, outcomes)
	return failureError(outcomes)
}

func failureError(outcomes []catalog.Outcome) error {
	failed := catalog.Failed(outcomes)
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d drinks failed to compose", len(failed), len(outcomes))
}

type jsonOutcome struct {
	Name  string     `json:"name"`
	Drink *mix.Drink `json:"drink,omitempty"`
	Error string     `json:"error,omitempty"`
}

func printJSON(out io.Writer, outcomes []catalog.Outcome) error {
	payload := make([]jsonOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		entry := jsonOutcome{Name: o.Name}
		if o.Err != nil {
			entry.Error = o.Err.Error()
		} else {
			drink := o.Drink
			entry.Drink = &drink
		}
		payload = append(payload, entry)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return err
	}
	return failureError(outcomes)
}
