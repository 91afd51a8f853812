package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"mixup/internal/config"
	"mixup/internal/db"
	"mixup/internal/mix"
	"mixup/internal/store"
)

var (
	numberPattern   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

var openDatabase = func() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return db.Configure(cfg.Database)
}

func main() {
	csvPath := "liquids.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(context.Background(), csvPath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath string, out io.Writer) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	records, err := readCSV(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	database, err := openDatabase()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	created, updated := 0, 0
	for idx, record := range records {
		liquid, err := buildLiquid(record)
		if err != nil {
			return fmt.Errorf("record %d (%s): %w", idx+1, record["Name"], err)
		}
		_, isNew, err := store.SaveLiquid(ctx, database, liquid, normalizeText(record["Notes"]))
		if err != nil {
			return fmt.Errorf("record %d (%s): %w", idx+1, liquid.Name, err)
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	fmt.Fprintf(out, "Imported %d liquids (%d new, %d updated) from %s\n", created+updated, created, updated, filepath.Base(csvPath))
	return nil
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.TrimSpace(key)] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildLiquid(row map[string]string) (mix.Liquid, error) {
	liquid := mix.Liquid{Name: normalizeText(row["Name"])}

	var err error
	if liquid.ABV, err = parseFraction(row["ABV"]); err != nil {
		return mix.Liquid{}, fmt.Errorf("abv: %w", err)
	}
	if liquid.Sugar, err = parseFraction(row["Sugar"]); err != nil {
		return mix.Liquid{}, fmt.Errorf("sugar: %w", err)
	}
	if liquid.Acid, err = parseFraction(row["Acid"]); err != nil {
		return mix.Liquid{}, fmt.Errorf("acid: %w", err)
	}

	if err := mix.ValidateLiquid(liquid); err != nil {
		return mix.Liquid{}, err
	}
	return liquid, nil
}

// parseFraction reads "0.4", "40%" or "40" as the fraction 0.4.
func parseFraction(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return 0, nil
	}

	match := numberPattern.FindString(value)
	if match == "" {
		return 0, fmt.Errorf("no number in %q", value)
	}
	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, err
	}
	if strings.HasSuffix(value, "%") || parsed > 1 {
		parsed /= 100
	}
	return parsed, nil
}

func normalizeText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
}
