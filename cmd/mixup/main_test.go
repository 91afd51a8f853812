package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"mixup/internal/db/mock"
)

const testBook = `
liquids:
  - {name: Lairds Applejack, abv: 0.50}
  - {name: Simple Syrup, sugar: 0.615}
  - {name: Lemon Juice, sugar: 0.016, acid: 0.06}
drinks:
  - name: Jack Rose
    style: shaken
    pours:
      - {ingredient: Lairds Applejack, ounces: 2}
      - {ingredient: Simple Syrup, ounces: 0.75}
      - {ingredient: Lemon Juice, ounces: 0.75}
  - name: Mystery
    style: stirred
    pours:
      - {ingredient: Unobtainium, ounces: 2}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestComposeSingleDrink(t *testing.T) {
	book := writeFile(t, "bar.yaml", testBook)

	out, err := execute(t, "compose", book, "jack rose")
	if err != nil {
		t.Fatalf("compose error = %v\n%s", err, out)
	}
	for _, token := range []string{"Jack Rose", "shaken", "6.40 oz", "15.6%"} {
		if !strings.Contains(out, token) {
			t.Fatalf("output missing %q:\n%s", token, out)
		}
	}
	if strings.Contains(out, "Mystery") {
		t.Fatalf("expected only the named drink:\n%s", out)
	}
}

func TestComposeReportsFailures(t *testing.T) {
	book := writeFile(t, "bar.yaml", testBook)

	out, err := execute(t, "compose", book)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 drinks failed") {
		t.Fatalf("compose error = %v", err)
	}
	if !strings.Contains(out, "Jack Rose") || !strings.Contains(out, "Unobtainium") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestComposeJSON(t *testing.T) {
	book := writeFile(t, "bar.yaml", testBook)

	out, err := execute(t, "compose", "--json", book, "Jack Rose")
	if err != nil {
		t.Fatalf("compose --json error = %v", err)
	}
	var payload []jsonOutcome
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(payload) != 1 || payload[0].Drink == nil || payload[0].Drink.StartOunces != 3.5 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestComposeMissingDrink(t *testing.T) {
	book := writeFile(t, "bar.yaml", testBook)

	if _, err := execute(t, "compose", book, "Negroni"); err == nil {
		t.Fatal("expected error for a drink not in the book")
	}
}

func TestParseComposesAgainstBook(t *testing.T) {
	book := writeFile(t, "bar.yaml", testBook)
	text := writeFile(t, "jack.txt", "Jack Rose\n- 2 oz Lairds Applejack\n- 3/4 oz Simple Syrup\n- 3/4 oz Lemon Juice\nShaken\n")

	out, err := execute(t, "parse", text, "--book", book)
	if err != nil {
		t.Fatalf("parse error = %v\n%s", err, out)
	}
	for _, token := range []string{"Jack Rose (shaken)", "2.00 oz  Lairds Applejack", "Finished:        6.40 oz", "ABV 15.6%"} {
		if !strings.Contains(out, token) {
			t.Fatalf("output missing %q:\n%s", token, out)
		}
	}
}

func TestParseRejectsTextWithoutPours(t *testing.T) {
	text := writeFile(t, "notes.txt", "Just some tasting notes.\n")

	if _, err := execute(t, "parse", text); err == nil {
		t.Fatal("expected error for text without pours")
	}
}

func TestCatalogUsesDatabase(t *testing.T) {
	original := openDatabase
	t.Cleanup(func() { openDatabase = original })

	var gotMock bool
	var opened *gorm.DB
	openDatabase = func(ctx context.Context, useMock bool) (*gorm.DB, int, error) {
		gotMock = useMock
		database, err := mock.Open(ctx, "cli-catalog-test")
		opened = database
		return database, 2, err
	}

	out, err := execute(t, "catalog", "--mock")
	if err != nil {
		t.Fatalf("catalog error = %v\n%s", err, out)
	}
	if !gotMock {
		t.Fatal("expected --mock to reach the database opener")
	}
	for _, name := range []string{"Applejack Sidecar", "Jack Rose", "Orchard Stir"} {
		if !strings.Contains(out, name) {
			t.Fatalf("output missing %q:\n%s", name, out)
		}
	}

	sqlDB, err := opened.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if err := sqlDB.Ping(); err == nil {
		t.Fatal("expected catalog to close the database")
	}
}
