// Package recipe reads drink recipes from free text, PDF documents and YAML
// recipe books.
package recipe

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mixup/internal/catalog"
	"mixup/internal/mix"
)

// ErrNoPours is returned when a text contains no measurable ingredient lines.
var ErrNoPours = errors.New("recipe has no pours")

const mlPerOunce = 29.5735

// unitOunces converts one unit of measure to ounces.
var unitOunces = map[string]float64{
	"oz":        1,
	"ounce":     1,
	"ounces":    1,
	"ml":        1 / mlPerOunce,
	"cl":        10 / mlPerOunce,
	"dash":      1.0 / 32,
	"dashes":    1.0 / 32,
	"tsp":       1.0 / 6,
	"barspoon":  1.0 / 6,
	"barspoons": 1.0 / 6,
}

var (
	bulletPattern   = regexp.MustCompile(`^\s*(?:[-*•]+|\d+[.)])\s+`)
	quantityPattern = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+/\d+|\d*\.?\d+)\s*([a-zA-Z]+)\.?\s+(.+)$`)
	stylePattern    = regexp.MustCompile(`(?i)^\s*(?:style|method)\s*:\s*(\w+)\s*$`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

// Parse reads a recipe from text. The first non-blank line that is not an
// ingredient or style line names the drink. Lines such as "2 oz Lairds
// Applejack" or "3/4 oz Lemon Juice" become pours in order. A "style:"
// line, or a line holding only a style name, selects the style; the default
// is shaken. Anything else is ignored.
func Parse(text string) (catalog.Recipe, error) {
	recipe := catalog.Recipe{Style: mix.Shaken}

	scanner := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(cleanWhitespace.ReplaceAllString(scanner.Text(), " "))
		if raw == "" {
			continue
		}

		if style, ok := parseStyleLine(raw); ok {
			recipe.Style = style
			continue
		}

		pour, ok, err := parsePourLine(raw)
		if err != nil {
			return catalog.Recipe{}, fmt.Errorf("line %d: %w", line, err)
		}
		if ok {
			recipe.Pours = append(recipe.Pours, pour)
			continue
		}

		if recipe.Name == "" && len(recipe.Pours) == 0 {
			recipe.Name = strings.TrimSpace(bulletPattern.ReplaceAllString(raw, ""))
		}
	}
	if err := scanner.Err(); err != nil {
		return catalog.Recipe{}, err
	}

	if len(recipe.Pours) == 0 {
		return catalog.Recipe{}, ErrNoPours
	}
	return recipe, nil
}

func parseStyleLine(raw string) (mix.Style, bool) {
	if m := stylePattern.FindStringSubmatch(raw); m != nil {
		style, err := mix.ParseStyle(m[1])
		return style, err == nil
	}
	style, err := mix.ParseStyle(strings.TrimSuffix(raw, "."))
	return style, err == nil
}

func parsePourLine(raw string) (mix.PourSpec, bool, error) {
	body := bulletPattern.ReplaceAllString(raw, "")
	m := quantityPattern.FindStringSubmatch(body)
	if m == nil {
		return mix.PourSpec{}, false, nil
	}
	factor, ok := unitOunces[strings.ToLower(m[2])]
	if !ok {
		return mix.PourSpec{}, false, nil
	}
	qty, err := parseQuantity(m[1])
	if err != nil {
		return mix.PourSpec{}, false, err
	}
	return mix.PourSpec{
		Ingredient: strings.TrimSpace(m[3]),
		Ounces:     qty * factor,
	}, true, nil
}

// parseQuantity accepts decimals, simple fractions and mixed numbers.
func parseQuantity(value string) (float64, error) {
	fields := strings.Fields(value)
	total := 0.0
	for _, field := range fields {
		if num, den, ok := strings.Cut(field, "/"); ok {
			n, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("parse quantity %q: %w", value, err)
			}
			d, err := strconv.ParseFloat(den, 64)
			if err != nil {
				return 0, fmt.Errorf("parse quantity %q: %w", value, err)
			}
			if d == 0 {
				return 0, fmt.Errorf("parse quantity %q: zero denominator", value)
			}
			total += n / d
			continue
		}
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, fmt.Errorf("parse quantity %q: %w", value, err)
		}
		total += f
	}
	return total, nil
}
