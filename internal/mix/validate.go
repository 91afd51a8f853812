package mix

import (
	"fmt"
	"math"
	"strings"
)

// ValidateLiquid reports names that are blank and fractions outside [0, 1].
// Build does not call it; callers that accept user input do.
func ValidateLiquid(l Liquid) error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidLiquid)
	}
	fields := []struct {
		label string
		value float64
	}{
		{"abv", l.ABV},
		{"sugar", l.Sugar},
		{"acid", l.Acid},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || f.value < 0 || f.value > 1 {
			return fmt.Errorf("%w: %s: %s must be between 0 and 1, got %g", ErrInvalidLiquid, l.Name, f.label, f.value)
		}
	}
	if total := l.ABV + l.Sugar + l.Acid; total > 1 {
		return fmt.Errorf("%w: %s: fractions sum to %g", ErrInvalidLiquid, l.Name, total)
	}
	return nil
}

// ValidatePours requires at least one pour, named ingredients and
// positive, finite quantities.
func ValidatePours(specs []PourSpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("%w: at least one pour is required", ErrInvalidPour)
	}
	for i, spec := range specs {
		if strings.TrimSpace(spec.Ingredient) == "" {
			return fmt.Errorf("%w: pour %d: ingredient is required", ErrInvalidPour, i+1)
		}
		if math.IsNaN(spec.Ounces) || math.IsInf(spec.Ounces, 0) || spec.Ounces <= 0 {
			return fmt.Errorf("%w: pour %d (%s): ounces must be greater than zero", ErrInvalidPour, i+1, spec.Ingredient)
		}
	}
	return nil
}
