package components

import (
	"fmt"
	"strings"

	"mixup/internal/mix"
)

// Percent renders a fraction as a percentage with one decimal place.
func Percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// Ounces renders a volume in ounces with two decimal places.
func Ounces(oz float64) string {
	return fmt.Sprintf("%.2f oz", oz)
}

// StyleLabel capitalises a style name for display.
func StyleLabel(style mix.Style) string {
	name := style.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}
