package mix

import (
	"fmt"
	"strings"
)

// Style is the mixing technique, which selects the dilution model.
type Style int

const (
	Built Style = iota
	Stirred
	Shaken
)

var styleNames = map[Style]string{
	Built:   "built",
	Stirred: "stirred",
	Shaken:  "shaken",
}

// Styles lists every known style in declaration order.
func Styles() []Style {
	return []Style{Built, Stirred, Shaken}
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle accepts the lower-case style name in any letter case.
func ParseStyle(value string) (Style, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for style, name := range styleNames {
		if name == normalized {
			return style, nil
		}
	}
	return 0, fmt.Errorf("unknown style %q", value)
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if _, ok := styleNames[s]; !ok {
		return nil, fmt.Errorf("unknown style %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DilutionRatio returns the volume of melt water added per unit of
// pre-dilution volume for a drink at the given ABV. The curves are
// empirical fits and are not clamped, so extreme inputs can produce a
// negative ratio.
func (s Style) DilutionRatio(abv float64) (float64, error) {
	switch s {
	case Stirred:
		return -1.21*abv*abv + 1.246*abv + 0.145, nil
	case Shaken:
		return 1.567*abv*abv + 1.742*abv + 0.203, nil
	default:
		return 0, &UnsupportedStyleError{Style: s}
	}
}
