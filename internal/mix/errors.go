package mix

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownIngredient reports a pour whose ingredient is missing from the registry.
	ErrUnknownIngredient = errors.New("unknown ingredient")
	// ErrZeroVolume reports a drink whose total volume is zero before or after dilution.
	ErrZeroVolume = errors.New("drink volume is zero")
	// ErrOutOfRange reports a drink whose figures overflow to infinity or NaN.
	ErrOutOfRange = errors.New("drink composition is out of range")
	// ErrUnsupportedStyle reports a style with no dilution model.
	ErrUnsupportedStyle = errors.New("unsupported style")
	// ErrInvalidLiquid and ErrInvalidPour are returned by the optional validation layer.
	ErrInvalidLiquid = errors.New("invalid liquid")
	ErrInvalidPour   = errors.New("invalid pour")
)

// UnknownIngredientError names the ingredient that failed to resolve and
// its position in the pour list.
type UnknownIngredientError struct {
	Name  string
	Index int
}

func (e *UnknownIngredientError) Error() string {
	return fmt.Sprintf("pour %d: %s: %q", e.Index+1, ErrUnknownIngredient, e.Name)
}

func (e *UnknownIngredientError) Unwrap() error {
	return ErrUnknownIngredient
}

// UnsupportedStyleError carries the style that was requested.
type UnsupportedStyleError struct {
	Style Style
}

func (e *UnsupportedStyleError) Error() string {
	return fmt.Sprintf("%s: %s has no dilution model", ErrUnsupportedStyle, e.Style)
}

func (e *UnsupportedStyleError) Unwrap() error {
	return ErrUnsupportedStyle
}
