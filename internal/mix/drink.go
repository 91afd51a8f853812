// Package mix models the composition of a mixed drink: the volume-weighted
// blend of its pours and the dilution added by mixing with ice.
package mix

import (
	"errors"
	"math"
)

// Drink is a fully computed drink. Start* fields describe the blend before
// dilution; the unprefixed fields describe it afterwards.
type Drink struct {
	Name  string `json:"name"`
	Pours []Pour `json:"pours"`
	Style Style  `json:"style"`

	StartOunces float64 `json:"start_ounces"`
	StartABV    float64 `json:"start_abv"`
	StartSugar  float64 `json:"start_sugar"`
	StartAcid   float64 `json:"start_acid"`

	DilutionRatio float64 `json:"dilution_ratio"`
	WaterOunces   float64 `json:"water_ounces"`

	Ounces float64 `json:"ounces"`
	ABV    float64 `json:"abv"`
	Sugar  float64 `json:"sugar"`
	Acid   float64 `json:"acid"`
}

// Build resolves specs against reg in order and computes the drink. The
// first unknown ingredient aborts the build.
func Build(name string, specs []PourSpec, style Style, reg Registry) (Drink, error) {
	pours := make([]Pour, 0, len(specs))
	for i, spec := range specs {
		pour, err := Resolve(reg, spec)
		if err != nil {
			var unknown *UnknownIngredientError
			if errors.As(err, &unknown) {
				unknown.Index = i
			}
			return Drink{}, err
		}
		pours = append(pours, pour)
	}

	var totAlcohol, totSugar, totAcid, startOunces float64
	for _, p := range pours {
		totAlcohol += p.Ounces * p.Liquid.ABV
		totSugar += p.Ounces * p.Liquid.Sugar
		totAcid += p.Ounces * p.Liquid.Acid
		startOunces += p.Ounces
	}
	if startOunces == 0 {
		return Drink{}, ErrZeroVolume
	}

	d := Drink{
		Name:        name,
		Pours:       pours,
		Style:       style,
		StartOunces: startOunces,
		StartABV:    totAlcohol / startOunces,
		StartSugar:  totSugar / startOunces,
		StartAcid:   totAcid / startOunces,
	}

	ratio, err := style.DilutionRatio(d.StartABV)
	if err != nil {
		return Drink{}, err
	}
	d.DilutionRatio = ratio
	d.WaterOunces = startOunces * ratio

	d.Ounces = startOunces + d.WaterOunces
	if d.Ounces == 0 {
		return Drink{}, ErrZeroVolume
	}
	d.ABV = totAlcohol / d.Ounces
	d.Sugar = totSugar / d.Ounces
	d.Acid = totAcid / d.Ounces

	if !d.finite() {
		return Drink{}, ErrOutOfRange
	}
	return d, nil
}

func (d Drink) finite() bool {
	for _, v := range []float64{
		d.StartOunces, d.StartABV, d.StartSugar, d.StartAcid,
		d.DilutionRatio, d.WaterOunces,
		d.Ounces, d.ABV, d.Sugar, d.Acid,
	} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Alcohol returns the ounces of ethanol in the drink. Dilution leaves it
// unchanged.
func (d Drink) Alcohol() float64 {
	return d.ABV * d.Ounces
}
