package main

import (
	"fmt"
	"io"

	"mixup/internal/catalog"
	"mixup/internal/mix"
	"mixup/internal/views/components"
)

func printOutcomes(out io.Writer, outcomes []catalog.Outcome) {
	fmt.Fprintf(out, "%-24s %-8s %10s %8s %8s %8s\n", "Drink", "Style", "Volume", "ABV", "Sugar", "Acid")
	fmt.Fprintf(out, "%-24s %-8s %10s %8s %8s %8s\n",
		"------------------------", "--------", "----------", "--------", "--------", "--------")

	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(out, "%-24s error: %v\n", o.Name, o.Err)
			continue
		}
		d := o.Drink
		fmt.Fprintf(out, "%-24s %-8s %10s %8s %8s %8s\n",
			d.Name, d.Style, components.Ounces(d.Ounces),
			components.Percent(d.ABV), components.Percent(d.Sugar), components.Percent(d.Acid))
	}
}

func printDrink(out io.Writer, d mix.Drink) {
	fmt.Fprintf(out, "%s (%s)\n", d.Name, d.Style)
	for _, p := range d.Pours {
		fmt.Fprintf(out, "  %9s  %s\n", components.Ounces(p.Ounces), p.Liquid.Name)
	}
	fmt.Fprintf(out, "  Before dilution: %s at %s ABV\n", components.Ounces(d.StartOunces), components.Percent(d.StartABV))
	fmt.Fprintf(out, "  Water:           %s (%s)\n", components.Ounces(d.WaterOunces), components.Percent(d.DilutionRatio))
	fmt.Fprintf(out, "  Finished:        %s\n", components.Ounces(d.Ounces))
	fmt.Fprintf(out, "  ABV %s  Sugar %s  Acid %s\n",
		components.Percent(d.ABV), components.Percent(d.Sugar), components.Percent(d.Acid))
}

func printRecipe(out io.Writer, r catalog.Recipe) {
	name := r.Name
	if name == "" {
		name = "Untitled"
	}
	fmt.Fprintf(out, "%s (%s)\n", name, r.Style)
	for _, p := range r.Pours {
		fmt.Fprintf(out, "  %9s  %s\n", components.Ounces(p.Ounces), p.Ingredient)
	}
}
