// Package catalog recomposes many drinks against one ingredient snapshot.
package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mixup/internal/mix"
)

// DefaultWorkers bounds Rebuild when the caller passes a non-positive limit.
const DefaultWorkers = 4

// Recipe is the stored form of a drink: its name, style and unresolved pours.
type Recipe struct {
	Name  string         `json:"name" yaml:"name"`
	Style mix.Style      `json:"style" yaml:"style"`
	Pours []mix.PourSpec `json:"pours" yaml:"pours"`
}

// Build composes the recipe against reg.
func (r Recipe) Build(reg mix.Registry) (mix.Drink, error) {
	return mix.Build(r.Name, r.Pours, r.Style, reg)
}

// Outcome is the result of composing one recipe. Exactly one of Drink and
// Err is meaningful.
type Outcome struct {
	Name  string
	Drink mix.Drink
	Err   error
}

// Rebuild composes every recipe against reg using at most workers
// goroutines. Outcomes are returned in recipe order; a failing recipe does
// not affect the others. Recipes not yet started when ctx is cancelled
// report the context error. reg must not be mutated while Rebuild runs.
func Rebuild(ctx context.Context, recipes []Recipe, reg mix.Registry, workers int) []Outcome {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	outcomes := make([]Outcome, len(recipes))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, recipe := range recipes {
		outcomes[i].Name = recipe.Name
		if err := ctx.Err(); err != nil {
			outcomes[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			drink, err := recipe.Build(reg)
			outcomes[i].Drink = drink
			outcomes[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// Failed returns the outcomes that carry an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
