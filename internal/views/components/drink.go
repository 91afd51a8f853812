package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"mixup/internal/mix"
)

// PourRow is one line of a drink's ingredient list.
type PourRow struct {
	Ingredient string
	Ounces     float64
}

// DrinkView is the display form of a stored drink. Drink is nil when the
// drink could not be composed, in which case Error explains why.
// UnknownStyle hides Style when the stored style could not be read.
type DrinkView struct {
	ID           uint
	Name         string
	Style        mix.Style
	UnknownStyle bool
	Notes        string
	Pours        []PourRow
	Drink        *mix.Drink
	Error        string
}

// StatCard renders a single labelled figure.
func StatCard(label, value, detail string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="stat-card"><dt>%s</dt><dd>%s</dd><p class="stat-detail">%s</p></div>`,
			templ.EscapeString(label),
			templ.EscapeString(value),
			templ.EscapeString(detail),
		)
		return err
	})
}

// DrinkCard renders a drink with its pours and, when available, its
// composition before and after dilution.
func DrinkCard(card DrinkView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if card.UnknownStyle {
			if _, err := fmt.Fprintf(w,
				`<article class="drink-card" id="drink-%d"><header><h2>%s</h2></header>`,
				card.ID,
				templ.EscapeString(card.Name),
			); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w,
			`<article class="drink-card" id="drink-%d" data-style="%s"><header><h2>%s</h2><span class="drink-style">%s</span></header>`,
			card.ID,
			templ.EscapeString(card.Style.String()),
			templ.EscapeString(card.Name),
			templ.EscapeString(StyleLabel(card.Style)),
		); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<ul class="drink-pours">`); err != nil {
			return err
		}
		for _, pour := range card.Pours {
			if _, err := fmt.Fprintf(w, `<li><span class="pour-ounces">%s</span> %s</li>`,
				templ.EscapeString(Ounces(pour.Ounces)),
				templ.EscapeString(pour.Ingredient),
			); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</ul>`); err != nil {
			return err
		}

		if card.Drink == nil {
			if _, err := fmt.Fprintf(w, `<p class="drink-error" role="alert">%s</p>`, templ.EscapeString(DefaultDash(card.Error))); err != nil {
				return err
			}
		} else {
			if err := statsTable(*card.Drink).Render(ctx, w); err != nil {
				return err
			}
		}

		if card.Notes != "" {
			if _, err := fmt.Fprintf(w, `<p class="drink-notes">%s</p>`, templ.EscapeString(card.Notes)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</article>`)
		return err
	})
}

func statsTable(d mix.Drink) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rows := []struct {
			label         string
			before, after string
		}{
			{"Volume", Ounces(d.StartOunces), Ounces(d.Ounces)},
			{"ABV", Percent(d.StartABV), Percent(d.ABV)},
			{"Sugar", Percent(d.StartSugar), Percent(d.Sugar)},
			{"Acid", Percent(d.StartAcid), Percent(d.Acid)},
		}
		if _, err := io.WriteString(w, `<table class="drink-stats"><thead><tr><th></th><th>Before ice</th><th>After ice</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, `<tr><th scope="row">%s</th><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(row.label),
				templ.EscapeString(row.before),
				templ.EscapeString(row.after),
			); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `</tbody></table><p class="drink-dilution">Melt water %s (%s of the build)</p>`,
			templ.EscapeString(Ounces(d.WaterOunces)),
			templ.EscapeString(Percent(d.DilutionRatio)),
		)
		return err
	})
}
