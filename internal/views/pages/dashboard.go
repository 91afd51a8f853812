package pages

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/a-h/templ"

	"mixup/internal/views/components"
	"mixup/internal/views/layout"
)

// DashboardSnapshot aggregates what the bar book page shows.
type DashboardSnapshot struct {
	UserName string
	Liquids  int
	Drinks   []components.DrinkView
}

// NewDashboardSnapshot sorts drinks by name for stable rendering.
func NewDashboardSnapshot(userName string, liquids int, drinks []components.DrinkView) DashboardSnapshot {
	sort.SliceStable(drinks, func(i, j int) bool {
		return drinks[i].Name < drinks[j].Name
	})
	return DashboardSnapshot{UserName: userName, Liquids: liquids, Drinks: drinks}
}

// Composed counts the drinks that could be computed.
func (s DashboardSnapshot) Composed() int {
	n := 0
	for _, drink := range s.Drinks {
		if drink.Drink != nil {
			n++
		}
	}
	return n
}

// Dashboard renders the full bar book page.
func Dashboard(snapshot DashboardSnapshot) templ.Component {
	return layout.Layout("Bar book", DashboardPartial(snapshot), true)
}

// DashboardPartial renders only the bar book body for HTMX swaps.
func DashboardPartial(snapshot DashboardSnapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<main id="workspace"><header class="workspace-header"><h1>Bar book</h1><p>Signed in as %s</p></header><section class="workspace-stats">`,
			templ.EscapeString(components.DefaultDash(snapshot.UserName)),
		); err != nil {
			return err
		}
		stats := []templ.Component{
			components.StatCard("Liquids", fmt.Sprint(snapshot.Liquids), "on the back bar"),
			components.StatCard("Drinks", fmt.Sprint(len(snapshot.Drinks)), "in the book"),
			components.StatCard("Composed", fmt.Sprint(snapshot.Composed()), "with a dilution model"),
		}
		for _, stat := range stats {
			if err := stat.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</section><section class="drink-grid">`); err != nil {
			return err
		}
		if len(snapshot.Drinks) == 0 {
			if _, err := io.WriteString(w, `<p class="empty-state">No drinks yet.</p>`); err != nil {
				return err
			}
		}
		for _, drink := range snapshot.Drinks {
			if err := components.DrinkCard(drink).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</section></main>`)
		return err
	})
}
