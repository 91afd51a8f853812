package handlers

import (
	"context"
	"net/http"

	applog "mixup/internal/log"
	"mixup/internal/mix"
	"mixup/internal/views/components"
	"mixup/internal/views/pages"
	"mixup/models"
)

// Dashboard renders the bar book once a user is authenticated.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := loadDashboard(r.Context(), currentUserName(r))
	if err != nil {
		applog.Error(r.Context(), "failed to load dashboard", "error", err)
		http.Error(w, "unable to load drinks", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, http.StatusOK, pages.Dashboard(snapshot), pages.DashboardPartial(snapshot))
}

func loadDashboard(ctx context.Context, userName string) (pages.DashboardSnapshot, error) {
	if database == nil {
		return pages.NewDashboardSnapshot(userName, 0, nil), nil
	}

	var liquids int64
	if err := database.WithContext(ctx).Model(&models.Liquid{}).Count(&liquids).Error; err != nil {
		return pages.DashboardSnapshot{}, err
	}

	composed, err := composeStoredDrinks(ctx)
	if err != nil {
		return pages.DashboardSnapshot{}, err
	}
	views := make([]components.DrinkView, 0, len(composed))
	for _, entry := range composed {
		if entry.Err != nil {
			applog.Debug(ctx, "drink could not be composed", "name", entry.Record.Name, "error", entry.Err)
		}
		views = append(views, drinkView(entry))
	}
	return pages.NewDashboardSnapshot(userName, int(liquids), views), nil
}

func drinkView(entry composedDrink) components.DrinkView {
	view := components.DrinkView{
		ID:    entry.Record.ID,
		Name:  entry.Record.Name,
		Notes: entry.Record.Notes,
		Drink: entry.Drink,
	}
	if style, err := mix.ParseStyle(entry.Record.Style); err == nil {
		view.Style = style
	} else {
		view.UnknownStyle = true
	}
	for _, p := range entry.Record.Pours {
		view.Pours = append(view.Pours, components.PourRow{Ingredient: p.IngredientName, Ounces: p.Ounces})
	}
	if entry.Err != nil {
		view.Error = entry.Err.Error()
	}
	return view
}
