// Package store maps persisted liquids and drinks onto the inputs of the
// drink composer.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"mixup/internal/catalog"
	"mixup/internal/mix"
	"mixup/models"
)

// ErrDrinkNotFound is returned when no stored drink has the requested name.
var ErrDrinkNotFound = errors.New("drink not found")

// LiquidFromModel copies the composition fields of a stored liquid.
func LiquidFromModel(l models.Liquid) mix.Liquid {
	return mix.Liquid{
		Name:  l.Name,
		ABV:   l.ABV,
		Sugar: l.Sugar,
		Acid:  l.Acid,
	}
}

// Snapshot loads every liquid into an immutable in-memory registry.
func Snapshot(ctx context.Context, db *gorm.DB) (mix.Catalog, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var rows []models.Liquid
	if err := db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load liquids: %w", err)
	}
	liquids := make([]mix.Liquid, 0, len(rows))
	for _, row := range rows {
		liquids = append(liquids, LiquidFromModel(row))
	}
	return mix.NewCatalog(liquids...), nil
}

// RecipeFromModel converts a drink with preloaded pours. Pours are ordered
// by their stored position.
func RecipeFromModel(d models.Drink) (catalog.Recipe, error) {
	style, err := mix.ParseStyle(d.Style)
	if err != nil {
		return catalog.Recipe{}, fmt.Errorf("drink %q: %w", d.Name, err)
	}

	pours := append([]models.DrinkPour(nil), d.Pours...)
	sort.SliceStable(pours, func(i, j int) bool {
		return pours[i].Position < pours[j].Position
	})

	specs := make([]mix.PourSpec, 0, len(pours))
	for _, p := range pours {
		specs = append(specs, mix.PourSpec{Ingredient: p.IngredientName, Ounces: p.Ounces})
	}
	return catalog.Recipe{Name: d.Name, Style: style, Pours: specs}, nil
}

// PoursFromSpecs numbers specs in order for storage.
func PoursFromSpecs(specs []mix.PourSpec) []models.DrinkPour {
	pours := make([]models.DrinkPour, 0, len(specs))
	for i, spec := range specs {
		pours = append(pours, models.DrinkPour{
			Position:       i,
			IngredientName: strings.TrimSpace(spec.Ingredient),
			Ounces:         spec.Ounces,
		})
	}
	return pours
}

// Drinks loads every stored drink with its pours, ordered by name.
func Drinks(ctx context.Context, db *gorm.DB) ([]models.Drink, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var drinks []models.Drink
	err := db.WithContext(ctx).
		Preload("Pours", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		Order("name asc").
		Find(&drinks).Error
	if err != nil {
		return nil, fmt.Errorf("load drinks: %w", err)
	}
	return drinks, nil
}

// Recipes converts every stored drink into a recipe.
func Recipes(ctx context.Context, db *gorm.DB) ([]catalog.Recipe, error) {
	drinks, err := Drinks(ctx, db)
	if err != nil {
		return nil, err
	}
	recipes := make([]catalog.Recipe, 0, len(drinks))
	for _, d := range drinks {
		recipe, err := RecipeFromModel(d)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// FindDrink loads one drink by name with its pours.
func FindDrink(ctx context.Context, db *gorm.DB, name string) (*models.Drink, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var drink models.Drink
	err := db.WithContext(ctx).
		Preload("Pours", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		Where("name = ?", strings.TrimSpace(name)).
		First(&drink).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrDrinkNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load drink %q: %w", name, err)
	}
	return &drink, nil
}

// ComposeStored rebuilds a stored drink against the current liquids.
func ComposeStored(ctx context.Context, db *gorm.DB, name string) (mix.Drink, error) {
	drink, err := FindDrink(ctx, db, name)
	if err != nil {
		return mix.Drink{}, err
	}
	recipe, err := RecipeFromModel(*drink)
	if err != nil {
		return mix.Drink{}, err
	}
	reg, err := Snapshot(ctx, db)
	if err != nil {
		return mix.Drink{}, err
	}
	return recipe.Build(reg)
}

// SaveLiquid creates the liquid or updates the one with the same name.
// It reports whether a new row was created.
func SaveLiquid(ctx context.Context, db *gorm.DB, liquid mix.Liquid, notes string) (*models.Liquid, bool, error) {
	if db == nil {
		return nil, false, gorm.ErrInvalidDB
	}
	name := strings.TrimSpace(liquid.Name)

	var row models.Liquid
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", name).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = models.Liquid{Name: name, ABV: liquid.ABV, Sugar: liquid.Sugar, Acid: liquid.Acid, Notes: strings.TrimSpace(notes)}
			created = true
			return tx.Create(&row).Error
		case err != nil:
			return err
		}
		updates := map[string]any{
			"abv":   liquid.ABV,
			"sugar": liquid.Sugar,
			"acid":  liquid.Acid,
		}
		if trimmed := strings.TrimSpace(notes); trimmed != "" {
			updates["notes"] = trimmed
		}
		return tx.Model(&row).Updates(updates).Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("save liquid %q: %w", name, err)
	}
	return &row, created, nil
}

// SaveDrink creates the drink or replaces the style, notes and pours of the
// one with the same name.
func SaveDrink(ctx context.Context, db *gorm.DB, recipe catalog.Recipe, notes string) (*models.Drink, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	name := strings.TrimSpace(recipe.Name)

	var drink models.Drink
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", name).First(&drink).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			drink = models.Drink{Name: name, Style: recipe.Style.String(), Notes: strings.TrimSpace(notes)}
			if err := tx.Omit("Pours").Create(&drink).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&drink).Updates(map[string]any{
				"style": recipe.Style.String(),
				"notes": strings.TrimSpace(notes),
			}).Error; err != nil {
				return err
			}
		}
		return ReplacePours(tx, drink.ID, recipe.Pours)
	})
	if err != nil {
		return nil, fmt.Errorf("save drink %q: %w", name, err)
	}
	return FindDrink(ctx, db, name)
}

// ReplacePours swaps the stored pours of a drink for specs.
func ReplacePours(tx *gorm.DB, drinkID uint, specs []mix.PourSpec) error {
	if err := tx.Unscoped().Where("drink_id = ?", drinkID).Delete(&models.DrinkPour{}).Error; err != nil {
		return err
	}
	pours := PoursFromSpecs(specs)
	if len(pours) == 0 {
		return nil
	}
	for i := range pours {
		pours[i].DrinkID = drinkID
	}
	return tx.Create(&pours).Error
}

// DeleteDrink removes a drink and its pours permanently so the name can be reused.
func DeleteDrink(ctx context.Context, db *gorm.DB, id uint) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("drink_id = ?", id).Delete(&models.DrinkPour{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Drink{}, id).Error
	})
}
