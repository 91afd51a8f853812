package models

import (
	"gorm.io/gorm"
)

type DrinkPour struct {
	gorm.Model
	DrinkID  uint `gorm:"not null;index" json:"drink_id"`
	Position int  `gorm:"not null" json:"position"`

	// Pours name their liquid rather than holding a foreign key, so deleting
	// a liquid leaves the reference dangling until the drink is rebuilt.
	IngredientName string  `gorm:"not null" json:"ingredient_name"`
	Ounces         float64 `gorm:"not null" json:"ounces"`
}
