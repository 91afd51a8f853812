package models

import (
	"gorm.io/gorm"
)

// Liquid is a stored ingredient. Name is the registry key that drink pours
// refer to.
type Liquid struct {
	gorm.Model
	Name  string  `gorm:"uniqueIndex;not null" json:"name"`
	ABV   float64 `gorm:"not null;default:0" json:"abv"`
	Sugar float64 `gorm:"not null;default:0" json:"sugar"`
	Acid  float64 `gorm:"not null;default:0" json:"acid"`
	Notes string  `gorm:"type:text" json:"notes"`
}
