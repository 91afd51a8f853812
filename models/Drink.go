package models

import (
	"gorm.io/gorm"
)

type Drink struct {
	gorm.Model
	Name  string      `gorm:"uniqueIndex;not null" json:"name"`
	Style string      `gorm:"type:varchar(16);not null;default:shaken" json:"style"`
	Notes string      `gorm:"type:text" json:"notes"`
	Pours []DrinkPour `gorm:"foreignKey:DrinkID;constraint:OnDelete:CASCADE" json:"pours"`
}
