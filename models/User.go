package models

import (
	"strings"

	"gorm.io/gorm"
)

// User represents an account that can sign in and edit the bar.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
}

// NormalizeEmail lower-cases and trims an address before it is stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DisplayName falls back to the local part of the email when no name is set.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	return []any{
		&User{},
		&Liquid{},
		&Drink{},
		&DrinkPour{},
	}
}
