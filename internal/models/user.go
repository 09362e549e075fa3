package models

import (
	"strings"
	"time"
)

// User represents a registered user
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NormalizeEmail trims and lower-cases an email address so lookups and the
// unique constraint compare the same form
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
