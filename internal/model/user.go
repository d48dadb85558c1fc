package model

import "time"

// User represents an account. Every item row is owned by exactly one user,
// and all item access is scoped to the owner.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
