package domain

import (
	"strings"
	"time"
)

// User is an account that can sign in. Deleting a user deactivates it.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	SoftDelete
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(id, email, passwordHash, fullName string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:           id,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks if the user is valid
func (u *User) Validate() error {
	if err := validateEmail(u.Email); err != nil {
		return err
	}
	if u.FullName == "" {
		return NewValidationError("full_name is required")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password is required")
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
