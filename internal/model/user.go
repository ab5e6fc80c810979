package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxUsernameLen = 50
	maxRoleLen     = 20
)

// User is an account allowed to log in. Users are only created by seeding.
type User struct {
	BaseEntity
	Username     string `json:"username" gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"size:20;not null"`
}

func (User) TableName() string { return "users" }

// NewUser builds a user from an already hashed password.
func NewUser(username, passwordHash, role string) (*User, error) {
	fields := []struct {
		name, value string
		max         int
	}{
		{"username", username, maxUsernameLen},
		{"password hash", passwordHash, 0},
		{"role", role, maxRoleLen},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
		if f.max > 0 && utf8.RuneCountInString(f.value) > f.max {
			return nil, fmt.Errorf("%w: %s must be at most %d characters", ErrValidation, f.name, f.max)
		}
	}

	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}
