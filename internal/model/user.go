package model

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleClinician Role = "clinician"
	RoleGuest     Role = "guest"
)

var knownRoles = []Role{RoleAdmin, RoleClinician, RoleGuest}

func (r Role) Valid() bool {
	for _, known := range knownRoles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole normalizes user input (registration, seed flags) into a Role.
// Authorization never goes through here; it compares roles exactly.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, raw)
	}
	return role, nil
}

// Principal is the identity attached to a single request.
type Principal struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"display_name,omitempty"`
	Role        Role   `json:"role"`
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) Principal() Principal {
	return Principal{Identifier: u.Username, DisplayName: u.DisplayName, Role: u.Role}
}

func (u User) Public() AuthUser {
	return AuthUser{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName, Role: u.Role}
}

type AuthUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Role        Role   `json:"role"`
}

type AuthUserList struct {
	Users []AuthUser `json:"users"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}
