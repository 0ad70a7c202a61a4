package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"clinic-records/internal/model"
)

const DefaultBcryptCost = 12

// MaxPasswordBytes is bcrypt's input limit, counted in bytes, not runes.
const MaxPasswordBytes = 72

// UserFinder is the read side of the credential store. Implementations must
// return model.ErrUserNotFound when no record matches the username exactly.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

// Authenticator verifies a username/password pair against the credential
// store. It never writes to the store.
type Authenticator struct {
	users     UserFinder
	dummyHash []byte
}

func NewAuthenticator(users UserFinder, cost int) (*Authenticator, error) {
	if users == nil {
		return nil, errors.New("user store is required")
	}

	// Compared against when the username is unknown so both failure paths
	// pay for one bcrypt comparison at the configured cost.
	dummy, err := HashPassword("not-a-real-password", cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &Authenticator{users: users, dummyHash: []byte(dummy)}, nil
}

func (a *Authenticator) Authenticate(ctx context.Context, identifier string, secret string) (model.Principal, error) {
	user, err := a.users.FindByUsername(ctx, identifier)
	if errors.Is(err, model.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(secret))
		return model.Principal{}, ErrNotAuthenticated
	}
	if err != nil {
		return model.Principal{}, fmt.Errorf("lookup credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)); err != nil {
		return model.Principal{}, ErrNotAuthenticated
	}

	return user.Principal(), nil
}

func HashPassword(secret string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
