package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"clinic-records/internal/model"
)

// Resolver turns a request's credential material into a Principal. A
// deployment uses exactly one implementation.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (model.Principal, error)
}

type tokenValidator interface {
	Validate(token string) (Claims, error)
}

// TokenResolver authenticates bearer tokens and re-reads the subject from the
// credential store on every request, so a deleted account stops working
// before its token expires.
type TokenResolver struct {
	tokens tokenValidator
	users  UserFinder
}

func NewTokenResolver(tokens tokenValidator, users UserFinder) *TokenResolver {
	return &TokenResolver{tokens: tokens, users: users}
}

func (t *TokenResolver) Resolve(ctx context.Context, r *http.Request) (model.Principal, error) {
	token, ok := BearerToken(r)
	if !ok {
		return model.Principal{}, ErrInvalidToken
	}

	claims, err := t.tokens.Validate(token)
	if err != nil {
		return model.Principal{}, ErrInvalidToken
	}

	subject := claims.Subject()
	if subject == "" {
		return model.Principal{}, errInvalidPayload
	}

	user, err := t.users.FindByUsername(ctx, subject)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Principal{}, ErrUnknownSubject
	}
	if err != nil {
		return model.Principal{}, fmt.Errorf("lookup token subject: %w", err)
	}

	return user.Principal(), nil
}

func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", false
	}

	token := strings.TrimSpace(header[7:])
	return token, token != ""
}
