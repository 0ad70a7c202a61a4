package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clinic-records/internal/auth"
	"clinic-records/internal/model"
)

type credentialVerifier interface {
	Authenticate(ctx context.Context, identifier string, secret string) (model.Principal, error)
}

type tokenIssuer interface {
	IssueDefault(claims map[string]any) (string, error)
	DefaultTTL() time.Duration
}

type AuthService struct {
	verifier credentialVerifier
	tokens   tokenIssuer
	now      func() time.Time
}

func NewAuthService(verifier credentialVerifier, tokens tokenIssuer) *AuthService {
	return &AuthService{
		verifier: verifier,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Login returns auth.ErrNotAuthenticated for every credential mismatch.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.TokenResponse, error) {
	principal, err := s.verifier.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			slog.Warn("login rejected", "username", username)
		}
		return model.TokenResponse{}, err
	}

	token, err := s.tokens.IssueDefault(map[string]any{
		"sub": principal.Identifier,
		"iat": s.now().UTC().Unix(),
	})
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}

	slog.Info("login succeeded", "username", principal.Identifier, "role", principal.Role)
	return model.TokenResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int64(s.tokens.DefaultTTL().Seconds()),
	}, nil
}
