package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"clinic-records/internal/auth"
	"clinic-records/internal/model"
	"clinic-records/pkg/apierror"
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, user model.User) error
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]model.AuthUser, error)
	Count(ctx context.Context) (int, error)
}

// AccountService manages credential records. It never issues tokens.
type AccountService struct {
	users      UserStore
	bcryptCost int
	now        func() time.Time
}

func NewAccountService(users UserStore, bcryptCost int) *AccountService {
	return &AccountService{
		users:      users,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

func (s *AccountService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthUser, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return model.AuthUser{}, apierror.BadRequest("username and password are required", "")
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		return model.AuthUser{}, apierror.BadRequest("invalid role", req.Role)
	}

	if len(req.Password) > auth.MaxPasswordBytes {
		return model.AuthUser{}, apierror.BadRequest("password is too long", fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	slog.Info("user registered", "username", user.Username, "role", user.Role)
	return user.Public(), nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]model.AuthUser, error) {
	return s.users.List(ctx)
}

// DeleteUser removes an account. Tokens already issued for it stop resolving
// on their next use.
func (s *AccountService) DeleteUser(ctx context.Context, username string, actor model.Principal) error {
	if username == actor.Identifier {
		return model.ErrCannotDeleteSelf
	}

	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}

	slog.Info("user deleted", "username", username, "actor", actor.Identifier)
	return nil
}

type seedUser struct {
	username    string
	displayName string
	password    string
	role        model.Role
}

var defaultUsers = []seedUser{
	{username: "admin", displayName: "Administrator", password: "adminpass", role: model.RoleAdmin},
	{username: "clinician", displayName: "Clinician", password: "clinicianpass", role: model.RoleClinician},
}

// SeedDefaults creates the demo admin and clinician accounts when the user
// table is empty. It returns how many accounts were created.
func (s *AccountService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, seed := range defaultUsers {
		_, err := s.Register(ctx, model.RegisterRequest{
			Username:    seed.username,
			DisplayName: seed.displayName,
			Password:    seed.password,
			Role:        string(seed.role),
		})
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", seed.username, err)
		}
	}

	slog.Warn("seeded default users; change their passwords before exposing this service", "count", len(defaultUsers))
	return len(defaultUsers), nil
}
