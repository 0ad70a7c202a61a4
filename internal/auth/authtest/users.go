package authtest

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"clinic-records/internal/auth"
	"clinic-records/internal/model"
)

// UserStore is an in-memory credential store keyed by exact username.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[string]model.User{}}
}

// SeededUserStore returns a store holding admin/adminpass and
// clinician/clinicianpass, hashed at the minimum bcrypt cost.
func SeededUserStore(tb testing.TB) *UserStore {
	tb.Helper()

	store := NewUserStore()
	store.MustAdd(tb, "admin", "adminpass", model.RoleAdmin)
	store.MustAdd(tb, "clinician", "clinicianpass", model.RoleClinician)
	store.MustAdd(tb, "guest", "guestpass", model.RoleGuest)
	return store
}

func (s *UserStore) MustAdd(tb testing.TB, username string, password string, role model.Role) model.User {
	tb.Helper()

	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password for %s: %v", username, err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Create(context.Background(), user); err != nil {
		tb.Fatalf("add user %s: %v", username, err)
	}
	return user
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (s *UserStore) Create(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return model.ErrUserAlreadyExists
	}
	s.users[user.Username] = user
	return nil
}

func (s *UserStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; !exists {
		return model.ErrUserNotFound
	}
	delete(s.users, username)
	return nil
}

func (s *UserStore) List(_ context.Context) ([]model.AuthUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.AuthUser, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user.Public())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *UserStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
