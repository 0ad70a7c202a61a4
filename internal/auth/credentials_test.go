package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"clinic-records/internal/auth"
	"clinic-records/internal/auth/authtest"
	"clinic-records/internal/model"
)

type failingFinder struct{ err error }

func (f failingFinder) FindByUsername(context.Context, string) (model.User, error) {
	return model.User{}, f.err
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	store := authtest.SeededUserStore(t)
	authn, err := auth.NewAuthenticator(store, bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("matching pairs return the stored role", func(t *testing.T) {
		cases := []struct {
			username string
			password string
			role     model.Role
		}{
			{"admin", "adminpass", model.RoleAdmin},
			{"clinician", "clinicianpass", model.RoleClinician},
			{"guest", "guestpass", model.RoleGuest},
		}

		for _, tc := range cases {
			principal, err := authn.Authenticate(context.Background(), tc.username, tc.password)
			require.NoError(t, err)
			require.Equal(t, tc.username, principal.Identifier)
			require.Equal(t, tc.role, principal.Role)
		}
	})

	t.Run("wrong secret and unknown identifier are indistinguishable", func(t *testing.T) {
		_, wrongSecret := authn.Authenticate(context.Background(), "admin", "nope")
		_, unknownUser := authn.Authenticate(context.Background(), "nobody", "adminpass")

		require.ErrorIs(t, wrongSecret, auth.ErrNotAuthenticated)
		require.ErrorIs(t, unknownUser, auth.ErrNotAuthenticated)
		require.Equal(t, wrongSecret.Error(), unknownUser.Error())
		require.True(t, auth.IsUnauthenticated(wrongSecret))
	})

	t.Run("lookup is case sensitive", func(t *testing.T) {
		_, err := authn.Authenticate(context.Background(), "Admin", "adminpass")
		require.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})

	t.Run("empty secret is rejected", func(t *testing.T) {
		_, err := authn.Authenticate(context.Background(), "admin", "")
		require.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})
}

func TestAuthenticateStoreFailureIsNotBadCredentials(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	authn, err := auth.NewAuthenticator(failingFinder{err: storeErr}, bcrypt.MinCost)
	require.NoError(t, err)

	_, err = authn.Authenticate(context.Background(), "admin", "adminpass")
	require.ErrorIs(t, err, storeErr)
	require.False(t, auth.IsUnauthenticated(err))
}

func TestNewAuthenticatorRequiresStore(t *testing.T) {
	t.Parallel()

	_, err := auth.NewAuthenticator(nil, bcrypt.MinCost)
	require.Error(t, err)
}
