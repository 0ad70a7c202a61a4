package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"clinic-records/internal/auth"
	"clinic-records/internal/auth/authtest"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthService(t *testing.T, users *authtest.UserStore) (*AuthService, *auth.TokenCodec) {
	t.Helper()

	authn, err := auth.NewAuthenticator(users, bcrypt.MinCost)
	require.NoError(t, err)
	codec, err := auth.NewTokenCodec(testSecret, 30*time.Minute)
	require.NoError(t, err)

	return NewAuthService(authn, codec), codec
}

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	svc, codec := newTestAuthService(t, authtest.SeededUserStore(t))

	t.Run("issues a bearer token carrying the subject", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), "admin", "adminpass")
		require.NoError(t, err)
		require.Equal(t, "bearer", resp.TokenType)
		require.Equal(t, int64(1800), resp.ExpiresIn)

		claims, err := codec.Validate(resp.Token)
		require.NoError(t, err)
		require.Equal(t, "admin", claims.Subject())
		require.Contains(t, claims, "iat")
		require.Contains(t, claims, "exp")
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, wrong := svc.Login(context.Background(), "admin", "wrong")
		_, unknown := svc.Login(context.Background(), "ghost", "adminpass")
		require.ErrorIs(t, wrong, auth.ErrNotAuthenticated)
		require.ErrorIs(t, unknown, auth.ErrNotAuthenticated)
	})
}
