//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clinic-records/internal/auth"
	"clinic-records/internal/config"
	"clinic-records/internal/database"
	"clinic-records/internal/handler"
	"clinic-records/internal/middleware"
	"clinic-records/internal/model"
	"clinic-records/internal/repository"
	"clinic-records/internal/router"
	"clinic-records/internal/service"
)

const testSecret = "integration-secret-0123456789abcdef"

type testServer struct {
	*httptest.Server
	db     *database.DB
	tokens *auth.TokenCodec
}

// newServer wires the full application against DATABASE_URL, starting from
// empty tables seeded with the default accounts.
func newServer(t *testing.T) *testServer {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, databaseURL, 4, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))
	_, err = db.Pool.Exec(ctx, `TRUNCATE notes, patients, users`)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db.Pool)
	authenticator, err := auth.NewAuthenticator(userRepo, 4)
	require.NoError(t, err)
	tokens, err := auth.NewTokenCodec(testSecret, 15*time.Minute)
	require.NoError(t, err)

	authService := service.NewAuthService(authenticator, tokens)
	accountService := service.NewAccountService(userRepo, 4)
	_, err = accountService.SeedDefaults(ctx)
	require.NoError(t, err)

	patientService := service.NewPatientService(repository.NewPatientRepository(db.Pool), repository.NewNoteRepository(db.Pool))

	cfg := &config.Config{
		RequestTimeout:   10 * time.Second,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     1000,
		AuthRateLimitRPM: 1000,
	}

	server := httptest.NewServer(router.New(cfg, middleware.NewAuthMiddleware(auth.NewTokenResolver(tokens, userRepo)), router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(accountService),
		Patient: handler.NewPatientHandler(patientService),
		Health:  handler.NewHealthHandler(db),
	}))
	t.Cleanup(server.Close)

	return &testServer{Server: server, db: db, tokens: tokens}
}

func (s *testServer) login(t *testing.T, username string, password string) string {
	t.Helper()

	resp, body := s.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens model.TokenResponse
	require.NoError(t, json.Unmarshal(body.Data, &tokens))
	return tokens.Token
}

type apiBody struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *model.APIError `json:"error"`
}

func (s *testServer) request(t *testing.T, method string, path string, token string, payload any) (*http.Response, apiBody) {
	t.Helper()

	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}

	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var body apiBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}
