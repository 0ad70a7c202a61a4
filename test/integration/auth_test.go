//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clinic-records/internal/model"
)

func TestSeededAccountsCanLogIn(t *testing.T) {
	server := newServer(t)

	token := server.login(t, "admin", "adminpass")

	resp, body := server.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var principal model.Principal
	require.NoError(t, json.Unmarshal(body.Data, &principal))
	require.Equal(t, "admin", principal.Identifier)
	require.Equal(t, model.RoleAdmin, principal.Role)

	resp, body = server.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "Admin",
		"password": "adminpass",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "incorrect credentials", body.Error.Message)
}

func TestAdminDeletesPatientButCannotWriteNotes(t *testing.T) {
	server := newServer(t)
	admin := server.login(t, "admin", "adminpass")
	clinician := server.login(t, "clinician", "clinicianpass")

	resp, body := server.request(t, http.MethodPost, "/api/v1/patients", clinician, map[string]any{"name": "John Doe", "age": 52})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var patient model.Patient
	require.NoError(t, json.Unmarshal(body.Data, &patient))

	resp, _ = server.request(t, http.MethodPost, "/api/v1/patients/"+patient.ID+"/notes", clinician, map[string]string{"content": "BP normal."})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = server.request(t, http.MethodPost, "/api/v1/patients/"+patient.ID+"/notes", admin, map[string]string{"content": "x"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "insufficient permissions", body.Error.Message)

	resp, body = server.request(t, http.MethodGet, "/api/v1/patients/"+patient.ID+"/notes", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notes model.NoteList
	require.NoError(t, json.Unmarshal(body.Data, &notes))
	require.Len(t, notes.Notes, 1)
	require.Equal(t, "clinician", notes.Notes[0].Author)

	resp, _ = server.request(t, http.MethodDelete, "/api/v1/patients/"+patient.ID, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = server.request(t, http.MethodGet, "/api/v1/patients/"+patient.ID+"/notes", admin, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExpiredAndOrphanedTokensAreRejected(t *testing.T) {
	server := newServer(t)
	admin := server.login(t, "admin", "adminpass")

	expired, err := server.tokens.Issue(map[string]any{"sub": "admin"}, -time.Second)
	require.NoError(t, err)

	resp, body := server.request(t, http.MethodGet, "/api/v1/patients", expired, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "invalid or expired token", body.Error.Message)

	resp, _ = server.request(t, http.MethodPost, "/api/v1/users", admin, map[string]string{
		"username": "locum",
		"password": "Password123!",
		"role":     "clinician",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	locum := server.login(t, "locum", "Password123!")

	resp, _ = server.request(t, http.MethodDelete, "/api/v1/users/locum", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = server.request(t, http.MethodGet, "/api/v1/patients", locum, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "user not found", body.Error.Message)
}

func TestReadinessReportsDatabase(t *testing.T) {
	server := newServer(t)

	resp, body := server.request(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"database":"ok"}`, string(body.Data))
}
