package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"drivebox/internal/auth"
	"drivebox/internal/models"

	"github.com/stretchr/testify/require"
)

func claimsFor(t *testing.T, email string) *auth.AppClaims {
	t.Helper()
	user, err := testServer.store.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user)
	token, err := auth.GenerateJWT(user, testServer.config.JWT.Secret)
	require.NoError(t, err)
	claims, err := auth.VerifyJWT(token, testServer.config.JWT.Secret)
	require.NoError(t, err)
	return claims
}

func TestAPI_ListAndRevokeSessions(t *testing.T) {
	registerAndLogin(t, "sessions_api@test.local")
	claims := claimsFor(t, "sessions_api@test.local")

	req := httptest.NewRequest("GET", "/api/v1/sessions", nil)
	req = req.WithContext(context.WithValue(req.Context(), userContextKey, claims))
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.ListSessionsHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var sessions []models.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sessions))
	require.Len(t, sessions, 1)
	// Login issues a refresh token good for one day.
	require.WithinDuration(t, time.Now().Add(24*time.Hour), sessions[0].ExpiresAt, time.Minute)

	delReq := httptest.NewRequest("DELETE", "/api/v1/sessions/"+sessions[0].ID.String(), nil)
	delReq = delReq.WithContext(context.WithValue(delReq.Context(), userContextKey, claims))
	delReq = withURLParam(delReq, "sessionId", sessions[0].ID.String())
	delRr := httptest.NewRecorder()
	http.HandlerFunc(testServer.DeleteSessionHandler).ServeHTTP(delRr, delReq)
	require.Equal(t, http.StatusNoContent, delRr.Code)

	rr = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/sessions", nil)
	req = req.WithContext(context.WithValue(req.Context(), userContextKey, claims))
	http.HandlerFunc(testServer.ListSessionsHandler).ServeHTTP(rr, req)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sessions))
	require.Empty(t, sessions)
}

func TestAPI_DeleteSession_InvalidID(t *testing.T) {
	req := authedRequest(t, "DELETE", "/api/v1/sessions/not-a-uuid", nil)
	req = withURLParam(req, "sessionId", "not-a-uuid")
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.DeleteSessionHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}
