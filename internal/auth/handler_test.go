package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) chi.Router {
	t.Helper()
	service, _ := newAuthService(t)
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), service)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateWireContract(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(t, router, "/authenticate", `{"userId":"analyst","password":"analyst1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var ok map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ok))
	assert.Equal(t, true, ok["isAuthenticated"])
	assert.Equal(t, "Data Analyst", ok["role"])
	assert.NotEmpty(t, ok["token"])

	// Bad credentials and garbage payloads both answer 200 with a null role.
	for _, body := range []string{`{"userId":"analyst","password":"wrong"}`, `{not json`} {
		rec := postJSON(t, router, "/authenticate", body)
		require.Equal(t, http.StatusOK, rec.Code)
		var denied struct {
			IsAuthenticated bool    `json:"isAuthenticated"`
			Role            *string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &denied))
		assert.False(t, denied.IsAuthenticated)
		assert.Nil(t, denied.Role)
	}
}

func TestRegisterWireContract(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(t, router, "/register", `{"userId":"newbie","password":"secret1","role":"Data Analyst"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isRegistered":true}`, rec.Body.String())

	rec = postJSON(t, router, "/register", `{"userId":"analyst","password":"secret1","role":"Data Analyst"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var dup map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dup))
	assert.Equal(t, false, dup["isRegistered"])
	assert.Equal(t, "User ID already taken", dup["message"])
}

func TestRegisterValidation(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(t, router, "/register", `{"userId":"shorty","password":"abc","role":"Data Analyst"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/register", `{"password":"secret1","role":"Data Analyst"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutRequiresBearerToken(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(t, router, "/logout", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
