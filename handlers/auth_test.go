package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerise/corporate-site/internal/config"
	"github.com/powerise/corporate-site/internal/identity"
	"github.com/powerise/corporate-site/internal/session"
)

func authTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.CookieName = "auth-token"
	cfg.Session.Secret = "test-secret-32-bytes-xxxxxxxxxxxxxxx"
	cfg.Session.TTL = time.Hour
	return cfg
}

func encodeClaims(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return "hdr." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

// identityStub serves signInWithPassword: a non-empty errCode yields the
// provider's error envelope, otherwise a successful sign-in result.
func identityStub(t *testing.T, idToken, errCode string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if errCode != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{"message": errCode},
			})
			return
		}
		json.NewEncoder(w).Encode(identity.SignInResult{
			IDToken: idToken, LocalID: "uid-1", Email: "admin@powerise.example", DisplayName: "Admin",
		})
	}))
}

func newAuthRouter(cfg *config.Config, srvURL string) (*gin.Engine, *session.Store) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(
		identity.NewClient(config.IdentityConfig{APIKey: "k"}).WithBaseURL(srvURL),
		identity.NewInsecureVerifier(),
	)
	r := gin.New()
	NewAuthHandler(cfg, store).Register(r)
	return r, store
}

func TestLogin_AdminSetsCookie(t *testing.T) {
	tok := encodeClaims(t, map[string]interface{}{"sub": "uid-1", "email": "admin@powerise.example", "admin": true})
	srv := identityStub(t, tok, "")
	defer srv.Close()

	cfg := authTestConfig()
	r, store := newAuthRouter(cfg, srv.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@powerise.example","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "uid-1", user["uid"])

	var found *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cfg.Session.CookieName {
			found = ck
		}
	}
	require.NotNil(t, found, "session cookie should be set")
	assert.NotEmpty(t, found.Value)
	assert.True(t, found.HttpOnly)

	assert.True(t, store.IsAdmin())
}

func TestLogin_NonAdminRejected(t *testing.T) {
	tok := encodeClaims(t, map[string]interface{}{"sub": "uid-2", "email": "user@powerise.example"})
	srv := identityStub(t, tok, "")
	defer srv.Close()

	r, store := newAuthRouter(authTestConfig(), srv.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"user@powerise.example","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	// no cookie on rejection, and the session must end signed out
	assert.Empty(t, w.Result().Cookies())
	assert.False(t, store.IsAdmin())
	assert.Equal(t, session.StateUnauthenticated, store.State())
}

func TestLogin_ProviderErrorVocabulary(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"EMAIL_NOT_FOUND", "No account found for this email address"},
		{"INVALID_PASSWORD", "Incorrect password"},
		{"INVALID_LOGIN_CREDENTIALS", "Incorrect password"},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", "Too many attempts, please try again later"},
		{"SOMETHING_ELSE", "Login failed, please try again"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			srv := identityStub(t, "", tc.code)
			defer srv.Close()

			r, _ := newAuthRouter(authTestConfig(), srv.URL)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
				strings.NewReader(`{"email":"who@powerise.example","password":"secret1"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusUnauthorized, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.want, body["error"])
		})
	}
}

func TestLogin_ValidationFailure(t *testing.T) {
	r, _ := newAuthRouter(authTestConfig(), "http://127.0.0.1:0")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"not-an-email","password":"123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	details := body["details"].([]interface{})
	fields := map[string]bool{}
	for _, d := range details {
		fields[d.(map[string]interface{})["field"].(string)] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
}

func TestLogoutClearsCookieAndSession(t *testing.T) {
	tok := encodeClaims(t, map[string]interface{}{"sub": "uid-1", "admin": true})
	srv := identityStub(t, tok, "")
	defer srv.Close()

	cfg := authTestConfig()
	r, store := newAuthRouter(cfg, srv.URL)

	login := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@powerise.example","password":"secret1"}`))
	login.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), login)
	require.True(t, store.IsAdmin())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.StateUnauthenticated, store.State())

	var cleared *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cfg.Session.CookieName {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
}

func TestSessionEndpoint(t *testing.T) {
	r, store := newAuthRouter(authTestConfig(), "http://127.0.0.1:0")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "uninitialized", body["state"])
	assert.Equal(t, false, body["initialized"])
	assert.Nil(t, body["user"])

	store.OnAuthStateChanged(context.Background(), encodeClaims(t, map[string]interface{}{
		"sub": "uid-1", "email": "admin@powerise.example", "admin": true,
	}))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "authenticated-admin", body["state"])
	assert.Equal(t, true, body["isAdmin"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin@powerise.example", user["email"])
}
