package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func guardedRouter() *gin.Engine {
	g := gin.New()
	admin := g.Group("/admin", AdminGuard("auth-token", "/admin/login"))
	admin.GET("/login", func(c *gin.Context) { c.String(http.StatusOK, "login") })
	admin.GET("/posts", func(c *gin.Context) { c.String(http.StatusOK, "posts") })
	return g
}

func TestAdminGuard_RedirectsWithoutCookie(t *testing.T) {
	g := guardedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestAdminGuard_LoginPageBypassed(t *testing.T) {
	g := guardedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestAdminGuard_CookiePresencePasses(t *testing.T) {
	g := guardedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	// any value passes: the guard checks presence only (known gap)
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: "not-even-a-jwt"})
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
