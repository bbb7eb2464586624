package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminGuard redirects unauthenticated requests away from /admin routes.
//
// KNOWN GAP: this guard only checks that the session cookie is PRESENT.
// It does not verify the cookie's signature, expiry, or the admin claim;
// those checks live in the session layer behind the login flow. Any
// value in the cookie passes the guard. Pending product clarification;
// do not harden it here without updating the session layer contract.
func AdminGuard(cookieName, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// the login page itself must stay reachable
		if c.Request.URL.Path == loginPath || strings.HasPrefix(c.Request.URL.Path, loginPath+"/") {
			c.Next()
			return
		}
		if _, err := c.Cookie(cookieName); err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
