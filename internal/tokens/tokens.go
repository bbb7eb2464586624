package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/powerise/corporate-site/internal/config"
	"github.com/powerise/corporate-site/internal/session"
)

// GenerateSessionToken creates the signed JWT stored in the admin
// session cookie after a successful admin login.
func GenerateSessionToken(cfg *config.Config, u *session.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.UID,
		"email": u.Email,
		"admin": true,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.Session.Secret))
}
