package identity

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Token is a minimal interface for a verified ID token that can expose
// its claims. Satisfied by *oidc.IDToken and by test fakes.
type Token interface {
	Claims(v interface{}) error
}

// TokenVerifier verifies raw ID tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Verifier wraps the OIDC provider discovery and token verification for
// the identity issuer (e.g. https://securetoken.google.com/<project>).
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewVerifier(ctx context.Context, issuer, audience string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &Verifier{verifier: provider.Verifier(&oidc.Config{ClientID: audience})}, nil
}

func (v *Verifier) Verify(ctx context.Context, raw string) (Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}

// HasAdminClaim reports whether the token claims carry the custom
// admin attribute set by the identity provider.
func HasAdminClaim(claims map[string]interface{}) bool {
	v, ok := claims["admin"].(bool)
	return ok && v
}
