package session

import (
	"context"
	"errors"
	"sync"

	"github.com/powerise/corporate-site/internal/identity"
	"github.com/powerise/corporate-site/pkg/logger"
)

// State is the authentication state of the admin console session.
type State int

const (
	// StateUninitialized means we have not yet heard from the identity
	// provider. Distinguished from StateUnauthenticated so callers don't
	// redirect before the first provider notification arrives.
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAuthenticatedAdmin
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthenticatedAdmin:
		return "authenticated-admin"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "uninitialized"
}

// ErrNotAdmin is returned when a login succeeds at the provider but the
// ID token lacks the admin custom claim. The session is signed out.
var ErrNotAdmin = errors.New("account does not have admin privileges")

// User is the signed-in identity as reported by the provider.
type User struct {
	UID         string
	Email       string
	DisplayName string
}

// Store tracks the signed-in user and admin claim for one session. It
// is an explicit object created by the application shell and passed by
// reference, not a process-wide singleton. Transitions come from
// Login/Logout and from OnAuthStateChanged provider notifications.
type Store struct {
	mu       sync.RWMutex
	state    State
	user     *User
	initDone bool

	client   *identity.Client
	verifier identity.TokenVerifier
}

func NewStore(client *identity.Client, verifier identity.TokenVerifier) *Store {
	return &Store{state: StateUninitialized, client: client, verifier: verifier}
}

// Login exchanges email/password at the provider, verifies the ID
// token, and requires the admin custom claim. A missing claim signs the
// session out and returns ErrNotAdmin; the session must never remain
// authenticated as admin without the claim.
func (s *Store) Login(ctx context.Context, email, password string) (*User, string, error) {
	s.setState(StateLoading, nil)

	res, err := s.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		s.setState(StateUnauthenticated, nil)
		return nil, "", err
	}

	claims, err := s.tokenClaims(ctx, res.IDToken)
	if err != nil {
		s.setState(StateUnauthenticated, nil)
		return nil, "", err
	}

	u := &User{UID: res.LocalID, Email: res.Email, DisplayName: res.DisplayName}
	if !identity.HasAdminClaim(claims) {
		// force sign-out: non-admin accounts cannot hold a console session
		logger.Warnf("login rejected for %s: admin claim absent", res.Email)
		s.setState(StateUnauthenticated, nil)
		return nil, "", ErrNotAdmin
	}

	s.setState(StateAuthenticatedAdmin, u)
	return u, res.IDToken, nil
}

// Logout clears the session.
func (s *Store) Logout(ctx context.Context) {
	s.setState(StateUnauthenticated, nil)
}

// OnAuthStateChanged is the provider state-change subscription: it
// re-derives the admin claim from the current raw ID token (empty token
// means signed out). The first call marks the store initialized.
func (s *Store) OnAuthStateChanged(ctx context.Context, rawToken string) {
	if rawToken == "" {
		s.setState(StateUnauthenticated, nil)
		return
	}
	claims, err := s.tokenClaims(ctx, rawToken)
	if err != nil {
		logger.Warnf("auth state change: token rejected: %v", err)
		s.setState(StateUnauthenticated, nil)
		return
	}
	u := &User{}
	if sub, ok := claims["sub"].(string); ok {
		u.UID = sub
	} else if uid, ok := claims["user_id"].(string); ok {
		u.UID = uid
	}
	if email, ok := claims["email"].(string); ok {
		u.Email = email
	}
	if identity.HasAdminClaim(claims) {
		s.setState(StateAuthenticatedAdmin, u)
	} else {
		s.setState(StateAuthenticated, u)
	}
}

func (s *Store) tokenClaims(ctx context.Context, raw string) (map[string]interface{}, error) {
	tok, err := s.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	var claims map[string]interface{}
	if err := tok.Claims(&claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Store) setState(st State, u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.user = u
	if st != StateLoading {
		s.initDone = true
	}
}

// State returns the current session state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the signed-in user, nil when signed out.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAdmin reports whether the session holds the admin claim.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateAuthenticatedAdmin
}

// Initialized distinguishes "have not yet heard from the identity
// provider" from "confirmed signed out".
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initDone
}
