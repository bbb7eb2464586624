package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/powerise/corporate-site/internal/config"
)

// Client talks to the hosted identity provider's REST surface. Auth is
// fully delegated: this service never stores passwords, it only
// exchanges email/password for an ID token carrying custom claims.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

func NewClient(cfg config.IdentityConfig) *Client {
	base := defaultBaseURL
	if cfg.Issuer != "" {
		// self-hosted emulator or staging endpoint
		if u := strings.TrimSpace(cfg.Issuer); strings.HasPrefix(u, "http") {
			base = strings.TrimRight(u, "/")
		}
	}
	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SignInResult is the provider response for a password sign-in.
type SignInResult struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
}

type providerErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ProviderError wraps a provider error code and exposes the fixed
// human-readable message for that code.
type ProviderError struct {
	Code string
}

func (e *ProviderError) Error() string { return "identity provider: " + e.Code }

// Message maps provider error codes to the fixed vocabulary shown to
// the operator; unknown codes get a generic fallback.
func (e *ProviderError) Message() string {
	switch {
	case strings.HasPrefix(e.Code, "EMAIL_NOT_FOUND"):
		return "No account found for this email address"
	case strings.HasPrefix(e.Code, "INVALID_PASSWORD"), strings.HasPrefix(e.Code, "INVALID_LOGIN_CREDENTIALS"):
		return "Incorrect password"
	case strings.HasPrefix(e.Code, "INVALID_EMAIL"):
		return "Invalid email address"
	case strings.HasPrefix(e.Code, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return "Too many attempts, please try again later"
	default:
		return "Login failed, please try again"
	}
}

// SignInWithPassword performs the password grant against the provider.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	endpoint := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", c.baseURL, c.apiKey)
	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity sign-in request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		var pe providerErrorBody
		if err := json.Unmarshal(b, &pe); err == nil && pe.Error.Message != "" {
			return nil, &ProviderError{Code: pe.Error.Message}
		}
		return nil, fmt.Errorf("identity sign-in returned %d: %s", resp.StatusCode, string(b))
	}

	var out SignInResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WithHTTPClient overrides the HTTP client, used by tests pointing at a
// local httptest server.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpClient = h
	return c
}

// WithBaseURL overrides the provider endpoint.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}
