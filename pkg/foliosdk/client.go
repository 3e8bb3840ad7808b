package foliosdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to a folio server without credentials.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session is a Client bound to a bearer token.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time
}

// NewSession wraps an existing token, e.g. one kept from an earlier login.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// ExpiresAt is the token expiry reported at login, or zero if unknown.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.doJSON(ctx, "", http.MethodPost, "/api/user/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out LoginResponse
	err := c.doJSON(ctx, "", http.MethodPost, "/api/user/login",
		LoginRequest{Email: email, Password: password}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.Token, expiresAt: out.ExpiresAt}, nil
}

// Bootstrap creates the first administrator using the pre-shared token.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, "", http.MethodPost, "/api/bootstrap", jsonBody(req),
		map[string]string{"X-Bootstrap-Token": token}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
