// Package soundcloud provides a client for the SoundCloud API.
package soundcloud

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultAPIBaseURL = "https://api.soundcloud.com/"
	defaultConnectURL = "https://soundcloud.com/connect"
	defaultOEmbedURL  = "https://soundcloud.com/oembed"

	tokenPath = "oauth2/token"
)

// Value is a decoded JSON response body: a map[string]any, []any, or
// scalar depending on the endpoint. Response shapes are not validated.
type Value = any

// CodeSource returns the query values of the current inbound HTTP
// request, or nil when none is in flight. It is consulted during lazy
// token acquisition when no authorization code has been set.
type CodeSource func() url.Values

// Config represents SoundCloud client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	// CallbackURL is sent as the OAuth redirect_uri. It must exactly
	// match the value registered with SoundCloud.
	CallbackURL string
}

// Client is a SoundCloud API client. A Client holds the OAuth
// credentials and an in-memory token cache; it keeps no other state
// and performs one blocking round trip per call.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string

	apiBaseURL string
	connectURL string
	oembedURL  string

	httpClient *http.Client
	codeSource CodeSource

	mu                sync.Mutex
	authorizationCode string
	accessToken       string
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCodeSource sets the accessor for the current inbound request's
// query values, used to pick up the "code" parameter after the OAuth
// redirect without reaching into framework state.
func WithCodeSource(src CodeSource) Option {
	return func(c *Client) {
		c.codeSource = src
	}
}

// New creates a new SoundCloud client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, newConfigError("client_id is required")
	}
	if cfg.ClientSecret == "" {
		return nil, newConfigError("client_secret is required")
	}

	c := &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.CallbackURL,
		apiBaseURL:   defaultAPIBaseURL,
		connectURL:   defaultConnectURL,
		oembedURL:    defaultOEmbedURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// AuthorizeURL returns the URL a user must visit to authorize the
// application. state is echoed back on the redirect.
func (c *Client) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("response_type", "code")
	params.Set("state", state)
	return c.connectURL + "?" + params.Encode()
}

// SetAuthorizationCode sets the authorization code obtained from the
// OAuth redirect. The code is consumed by the next token exchange.
func (c *Client) SetAuthorizationCode(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authorizationCode = code
}

// SetAccessToken sets the access token directly, skipping the code
// exchange on subsequent authenticated calls.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// AccessToken returns the cached access token, which may be empty.
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// resolveURL resolves a resource path against the API base URL.
// Absolute http(s) URLs pass through verbatim.
func (c *Client) resolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.apiBaseURL + strings.TrimPrefix(path, "/")
}
