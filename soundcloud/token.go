package soundcloud

import (
	"context"
	"net/url"

	zlog "github.com/rs/zerolog/log"
)

// Token returns the access token, exchanging the authorization code
// for one on first use. The cached token wins; when no token and no
// code are available the call fails before any network I/O.
//
// When the exchange response omits access_token the cached (possibly
// empty) value is returned without error, matching the upstream
// contract that the field is optional at this layer.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.accessToken
	code := c.authorizationCode
	c.mu.Unlock()

	if token != "" {
		return token, nil
	}

	if code == "" && c.codeSource != nil {
		if q := c.codeSource(); q != nil {
			code = q.Get("code")
		}
		if code != "" {
			c.SetAuthorizationCode(code)
		}
	}
	if code == "" {
		return "", newConfigError("authorization code must be supplied or present in the request")
	}

	fields := url.Values{}
	fields.Set("grant_type", "authorization_code")
	fields.Set("client_id", c.clientID)
	fields.Set("client_secret", c.clientSecret)
	fields.Set("code", code)
	fields.Set("redirect_uri", c.redirectURI)

	res, err := c.Post(ctx, tokenPath, fields, Unauthenticated())
	if err != nil {
		return "", err
	}

	if obj, ok := res.(map[string]any); ok {
		if tok, ok := obj["access_token"].(string); ok && tok != "" {
			c.mu.Lock()
			c.accessToken = tok
			c.mu.Unlock()
			zlog.Debug().Msg("cached access token from code exchange")
		}
	}

	return c.AccessToken(), nil
}
