package soundcloud

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_ExchangesAuthorizationCode(t *testing.T) {
	var exchanges atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"), "token exchange is unauthenticated")
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "authorization_code", r.FormValue("grant_type"))
		assert.Equal(t, "id", r.FormValue("client_id"))
		assert.Equal(t, "secret", r.FormValue("client_secret"))
		assert.Equal(t, "the-code", r.FormValue("code"))
		assert.Equal(t, "https://app/cb", r.FormValue("redirect_uri"))

		fmt.Fprint(w, `{"access_token": "fresh-token", "scope": "*"}`)
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OAuth fresh-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id": 1}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := New(Config{ClientID: "id", ClientSecret: "secret", CallbackURL: "https://app/cb"})
	require.NoError(t, err)
	client.apiBaseURL = server.URL + "/"
	client.SetAuthorizationCode("the-code")

	ctx := context.Background()
	_, err = client.Get(ctx, "me", nil)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", client.AccessToken())

	// Second call reuses the cached token.
	_, err = client.Get(ctx, "me", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), exchanges.Load())
}

func TestToken_PresetTokenSkipsExchange(t *testing.T) {
	var exchanges atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)
		fmt.Fprint(w, `{"access_token": "unexpected"}`)
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OAuth preset", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id": 1}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := New(Config{ClientID: "id", ClientSecret: "secret"})
	require.NoError(t, err)
	client.apiBaseURL = server.URL + "/"
	client.SetAccessToken("preset")
	client.SetAuthorizationCode("unused-code")

	_, err = client.Get(context.Background(), "me", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), exchanges.Load())
}

func TestToken_CodeFromInjectedSource(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "ambient-code", r.FormValue("code"))
		fmt.Fprint(w, `{"access_token": "ambient-token"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	source := func() url.Values {
		q := url.Values{}
		q.Set("code", "ambient-code")
		return q
	}

	client, err := New(
		Config{ClientID: "id", ClientSecret: "secret"},
		WithCodeSource(source),
	)
	require.NoError(t, err)
	client.apiBaseURL = server.URL + "/"

	token, err := client.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ambient-token", token)
}

func TestToken_MissingAccessTokenFieldIsSilent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"scope": "*"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := New(Config{ClientID: "id", ClientSecret: "secret"})
	require.NoError(t, err)
	client.apiBaseURL = server.URL + "/"
	client.SetAuthorizationCode("the-code")

	token, err := client.Token(context.Background())
	require.NoError(t, err, "an omitted access_token field is not an error at this layer")
	assert.Empty(t, token)
}

func TestToken_NoCodeAvailable(t *testing.T) {
	client, err := New(Config{ClientID: "id", ClientSecret: "secret"})
	require.NoError(t, err)

	_, err = client.Token(context.Background())
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Reason, "authorization code")
}

func TestToken_ExchangeFailurePropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := New(Config{ClientID: "id", ClientSecret: "secret"})
	require.NoError(t, err)
	client.apiBaseURL = server.URL + "/"
	client.SetAuthorizationCode("stale-code")

	_, err = client.Token(context.Background())
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	assert.Equal(t, `{"error":"invalid_grant"}`, upErr.Body)
}
