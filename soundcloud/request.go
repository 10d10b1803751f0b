package soundcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// requestOptions holds transport-level settings for a single call.
// Options are applied in order, so later options win on collision.
type requestOptions struct {
	headers         http.Header
	timeout         time.Duration
	followRedirects bool
	noAuth          bool
}

// RequestOption overrides a transport-level default for one request.
type RequestOption func(*requestOptions)

// WithHeader sets a request header, replacing the method's default for
// that key.
func WithHeader(key, value string) RequestOption {
	return func(ro *requestOptions) {
		ro.headers.Set(key, value)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) RequestOption {
	return WithHeader("User-Agent", ua)
}

// WithTimeout overrides the client's default timeout for one request.
func WithTimeout(d time.Duration) RequestOption {
	return func(ro *requestOptions) {
		ro.timeout = d
	}
}

// WithFollowRedirects enables or disables redirect following. The
// dispatcher does not follow redirects by default, so a 3xx response
// surfaces as an UpstreamError.
func WithFollowRedirects(follow bool) RequestOption {
	return func(ro *requestOptions) {
		ro.followRedirects = follow
	}
}

// Unauthenticated skips token acquisition and the Authorization
// header. Calls made with it cannot fail on missing credentials.
func Unauthenticated() RequestOption {
	return func(ro *requestOptions) {
		ro.noAuth = true
	}
}

// Get issues a GET request for a resource path or absolute URL.
// query is appended to the URL when non-empty.
func (c *Client) Get(ctx context.Context, path string, query url.Values, opts ...RequestOption) (Value, error) {
	return c.dispatch(ctx, http.MethodGet, path, query, nil, opts)
}

// Post issues a POST request. body is sent as multipart/form-data.
func (c *Client) Post(ctx context.Context, path string, body url.Values, opts ...RequestOption) (Value, error) {
	return c.dispatch(ctx, http.MethodPost, path, nil, body, opts)
}

// Put issues a PUT request. body is sent as multipart/form-data.
func (c *Client) Put(ctx context.Context, path string, body url.Values, opts ...RequestOption) (Value, error) {
	return c.dispatch(ctx, http.MethodPut, path, nil, body, opts)
}

// Delete issues a DELETE request for a resource path or absolute URL.
func (c *Client) Delete(ctx context.Context, path string, query url.Values, opts ...RequestOption) (Value, error) {
	return c.dispatch(ctx, http.MethodDelete, path, query, nil, opts)
}

// dispatch performs a single blocking round trip and decodes the JSON
// response. Exactly HTTP 200 counts as success.
func (c *Client) dispatch(ctx context.Context, method, path string, query, body url.Values, opts []RequestOption) (Value, error) {
	ro := requestOptions{headers: http.Header{}}
	for _, opt := range opts {
		opt(&ro)
	}

	reqURL := c.resolveURL(path)
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(reqURL, "?") {
			sep = "&"
		}
		reqURL += sep + query.Encode()
	}

	var reqBody io.Reader
	contentType := "application/json"
	if len(body) > 0 {
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		for key, values := range body {
			for _, v := range values {
				if err := mw.WriteField(key, v); err != nil {
					return nil, errors.Wrap(err, "failed to encode request body")
				}
			}
		}
		if err := mw.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reqBody = buf
		contentType = mw.FormDataContentType()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	if !ro.noAuth {
		token, err := c.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "OAuth "+token)
	}

	// Per-request overrides replace the defaults set above.
	for key, values := range ro.headers {
		req.Header[key] = values
	}

	// Copy the client so per-request timeout and redirect policy don't
	// leak into other calls.
	hc := *c.httpClient
	if ro.timeout > 0 {
		hc.Timeout = ro.timeout
	}
	if ro.followRedirects {
		hc.CheckRedirect = nil
	} else {
		hc.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	zlog.Debug().Msgf("dispatching %s %s", method, reqURL)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, newUpstreamError(0, err.Error(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(raw)
		if msg == "" {
			msg = resp.Status
		}
		return nil, newUpstreamError(resp.StatusCode, msg, nil)
	}

	var decoded Value
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, newDecodeError(err)
	}

	return decoded, nil
}
