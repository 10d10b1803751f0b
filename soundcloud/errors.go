package soundcloud

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ConfigError reports a missing credential or authorization code.
// The caller must supply the missing value before retrying.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "soundcloud: " + e.Reason
}

func newConfigError(format string, args ...any) error {
	return errors.WithStack(&ConfigError{Reason: fmt.Sprintf(format, args...)})
}

// UpstreamError reports a response with a status other than 200 OK,
// or a failed transport round trip (StatusCode 0). Body holds the raw
// response body, falling back to the transport's error text.
type UpstreamError struct {
	StatusCode int
	Body       string
	cause      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("soundcloud: upstream error %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.cause
}

func newUpstreamError(status int, body string, cause error) error {
	return errors.WithStack(&UpstreamError{StatusCode: status, Body: body, cause: cause})
}

// DecodeError reports a response body that is not valid JSON.
type DecodeError struct {
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("soundcloud: failed to decode response: %v", e.cause)
}

func (e *DecodeError) Unwrap() error {
	return e.cause
}

func newDecodeError(cause error) error {
	return errors.WithStack(&DecodeError{cause: cause})
}
