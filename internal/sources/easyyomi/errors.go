package easyyomi

import (
	"errors"
	"fmt"
)

// ErrNotUsed is returned by operations the host may call but this source never
// needs, because pages already carry their full image URL.
var ErrNotUsed = fmt.Errorf("not used: %w", errors.ErrUnsupported)

// ErrNotConfigured is returned when the server address is blank or unusable.
var ErrNotConfigured = errors.New("server address is not configured")

// HTTPError is returned when the server answers with a non-2xx status,
// including a 401 that survived the single credential retry.
type HTTPError struct {
	Op         string
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: %s returned %s", e.Op, e.URL, e.Status)
}

// DecodeError is returned when a response body does not have the expected
// JSON shape. No partial result accompanies it.
type DecodeError struct {
	Op    string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
