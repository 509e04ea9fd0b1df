package archive

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// APIError reports a non-2xx response after the retry budget is spent.
// Body holds the raw response body; a body that fails to read or decode is
// recorded as empty rather than masking the status error.
type APIError struct {
	Status int
	Body   string
	Msg    string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api returned status %d: %s", e.Status, e.Msg)
	}
	return fmt.Sprintf("api returned status %d", e.Status)
}

// decodeError marks a malformed body on a successful response. The server
// answered, so retrying cannot help; the retry loop returns it immediately.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.err)
}

func (e *decodeError) Unwrap() error {
	return e.err
}

// IsTimeout reports whether err stems from a deadline or a network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
