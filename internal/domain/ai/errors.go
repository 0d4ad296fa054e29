package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProviderShape indicates the provider answered 2xx but no textual
// payload could be extracted from the response envelope.
var ErrProviderShape = errors.New("ai: unrecognized provider response shape")

// TransportError covers network/HTTP-layer failures against the provider.
// StatusCode is 0 when the request never produced a response.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ai transport: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
	}
	return fmt.Sprintf("ai transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
