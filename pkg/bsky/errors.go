package bsky

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an XRPC error response. Kind carries the machine-readable error
// name from the body ("InvalidRequest", "AuthRequired", ...).
type Error struct {
	StatusCode int    `json:"-"`
	Kind       string `json:"error"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("upstream responded with %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream responded with %d (%s): %s", e.StatusCode, e.Kind, e.Message)
}

// IsTransient reports whether err is worth retrying without caller
// intervention. Only 502 qualifies: the PDS answers with Bad Gateway during
// rollouts and brief overloads, while other statuses (including the rest of
// the 5xx range) have not been observed to recover on a blind retry.
func IsTransient(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusBadGateway
}
