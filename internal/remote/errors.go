package remote

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when the client has no endpoint or key.
// Callers use it to distinguish "set up the connection first" from a
// reachability or authorization failure.
var ErrNotConfigured = errors.New("remote store not configured")

// RequestError is a non-success response from the remote store. It keeps
// the status and body so the sync layer can log what was rejected and the
// settings screen can show it.
type RequestError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("remote %s %s: %d %s", e.Method, e.Path, e.Status, e.Body)
}
