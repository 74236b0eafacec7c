package metadata

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned before any network activity when no catalog
// API key is set. Callers distinguish it from transport failures so the UI
// can point at configuration instead of the network.
var ErrNotConfigured = errors.New("tmdb api key not configured")

// APIError carries the catalog's own error message together with the HTTP
// status and the endpoint that produced it. StatusCode 0 means the request
// never got an HTTP response (DNS, timeout, connection refused).
type APIError struct {
	Message    string
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("tmdb %s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("tmdb %s: %s (status %d)", e.Endpoint, e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a catalog 404 for a missing title.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
