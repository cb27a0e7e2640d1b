package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/madhelp/internal/common"
)

var (
	ErrUnavailable    = common.ErrorUnavailable
	ErrUnauthorized   = common.ErrorUnauthorized
	ErrNotLoggedIn    = common.ErrorNotLoggedIn
	ErrSessionExpired = common.ErrSessionExpired
	ErrNotFound       = common.ErrorNotFound
	ErrBadResponse    = errors.New("unexpected response from server")
)

// APIError is a non-2xx backend response. Message is the server's own
// explanation when it sent one, else the HTTP status text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// Is lets callers match status classes with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusUnprocessableEntity
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode == http.StatusBadGateway ||
			e.StatusCode == http.StatusServiceUnavailable ||
			e.StatusCode == http.StatusGatewayTimeout
	}
	return false
}
