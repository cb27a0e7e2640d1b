// Package common holds the sentinel errors and wire constants shared by the
// MadHelp client layers. Match the errors with errors.Is.
package common

import "errors"

var (
	// Local storage.
	ErrorNotFound = errors.New("not found")

	// Session lifecycle.
	ErrorNotLoggedIn  = errors.New("not logged in")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired - please log in again")

	// Backend reachability.
	ErrorUnavailable = errors.New("server unavailable")

	// Input.
	ErrorValidation = errors.New("validation error")
)
