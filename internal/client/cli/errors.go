package cli

import (
	"errors"

	"github.com/dmitrijs2005/madhelp/internal/client/client"
	"github.com/dmitrijs2005/madhelp/internal/client/services"
)

// userMessage turns a command error into the line shown to the student.
func userMessage(err error) string {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	switch {
	case errors.Is(err, client.ErrSessionExpired):
		return client.ErrSessionExpired.Error()
	case errors.Is(err, client.ErrNotLoggedIn):
		return "Please log in first."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	}

	var ae *client.APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

// sessionLost reports errors after which the stored session is gone.
func sessionLost(err error) bool {
	return errors.Is(err, client.ErrSessionExpired) ||
		errors.Is(err, client.ErrNotLoggedIn) ||
		errors.Is(err, client.ErrUnauthorized)
}
