// Package services holds the application services behind the MadHelp CLI
// commands: session handling, account management and catalogue browsing.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/madhelp/internal/client/client"
	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/logging"
	"github.com/dmitrijs2005/madhelp/internal/tokenx"
)

// SessionState tells the CLI which commands to offer.
type SessionState int

const (
	// Anonymous: nothing usable is stored; only signup and login apply.
	Anonymous SessionState = iota
	// Active: the access token is live.
	Active
)

func (s SessionState) String() string {
	switch s {
	case Active:
		return "active"
	default:
		return "anonymous"
	}
}

type Session struct {
	State     SessionState
	Username  string
	ExpiresAt time.Time
}

// SignedIn reports whether account commands should be offered.
func (s Session) SignedIn() bool { return s.State == Active }

// AuthService manages the student's session.
//
//   - Signup / Login: validate the form, call the backend, store the session.
//   - Logout: forget the session and everything cached for it.
//   - Status: inspect the stored credential and refresh it once if expired.
//   - Ping: check backend reachability.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (Session, error)
	Login(ctx context.Context, email, password string) (Session, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (Session, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *SessionStore
	log    logging.Logger
	now    func() time.Time
}

func NewAuthService(c client.Client, store *SessionStore, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log, now: time.Now}
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (Session, error) {
	req, err := ValidateSignup(req)
	if err != nil {
		return Session{}, err
	}

	res, err := a.client.Signup(ctx, req)
	if err != nil {
		return Session{}, fmt.Errorf("signup: %w", err)
	}

	username := res.Username
	if username == "" {
		username = req.Username
	}
	return a.start(ctx, username, res)
}

func (a *authService) Login(ctx context.Context, email, password string) (Session, error) {
	email, err := ValidateLogin(email, password)
	if err != nil {
		return Session{}, err
	}

	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}

	username := res.Username
	if username == "" {
		username = email
	}
	return a.start(ctx, username, res)
}

func (a *authService) start(ctx context.Context, username string, res models.AuthResult) (Session, error) {
	access := res.Access()
	if access == "" {
		return Session{}, fmt.Errorf("%w: no token issued", client.ErrBadResponse)
	}
	if err := a.store.Start(ctx, username, access, res.RefreshToken); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	a.log.Info(ctx, "session started", "username", username)

	s := Session{State: Active, Username: username}
	if claims, err := tokenx.Decode(access); err == nil {
		s.ExpiresAt = claims.ExpiresAt
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Forget(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.log.Info(ctx, "session forgotten")
	return nil
}

func (a *authService) Status(ctx context.Context) (Session, error) {
	access, refresh, err := a.store.Tokens(ctx)
	if err != nil {
		return Session{}, err
	}
	if access == "" {
		return Session{State: Anonymous}, nil
	}

	username, err := a.store.Username(ctx)
	if err != nil {
		return Session{}, err
	}

	claims, err := tokenx.Decode(access)
	if err != nil {
		a.log.Warn(ctx, "stored access token is unreadable, discarding", "error", err)
		if err := a.store.ClearTokens(ctx); err != nil {
			return Session{}, err
		}
		return Session{State: Anonymous}, nil
	}
	if username == "" {
		username = claims.Subject
	}
	if !claims.Expired(a.now()) {
		return Session{State: Active, Username: username, ExpiresAt: claims.ExpiresAt}, nil
	}

	if refresh == "" {
		if err := a.store.ClearTokens(ctx); err != nil {
			return Session{}, err
		}
		return Session{State: Anonymous}, nil
	}

	pair, err := a.client.Refresh(ctx)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrSessionExpired):
		a.log.Info(ctx, "session expired", "error", err)
		return Session{State: Anonymous}, nil
	default:
		return Session{}, err
	}

	s := Session{State: Active, Username: username}
	if fresh, err := tokenx.Decode(pair.AccessToken); err == nil {
		s.ExpiresAt = fresh.ExpiresAt
	}
	return s, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
