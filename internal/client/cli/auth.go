package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/client/services"
	"github.com/dmitrijs2005/madhelp/internal/common"
)

func (a *App) askPassword(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// Signup collects the registration form and creates the account. The CV
// and first DARS report are required; further reports are optional.
func (a *App) Signup(ctx context.Context) error {
	var (
		req models.SignupRequest
		err error
	)
	if req.Username, err = a.ask("Enter username"); err != nil {
		return err
	}
	if req.Email, err = a.ask("Enter email"); err != nil {
		return err
	}
	if req.Password, err = a.askPassword("Enter password"); err != nil {
		return err
	}
	if req.ConfirmPassword, err = a.askPassword("Confirm password"); err != nil {
		return err
	}
	if req.CVPath, err = a.ask("Path to your CV (PDF)"); err != nil {
		return err
	}
	for i := 1; i <= 4; i++ {
		prompt := fmt.Sprintf("Path to DARS%d (PDF)", i)
		if i > 1 {
			prompt += ", Enter to skip"
		}
		p, err := a.ask(prompt)
		if err != nil {
			return err
		}
		req.DARSPaths = append(req.DARSPaths, p)
	}

	s, err := a.authService.Signup(ctx, req)
	if err != nil {
		return err
	}
	a.setSession(s)
	fmt.Fprintf(a.out, "Signup successful! Welcome, %s.\n", s.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		return err
	}
	a.setSession(s)
	fmt.Fprintf(a.out, "Login successful! Welcome, %s.\n", s.Username)
	return nil
}

// Logout forgets the stored session and the cached profile.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setSession(services.Session{State: services.Anonymous})
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	s, err := a.authService.Status(ctx)
	if err != nil {
		return err
	}
	a.setSession(s)

	switch s.State {
	case services.Active:
		fmt.Fprintf(a.out, "Logged in as %s", s.Username)
		if !s.ExpiresAt.IsZero() {
			fmt.Fprintf(a.out, " (session valid until %s)", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(a.out, ".")
	default:
		fmt.Fprintln(a.out, "Not logged in.")
	}
	fmt.Fprintf(a.out, "Server: %s (%s)\n", a.config.ServerURL, a.currentMode())
	return nil
}

// handleSessionError drops the in-memory session when err says the stored
// one is gone, so the prompt and help match what the backend will accept.
func (a *App) handleSessionError(ctx context.Context, err error) error {
	if err != nil && sessionLost(err) {
		a.refreshSession(ctx)
	}
	return err
}
