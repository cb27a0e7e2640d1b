package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/filter"
)

func (a *App) Profile(ctx context.Context) error {
	acc, cached, err := a.accountService.Account(ctx)
	if err != nil {
		return a.handleSessionError(ctx, err)
	}
	if cached {
		fmt.Fprintln(a.out, "(offline - showing the last saved profile)")
	}

	p := acc.Profile
	fmt.Fprintf(a.out, "Username:     %s\n", p.Username)
	fmt.Fprintf(a.out, "Email:        %s\n", p.Email)
	fmt.Fprintf(a.out, "Member since: %s\n", p.CreatedAt)

	docs := acc.Documents.Flatten()
	fmt.Fprintf(a.out, "Documents:    %d (use 'docs' to list)\n", len(docs))
	a.rememberDocs(docs)
	return nil
}

// EditProfile asks for a new username and email. An empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	acc, _, err := a.accountService.Account(ctx)
	if err != nil {
		return a.handleSessionError(ctx, err)
	}
	cur := acc.Profile

	username, err := a.ask(fmt.Sprintf("New username (Enter to keep %q)", cur.Username))
	if err != nil {
		return err
	}
	if username == "" {
		username = cur.Username
	}
	email, err := a.ask(fmt.Sprintf("New email (Enter to keep %q)", cur.Email))
	if err != nil {
		return err
	}
	if email == "" {
		email = cur.Email
	}

	p, err := a.accountService.UpdateProfile(ctx, username, email)
	if err != nil {
		return a.handleSessionError(ctx, err)
	}

	a.mu.Lock()
	a.session.Username = p.Username
	a.mu.Unlock()

	fmt.Fprintln(a.out, "Profile updated successfully!")
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	var (
		pc  models.PasswordChange
		err error
	)
	if pc.Current, err = a.askPassword("Current password"); err != nil {
		return err
	}
	if pc.New, err = a.askPassword("New password"); err != nil {
		return err
	}
	if pc.Confirm, err = a.askPassword("Confirm new password"); err != nil {
		return err
	}

	if err := a.accountService.ChangePassword(ctx, pc); err != nil {
		return a.handleSessionError(ctx, err)
	}
	fmt.Fprintln(a.out, "Password updated successfully!")
	return nil
}

func (a *App) rememberDocs(docs []models.Document) {
	a.mu.Lock()
	a.lastDocs = docs
	a.mu.Unlock()
}

// Docs lists the uploaded documents, optionally only those of one
// category (cv or dars).
func (a *App) Docs(ctx context.Context, category string) error {
	var want models.Category
	if category != "" {
		c, err := models.ParseCategory(category)
		if err != nil {
			return err
		}
		want = c
	}

	docs, err := a.accountService.Documents(ctx)
	if err != nil {
		return a.handleSessionError(ctx, err)
	}
	if want != "" {
		docs = filter.Slice(docs, func(d models.Document) bool { return d.Category == want })
	}
	a.rememberDocs(docs)

	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents uploaded.")
		return nil
	}
	for i, d := range docs {
		label := d.Label
		if label == "" {
			label = string(d.Category)
		}
		fmt.Fprintf(a.out, "%2d. [%s] %s (%s)\n", i+1, d.Category, d.Name, label)
	}
	return nil
}

// resolveDocument maps a number from the last 'docs' listing to a file
// name. Anything else is taken as the name itself.
func (a *App) resolveDocument(arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return arg, nil
	}
	a.mu.Lock()
	docs := a.lastDocs
	a.mu.Unlock()
	if n < 1 || n > len(docs) {
		return "", fmt.Errorf("no document #%d; run 'docs' to list them", n)
	}
	return docs[n-1].Name, nil
}

func (a *App) Download(ctx context.Context, arg string) error {
	name, err := a.resolveDocument(arg)
	if err != nil {
		return err
	}

	res, err := a.accountService.Download(ctx, name)
	if err != nil && res.Path == "" {
		return a.handleSessionError(ctx, err)
	}
	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", res.Path, res.Bytes)
	if res.Archive != nil {
		fmt.Fprintf(a.out, "Archived as %s\n", res.Archive.Key)
	}
	return err
}
