package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
)

// Client is the MadHelp backend API as seen by the CLI services.
type Client interface {
	Ping(ctx context.Context) error
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error)
	Login(ctx context.Context, email, password string) (models.AuthResult, error)
	Refresh(ctx context.Context) (models.TokenPair, error)
	GetAccount(ctx context.Context) (models.Account, error)
	UpdateProfile(ctx context.Context, username, email string) (models.Profile, error)
	UpdatePassword(ctx context.Context, current, next string) error
	ListFaculty(ctx context.Context) ([]models.Faculty, error)
	DownloadFile(ctx context.Context, name string, w io.Writer) (int64, error)
}

// CredentialStore holds the session pair between requests. Tokens returns
// empty strings, not an error, when nothing is stored.
type CredentialStore interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	SaveTokens(ctx context.Context, access, refresh string) error
	ClearTokens(ctx context.Context) error
}
