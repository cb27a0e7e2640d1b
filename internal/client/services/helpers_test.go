package services

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/madhelp/internal/client/client"
	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/madhelp/internal/logging"
)

func newStore(t *testing.T) *SessionStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, client.RunMigrations(context.Background(), db))
	return NewSessionStore(metadata.NewSQLiteRepository(db))
}

func token(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

// fakeClient answers with whatever its function fields return. Unset
// fields fail the call.
type fakeClient struct {
	ping           func() error
	signup         func(models.SignupRequest) (models.AuthResult, error)
	login          func(email, password string) (models.AuthResult, error)
	refresh        func() (models.TokenPair, error)
	getAccount     func() (models.Account, error)
	updateProfile  func(username, email string) (models.Profile, error)
	updatePassword func(current, next string) error
	listFaculty    func() ([]models.Faculty, error)
	download       func(name string, w io.Writer) (int64, error)

	refreshCalls int
}

var errNotStubbed = client.ErrBadResponse

func (f *fakeClient) Ping(context.Context) error {
	if f.ping == nil {
		return nil
	}
	return f.ping()
}

func (f *fakeClient) Signup(_ context.Context, req models.SignupRequest) (models.AuthResult, error) {
	if f.signup == nil {
		return models.AuthResult{}, errNotStubbed
	}
	return f.signup(req)
}

func (f *fakeClient) Login(_ context.Context, email, password string) (models.AuthResult, error) {
	if f.login == nil {
		return models.AuthResult{}, errNotStubbed
	}
	return f.login(email, password)
}

func (f *fakeClient) Refresh(context.Context) (models.TokenPair, error) {
	f.refreshCalls++
	if f.refresh == nil {
		return models.TokenPair{}, errNotStubbed
	}
	return f.refresh()
}

func (f *fakeClient) GetAccount(context.Context) (models.Account, error) {
	if f.getAccount == nil {
		return models.Account{}, errNotStubbed
	}
	return f.getAccount()
}

func (f *fakeClient) UpdateProfile(_ context.Context, username, email string) (models.Profile, error) {
	if f.updateProfile == nil {
		return models.Profile{}, errNotStubbed
	}
	return f.updateProfile(username, email)
}

func (f *fakeClient) UpdatePassword(_ context.Context, current, next string) error {
	if f.updatePassword == nil {
		return errNotStubbed
	}
	return f.updatePassword(current, next)
}

func (f *fakeClient) ListFaculty(context.Context) ([]models.Faculty, error) {
	if f.listFaculty == nil {
		return nil, errNotStubbed
	}
	return f.listFaculty()
}

func (f *fakeClient) DownloadFile(_ context.Context, name string, w io.Writer) (int64, error) {
	if f.download == nil {
		return 0, errNotStubbed
	}
	return f.download(name, w)
}

var nopLog = logging.Nop()
