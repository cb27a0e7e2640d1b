package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/madhelp/internal/client/client"
	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/client/services"
	"github.com/dmitrijs2005/madhelp/internal/client/storage"
)

type fakeAccount struct {
	acc       models.Account
	cached    bool
	err       error
	updated   [2]string
	pc        models.PasswordChange
	downloads []string
	download  services.Download
}

func (f *fakeAccount) Account(context.Context) (models.Account, bool, error) {
	return f.acc, f.cached, f.err
}
func (f *fakeAccount) UpdateProfile(_ context.Context, u, e string) (models.Profile, error) {
	f.updated = [2]string{u, e}
	if f.err != nil {
		return models.Profile{}, f.err
	}
	return models.Profile{Username: u, Email: e}, nil
}
func (f *fakeAccount) ChangePassword(_ context.Context, pc models.PasswordChange) error {
	f.pc = pc
	return f.err
}
func (f *fakeAccount) Documents(context.Context) ([]models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.acc.Documents.Flatten(), nil
}
func (f *fakeAccount) Download(_ context.Context, name string) (services.Download, error) {
	f.downloads = append(f.downloads, name)
	return f.download, f.err
}

type fakeCatalog struct {
	courses []models.Course
	faculty []models.Faculty
	tags    []string
	err     error
}

func (f *fakeCatalog) Courses(_ context.Context, q string) ([]models.Course, error) {
	if q == "" {
		return f.courses, f.err
	}
	return f.courses[:1], f.err
}
func (f *fakeCatalog) Faculty(context.Context, string) ([]models.Faculty, error) {
	return f.faculty, f.err
}
func (f *fakeCatalog) FacultyByTags(_ context.Context, tags ...string) ([]models.Faculty, error) {
	f.tags = tags
	return f.faculty, f.err
}

var testAccount = models.Account{
	Profile: models.Profile{Username: "bucky", Email: "bucky@wisc.edu"},
	Documents: models.Documents{
		CV:   &models.DocumentRef{ID: "1", Name: "cv.pdf", Label: "CV"},
		DARS: []models.DocumentRef{{ID: "2", Name: "dars1.pdf"}},
	},
}

func TestProfile_Command(t *testing.T) {
	app, out := newTestApp(&fakeAuth{}, "")
	app.accountService = &fakeAccount{acc: testAccount, cached: true}

	require.NoError(t, app.Profile(context.Background()))
	s := out.String()
	assert.Contains(t, s, "offline - showing the last saved profile")
	assert.Contains(t, s, "Username:     bucky")
	assert.Contains(t, s, "Member since: -")
	assert.Contains(t, s, "Documents:    2")
}

func TestProfile_SessionLossUpdatesPrompt(t *testing.T) {
	auth := &fakeAuth{status: services.Session{State: services.Anonymous}}
	app, _ := newTestApp(auth, "")
	app.setSession(services.Session{State: services.Active, Username: "bucky"})
	app.accountService = &fakeAccount{err: client.ErrSessionExpired}

	err := app.Profile(context.Background())
	require.ErrorIs(t, err, client.ErrSessionExpired)
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, 1, auth.statusCalls())
}

func TestEditProfile_BlankKeepsCurrent(t *testing.T) {
	acct := &fakeAccount{acc: testAccount}
	app, out := newTestApp(&fakeAuth{}, "badger\n\n")
	app.accountService = acct
	app.setSession(services.Session{State: services.Active, Username: "bucky"})

	require.NoError(t, app.EditProfile(context.Background()))
	assert.Equal(t, [2]string{"badger", "bucky@wisc.edu"}, acct.updated)
	assert.Equal(t, "badger", app.currentSession().Username)
	assert.Contains(t, out.String(), "Profile updated successfully!")
}

func TestChangePassword_Command(t *testing.T) {
	acct := &fakeAccount{}
	app, out := newTestApp(&fakeAuth{}, "")
	app.accountService = acct
	stubPasswords(t, "old", "new", "new")

	require.NoError(t, app.ChangePassword(context.Background()))
	assert.Equal(t, models.PasswordChange{Current: "old", New: "new", Confirm: "new"}, acct.pc)
	assert.Contains(t, out.String(), "Password updated successfully!")
}

func TestDocsAndDownloadByNumber(t *testing.T) {
	acct := &fakeAccount{acc: testAccount, download: services.Download{Path: "/tmp/dars1.pdf", Bytes: 42}}
	app, out := newTestApp(&fakeAuth{}, "")
	app.accountService = acct
	ctx := context.Background()

	err := app.Download(ctx, "2")
	require.Error(t, err, "numbers need a listing first")

	require.NoError(t, app.Docs(ctx, ""))
	assert.Contains(t, out.String(), " 1. [CV] cv.pdf (CV)")
	assert.Contains(t, out.String(), " 2. [DARS] dars1.pdf (DARS)")

	require.NoError(t, app.Download(ctx, "2"))
	require.NoError(t, app.Download(ctx, "notes.pdf"))
	assert.Equal(t, []string{"dars1.pdf", "notes.pdf"}, acct.downloads)
	assert.Contains(t, out.String(), "Saved /tmp/dars1.pdf (42 bytes)")
}

func TestDocs_ByCategory(t *testing.T) {
	app, out := newTestApp(&fakeAuth{}, "")
	app.accountService = &fakeAccount{acc: testAccount}
	ctx := context.Background()

	require.NoError(t, app.Docs(ctx, "dars"))
	assert.Contains(t, out.String(), " 1. [DARS] dars1.pdf")
	assert.NotContains(t, out.String(), "cv.pdf")

	err := app.Docs(ctx, "transcript")
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
}

func TestDownload_ArchiveFailureStillReportsFile(t *testing.T) {
	acct := &fakeAccount{
		download: services.Download{Path: "/tmp/cv.pdf", Bytes: 1},
		err:      errors.New("archive: access denied"),
	}
	app, out := newTestApp(&fakeAuth{}, "")
	app.accountService = acct

	err := app.Download(context.Background(), "cv.pdf")
	assert.EqualError(t, err, "archive: access denied")
	assert.Contains(t, out.String(), "Saved /tmp/cv.pdf")
}

func TestDownload_ShowsArchiveKey(t *testing.T) {
	acct := &fakeAccount{download: services.Download{
		Path:    "/tmp/cv.pdf",
		Archive: &storage.Archived{Key: "madhelp/users/bucky/cv.pdf"},
	}}
	app, out := newTestApp(&fakeAuth{}, "")
	app.accountService = acct

	require.NoError(t, app.Download(context.Background(), "cv.pdf"))
	assert.Contains(t, out.String(), "Archived as madhelp/users/bucky/cv.pdf")
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		courses: []models.Course{
			{Title: "Intro to Biology", Credits: "3", Description: "Cells."},
			{Title: "Data Structures", Credits: "4"},
		},
		faculty: []models.Faculty{
			{Name: "Ada Lovelace", Email: "ada@wisc.edu", Departments: "Computer Sciences", Fields: "Algorithms; Theory", Link: "https://x/ada"},
		},
	}
}

func TestCourses_ThenCourseByNumber(t *testing.T) {
	app, out := newTestApp(&fakeAuth{}, "")
	app.catalog = testCatalog()
	ctx := context.Background()

	require.NoError(t, app.Courses(ctx, "bio"))
	assert.Contains(t, out.String(), "  1. Intro to Biology (3 credits)")
	assert.NotContains(t, out.String(), "Data Structures")

	out.Reset()
	require.NoError(t, app.Course(ctx, "1"))
	assert.Contains(t, out.String(), "Title:       Intro to Biology")
	assert.Contains(t, out.String(), "Description: Cells.")

	assert.EqualError(t, app.Course(ctx, "2"), "no course #2")
	assert.Error(t, app.Course(ctx, "two"))
}

func TestCourse_WithoutListingUsesWholeCatalogue(t *testing.T) {
	app, out := newTestApp(&fakeAuth{}, "")
	app.catalog = testCatalog()

	require.NoError(t, app.Course(context.Background(), "2"))
	assert.Contains(t, out.String(), "Data Structures")
}

func TestCourses_NoMatch(t *testing.T) {
	app, out := newTestApp(&fakeAuth{}, "")
	app.catalog = &fakeCatalog{courses: []models.Course{}}

	require.NoError(t, app.Courses(context.Background(), ""))
	assert.Contains(t, out.String(), `No courses match "".`)
}

func TestFacultyAndFields(t *testing.T) {
	cat := testCatalog()
	app, out := newTestApp(&fakeAuth{}, "")
	app.catalog = cat
	ctx := context.Background()

	require.NoError(t, app.Faculty(ctx, "ada"))
	s := out.String()
	assert.Contains(t, s, "  1. Ada Lovelace <ada@wisc.edu>")
	assert.Contains(t, s, "Departments: Computer Sciences")
	assert.Contains(t, s, "Research:    Algorithms, Theory")

	require.NoError(t, app.Fields(ctx, "Theory, AI;"))
	assert.Equal(t, []string{"Theory", "AI"}, cat.tags)

	cat.faculty = nil
	out.Reset()
	require.NoError(t, app.Fields(ctx, "astrology"))
	assert.Contains(t, out.String(), "No faculty work in astrology.")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&services.ValidationError{Field: "email", Message: "Bad email."}, "Bad email."},
		{client.ErrUnavailable, "Server unavailable, try again later."},
		{client.ErrNotLoggedIn, "Please log in first."},
		{fmt.Errorf("%w: %w", client.ErrSessionExpired, client.ErrUnavailable), "session expired - please log in again"},
		{&client.APIError{StatusCode: 400, Message: "Email already in use"}, "Email already in use"},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, userMessage(tt.err))
	}
}
