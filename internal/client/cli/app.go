package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/madhelp/internal/client/catalog"
	"github.com/dmitrijs2005/madhelp/internal/client/client"
	"github.com/dmitrijs2005/madhelp/internal/client/config"
	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/madhelp/internal/client/services"
	"github.com/dmitrijs2005/madhelp/internal/client/storage"
	"github.com/dmitrijs2005/madhelp/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// catalogService is the part of services.CatalogService the commands use.
type catalogService interface {
	Courses(ctx context.Context, query string) ([]models.Course, error)
	Faculty(ctx context.Context, query string) ([]models.Faculty, error)
	FacultyByTags(ctx context.Context, tags ...string) ([]models.Faculty, error)
}

type App struct {
	config         *config.Config
	authService    services.AuthService
	accountService services.AccountService
	catalog        catalogService
	log            logging.Logger
	reader         *bufio.Reader
	out            io.Writer

	mu      sync.Mutex
	Mode    Mode
	session services.Session

	lastCourses []models.Course
	lastDocs    []models.Document

	closers []io.Closer
}

// NewApp opens the local database and wires the services behind the
// commands. Call Close when done.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	closers := []io.Closer{db}
	fail := func(err error) (*App, error) {
		closeAll(closers)
		return nil, err
	}

	store := services.NewSessionStore(metadata.NewSQLiteRepository(db))

	apiClient, err := client.NewHTTPClient(c.ServerURL, store, client.Options{
		Timeout:           c.RequestTimeout,
		RequestsPerSecond: c.RequestsPerSecond,
		Logger:            log.With("component", "http"),
	})
	if err != nil {
		return fail(err)
	}

	facultySrc, facultyCloser, err := catalog.OpenFacultySource(c.FacultySource, apiClient)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, facultyCloser)

	var archiver services.Archiver
	if c.S3Bucket != "" {
		a, err := storage.NewS3Archiver(ctx, storage.S3Config{
			Bucket:       c.S3Bucket,
			Prefix:       c.S3Prefix,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			return fail(fmt.Errorf("s3 archiver: %w", err))
		}
		archiver = a
	}

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient, store, log),
		accountService: services.NewAccountService(apiClient, store, c.DownloadDir, archiver, log),
		catalog:        services.NewCatalogService(catalog.CSVCourses{Path: c.CoursesFile}, facultySrc),
		log:            log,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		closers:        closers,
	}, nil
}

func closeAll(cs []io.Closer) error {
	var errs []error
	for i := len(cs) - 1; i >= 0; i-- {
		if err := cs[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close releases the local database and any catalogue connection.
func (a *App) Close() error {
	err := closeAll(a.closers)
	a.closers = nil
	return err
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		printlnFn(fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) setSession(s services.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
	if !s.SignedIn() {
		a.lastDocs = nil
	}
}

func (a *App) currentSession() services.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func (a *App) isLoggedIn() bool {
	return a.currentSession().SignedIn()
}

// refreshSession re-reads the stored session, refreshing an expired access
// token when a refresh token is available.
func (a *App) refreshSession(ctx context.Context) {
	s, err := a.authService.Status(ctx)
	if err != nil {
		a.log.Warn(ctx, "session check failed", "error", err)
		return
	}
	a.setSession(s)
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done and flips Mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if sess := a.currentSession(); sess.SignedIn() && sess.Username != "" {
		s = sess.Username + " "
	}
	if m := a.currentMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to MadHelp CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	a.refreshSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
