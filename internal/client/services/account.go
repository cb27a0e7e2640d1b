package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/madhelp/internal/client/client"
	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/client/storage"
	"github.com/dmitrijs2005/madhelp/internal/filex"
	"github.com/dmitrijs2005/madhelp/internal/logging"
)

// Archiver keeps a remote copy of a downloaded document.
type Archiver interface {
	Archive(ctx context.Context, username, localPath string) (storage.Archived, error)
}

// Download is the outcome of fetching one document.
type Download struct {
	Path    string
	Bytes   int64
	Archive *storage.Archived
}

// AccountService covers the signed-in student's own data.
type AccountService interface {
	// Account returns the profile and documents. When the backend is
	// unreachable the last cached copy is returned with cached=true.
	Account(ctx context.Context) (acc models.Account, cached bool, err error)
	UpdateProfile(ctx context.Context, username, email string) (models.Profile, error)
	ChangePassword(ctx context.Context, pc models.PasswordChange) error
	Documents(ctx context.Context) ([]models.Document, error)
	Download(ctx context.Context, name string) (Download, error)
}

type accountService struct {
	client      client.Client
	store       *SessionStore
	archiver    Archiver
	downloadDir string
	log         logging.Logger
}

// NewAccountService wires the service. archiver may be nil.
func NewAccountService(c client.Client, store *SessionStore, downloadDir string, archiver Archiver, log logging.Logger) AccountService {
	return &accountService{client: c, store: store, archiver: archiver, downloadDir: downloadDir, log: log}
}

func (s *accountService) Account(ctx context.Context) (models.Account, bool, error) {
	acc, err := s.client.GetAccount(ctx)
	if err == nil {
		if err := s.store.CacheAccount(ctx, acc); err != nil {
			s.log.Warn(ctx, "failed to cache profile", "error", err)
		}
		return acc, false, nil
	}

	// A refresh that failed offline still ends the session.
	if !errors.Is(err, client.ErrUnavailable) || errors.Is(err, client.ErrSessionExpired) {
		return models.Account{}, false, err
	}

	cached, cacheErr := s.store.CachedAccount(ctx)
	if cacheErr != nil || cached == nil {
		return models.Account{}, false, err
	}
	s.log.Info(ctx, "backend unreachable, showing cached profile")
	return *cached, true, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, username, email string) (models.Profile, error) {
	username, email, err := ValidateProfile(username, email)
	if err != nil {
		return models.Profile{}, err
	}

	p, err := s.client.UpdateProfile(ctx, username, email)
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	if err := s.store.SetUsername(ctx, p.Username); err != nil {
		return p, err
	}
	if cached, err := s.store.CachedAccount(ctx); err == nil && cached != nil {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = cached.Profile.CreatedAt
		}
		cached.Profile = p
		if err := s.store.CacheAccount(ctx, *cached); err != nil {
			s.log.Warn(ctx, "failed to cache profile", "error", err)
		}
	}
	return p, nil
}

func (s *accountService) ChangePassword(ctx context.Context, pc models.PasswordChange) error {
	if err := ValidatePasswordChange(pc); err != nil {
		return err
	}
	if err := s.client.UpdatePassword(ctx, pc.Current, pc.New); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (s *accountService) Documents(ctx context.Context) ([]models.Document, error) {
	acc, _, err := s.Account(ctx)
	if err != nil {
		return nil, err
	}
	return acc.Documents.Flatten(), nil
}

// Download writes the named upload into the download directory. The file
// only appears under its final name once fully written.
func (s *accountService) Download(ctx context.Context, name string) (Download, error) {
	safe := filex.SafeName(name)
	if safe == "" {
		return Download{}, invalid("name", "Invalid document name %q.", name)
	}

	dir, err := filex.EnsureDir(s.downloadDir)
	if err != nil {
		return Download{}, err
	}

	tmp, err := os.CreateTemp(dir, "."+safe+".*.part")
	if err != nil {
		return Download{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := s.client.DownloadFile(ctx, name, tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return Download{}, err
	}

	dst := filepath.Join(dir, safe)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return Download{}, fmt.Errorf("save %s: %w", dst, err)
	}

	out := Download{Path: dst, Bytes: n}
	if s.archiver == nil {
		return out, nil
	}

	username, err := s.store.Username(ctx)
	if err != nil {
		return out, err
	}
	arch, err := s.archiver.Archive(ctx, username, dst)
	if err != nil {
		s.log.Warn(ctx, "archive failed", "file", safe, "error", err)
		return out, fmt.Errorf("archive: %w", err)
	}
	out.Archive = &arch
	return out, nil
}
