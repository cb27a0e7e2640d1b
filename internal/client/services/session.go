package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/madhelp/internal/common"
)

// SessionStore keeps the session in the local metadata table. It is the
// client.CredentialStore used by the HTTP client.
type SessionStore struct {
	repo metadata.Repository
}

func NewSessionStore(repo metadata.Repository) *SessionStore {
	return &SessionStore{repo: repo}
}

func (s *SessionStore) Tokens(ctx context.Context) (string, string, error) {
	access, err := s.repo.Get(ctx, common.MetaAccessToken)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.repo.Get(ctx, common.MetaRefreshToken)
	if err != nil {
		return "", "", err
	}
	return string(access), string(refresh), nil
}

// SaveTokens stores the pair atomically. An empty refresh token removes a
// previously stored one.
func (s *SessionStore) SaveTokens(ctx context.Context, access, refresh string) error {
	if refresh == "" {
		return s.repo.Replace(ctx, map[string][]byte{
			common.MetaAccessToken: []byte(access),
		}, common.MetaRefreshToken)
	}
	return s.repo.SetMany(ctx, map[string][]byte{
		common.MetaAccessToken:  []byte(access),
		common.MetaRefreshToken: []byte(refresh),
	})
}

func (s *SessionStore) ClearTokens(ctx context.Context) error {
	return s.repo.DeleteMany(ctx, common.MetaAccessToken, common.MetaRefreshToken)
}

// Start replaces whatever session was stored with a new one.
func (s *SessionStore) Start(ctx context.Context, username, access, refresh string) error {
	values := map[string][]byte{
		common.MetaUsername:    []byte(username),
		common.MetaAccessToken: []byte(access),
	}
	if refresh != "" {
		values[common.MetaRefreshToken] = []byte(refresh)
	}
	return s.repo.Replace(ctx, values, sessionKeys...)
}

var sessionKeys = []string{
	common.MetaAccessToken,
	common.MetaRefreshToken,
	common.MetaUsername,
	common.MetaProfileCache,
}

// Forget removes the credentials together with everything cached for the
// signed-in student.
func (s *SessionStore) Forget(ctx context.Context) error {
	return s.repo.DeleteMany(ctx, sessionKeys...)
}

func (s *SessionStore) Username(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.MetaUsername)
	return string(v), err
}

func (s *SessionStore) SetUsername(ctx context.Context, username string) error {
	return s.repo.Set(ctx, common.MetaUsername, []byte(username))
}

// CachedAccount returns the last profile fetched online, or nil.
func (s *SessionStore) CachedAccount(ctx context.Context) (*models.Account, error) {
	raw, err := s.repo.Get(ctx, common.MetaProfileCache)
	if err != nil || raw == nil {
		return nil, err
	}
	var acc models.Account
	if err := json.Unmarshal(raw, &acc); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &acc, nil
}

func (s *SessionStore) CacheAccount(ctx context.Context, acc models.Account) error {
	raw, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, common.MetaProfileCache, raw)
}
