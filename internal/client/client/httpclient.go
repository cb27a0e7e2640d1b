package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/common"
	"github.com/dmitrijs2005/madhelp/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const maxErrorBody = 64 << 10

// Options tunes an HTTPClient. Zero values pick usable defaults.
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Transport         http.RoundTripper
	Logger            logging.Logger
}

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	creds   CredentialStore
	limiter *rate.Limiter
	log     logging.Logger

	// refreshMu serialises token refreshes.
	refreshMu sync.Mutex

	newRequestID func() string
}

// requestFunc builds a fresh request. Authenticated calls may be replayed,
// so bodies must be recreated on every call.
type requestFunc func(ctx context.Context) (*http.Request, error)

func NewHTTPClient(baseURL string, creds CredentialStore, opts Options) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q is not absolute", baseURL)
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		creds:        creds,
		limiter:      newLimiter(opts.RequestsPerSecond),
		log:          log.With("component", "http-client"),
		newRequestID: func() string { return uuid.NewString() },
	}, nil
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), int(math.Max(1, math.Ceil(rps))))
}

func (c *HTTPClient) endpoint(path string) string {
	return c.baseURL.String() + path
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// send performs one round trip under the rate limiter.
func (c *HTTPClient) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	id := c.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, id)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Debug(ctx, "request failed", "method", req.Method, "path", req.URL.Path, "request_id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", id,
		"duration", time.Since(start),
	)
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, build requestFunc) (*http.Response, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, req)
}

func (c *HTTPClient) sendWithToken(ctx context.Context, build requestFunc, token string) (*http.Response, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return c.send(ctx, req)
}

// doAuthorized sends an authenticated request. On 401 it refreshes the
// session once and replays the request. A replay rejected with 401 or 422
// ends the session.
func (c *HTTPClient) doAuthorized(ctx context.Context, build requestFunc) (*http.Response, error) {
	access, _, err := c.creds.Tokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if access == "" {
		return nil, ErrNotLoggedIn
	}

	resp, err := c.sendWithToken(ctx, build, access)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		discard(resp)
		c.log.Info(ctx, "access token rejected, refreshing")

		fresh, err := c.refreshAfter(ctx, access)
		if err != nil {
			return nil, err
		}
		resp, err = c.sendWithToken(ctx, build, fresh)
		if err != nil {
			return nil, err
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			apiErr := readAPIError(resp)
			c.log.Warn(ctx, "refreshed token rejected, ending session")
			c.clearCredentials(ctx)
			return nil, fmt.Errorf("%w: %w", ErrSessionExpired, apiErr)
		case http.StatusUnprocessableEntity:
			return nil, c.rejectMalformed(ctx, resp)
		}
		return resp, nil

	case http.StatusUnprocessableEntity:
		return nil, c.rejectMalformed(ctx, resp)
	}

	return resp, nil
}

func (c *HTTPClient) rejectMalformed(ctx context.Context, resp *http.Response) error {
	apiErr := readAPIError(resp)
	c.clearCredentials(ctx)
	return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
}

// refreshAfter obtains an access token newer than stale. If another caller
// already refreshed while we waited for the lock, its token is reused.
func (c *HTTPClient) refreshAfter(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	access, refresh, err := c.creds.Tokens(ctx)
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}
	if access != "" && access != stale {
		return access, nil
	}

	pair, err := c.refreshLocked(ctx, refresh)
	if err != nil {
		return "", err
	}
	return pair.AccessToken, nil
}

// Refresh exchanges the stored refresh token for a new pair and stores it.
func (c *HTTPClient) Refresh(ctx context.Context) (models.TokenPair, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	_, refresh, err := c.creds.Tokens(ctx)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("read credentials: %w", err)
	}
	return c.refreshLocked(ctx, refresh)
}

// refreshLocked must be called with refreshMu held. Any failed refresh
// clears the stored credentials, unless the caller's context was cancelled.
func (c *HTTPClient) refreshLocked(ctx context.Context, refresh string) (models.TokenPair, error) {
	if refresh == "" {
		c.clearCredentials(ctx)
		return models.TokenPair{}, ErrSessionExpired
	}

	pair, err := c.requestRefresh(ctx, refresh)
	if err != nil {
		if ctx.Err() != nil {
			return models.TokenPair{}, ctx.Err()
		}
		c.log.Warn(ctx, "token refresh failed", "error", err)
		c.clearCredentials(ctx)
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	if pair.RefreshToken == "" {
		pair.RefreshToken = refresh
	}
	if err := c.creds.SaveTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return models.TokenPair{}, fmt.Errorf("store refreshed credentials: %w", err)
	}
	c.log.Info(ctx, "session refreshed")
	return pair, nil
}

func (c *HTTPClient) requestRefresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	resp, err := c.sendWithToken(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, "/api/token/refresh", nil, "")
	}, refresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	var pair models.TokenPair
	if err := decodeJSON(resp, &pair); err != nil {
		return models.TokenPair{}, err
	}
	if pair.AccessToken == "" {
		return models.TokenPair{}, fmt.Errorf("%w: refresh returned no access token", ErrBadResponse)
	}
	return pair, nil
}

func (c *HTTPClient) clearCredentials(ctx context.Context) {
	if err := c.creds.ClearTokens(context.WithoutCancel(ctx)); err != nil {
		c.log.Error(ctx, "failed to clear credentials", "error", err)
	}
}

// decodeJSON closes resp. Non-2xx responses become *APIError; v may be nil
// to ignore a successful body.
func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return nil
}

type errorBody struct {
	Msg     string `json:"msg"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// readAPIError consumes and closes the body of a failed response.
func readAPIError(resp *http.Response) *APIError {
	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorBody
	if json.Unmarshal(data, &body) == nil {
		for _, m := range []string{body.Msg, body.Error, body.Message} {
			if m = strings.TrimSpace(m); m != "" {
				apiErr.Message = m
				break
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if apiErr.Message == "" {
		apiErr.Message = "request failed"
	}
	return apiErr
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}

var _ Client = (*HTTPClient)(nil)

