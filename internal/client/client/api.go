package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
)

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, "/", nil, "")
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

func (c *HTTPClient) Signup(ctx context.Context, in models.SignupRequest) (models.AuthResult, error) {
	body, contentType, err := signupForm(in)
	if err != nil {
		return models.AuthResult{}, err
	}

	resp, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, "/api/signup", bytes.NewReader(body), contentType)
	})
	if err != nil {
		return models.AuthResult{}, err
	}

	var out models.AuthResult
	if err := decodeJSON(resp, &out); err != nil {
		return models.AuthResult{}, err
	}
	return out, nil
}

// signupForm renders the multipart body: text fields first, then cv and
// dars1..dars4 file parts.
func signupForm(in models.SignupRequest) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"username", in.Username},
		{"email", in.Email},
		{"password", in.Password},
		{"confirm_password", in.ConfirmPassword},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := attachPDF(w, "cv", in.CVPath); err != nil {
		return nil, "", err
	}
	for i, p := range in.DARSPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if err := attachPDF(w, fmt.Sprintf("dars%d", i+1), p); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func attachPDF(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filepath.Base(path)))
	h.Set("Content-Type", "application/pdf")

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %s: %w", field, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	form := url.Values{"email": {email}, "password": {password}}.Encode()

	resp, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, "/api/login", strings.NewReader(form), "application/x-www-form-urlencoded")
	})
	if err != nil {
		return models.AuthResult{}, err
	}

	var out models.AuthResult
	if err := decodeJSON(resp, &out); err != nil {
		return models.AuthResult{}, err
	}
	if out.Access() == "" {
		return models.AuthResult{}, fmt.Errorf("%w: login returned no token", ErrBadResponse)
	}
	return out, nil
}

func (c *HTTPClient) GetAccount(ctx context.Context) (models.Account, error) {
	resp, err := c.doAuthorized(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, "/api/user/profile", nil, "")
	})
	if err != nil {
		return models.Account{}, err
	}

	var out models.Account
	if err := decodeJSON(resp, &out); err != nil {
		return models.Account{}, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, username, email string) (models.Profile, error) {
	payload, err := json.Marshal(map[string]string{"username": username, "email": email})
	if err != nil {
		return models.Profile{}, err
	}

	resp, err := c.doAuthorized(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPut, "/api/user/profile", bytes.NewReader(payload), "application/json")
	})
	if err != nil {
		return models.Profile{}, err
	}

	var out struct {
		Profile *models.Profile `json:"profile"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return models.Profile{}, err
	}
	if out.Profile == nil {
		return models.Profile{Username: username, Email: email}, nil
	}
	return *out.Profile, nil
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, current, next string) error {
	payload, err := json.Marshal(models.PasswordChange{Current: current, New: next})
	if err != nil {
		return err
	}

	resp, err := c.doAuthorized(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPut, "/api/user/password", bytes.NewReader(payload), "application/json")
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// ListFaculty accepts either a bare array or {"faculty": [...]}.
func (c *HTTPClient) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	resp, err := c.doAuthorized(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, "/api/faculty", nil, "")
	})
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw); err != nil {
		return nil, err
	}

	var out []models.Faculty
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &out)
	} else {
		var wrapped struct {
			Faculty []models.Faculty `json:"faculty"`
		}
		err = json.Unmarshal(trimmed, &wrapped)
		out = wrapped.Faculty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return out, nil
}

// DownloadFile streams /uploads/<name> into w and returns the byte count.
func (c *HTTPClient) DownloadFile(ctx context.Context, name string, w io.Writer) (int64, error) {
	resp, err := c.doAuthorized(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, "/uploads/"+url.PathEscape(name), nil, "")
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "*/*")
		return req, nil
	})
	if err != nil {
		return 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, readAPIError(resp)
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("download %s: %w", name, err)
	}
	return n, nil
}
