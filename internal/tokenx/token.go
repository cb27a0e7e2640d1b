// Package tokenx inspects bearer credentials issued by the MadHelp backend.
//
// Tokens are treated as opaque JWTs: the payload segment is decoded and its
// "exp" and "sub" claims are read, but the signature is never verified. The
// result is a liveness hint for the client only; the backend remains the
// authority on whether a credential is accepted.
package tokenx

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed = errors.New("malformed token")
	ErrNoExpiry  = errors.New("token has no expiry")
)

// Claims is the subset of the token payload the client cares about.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the claims are no longer live at now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

var parser = jwt.NewParser()

// Decode extracts the claims from token without verifying its signature.
func Decode(token string) (Claims, error) {
	if strings.Count(token, ".") != 2 {
		return Claims{}, ErrMalformed
	}

	mc := jwt.MapClaims{}
	// ParseUnverified decodes the payload before it looks up the signing
	// method, so an unknown or missing "alg" still leaves usable claims.
	if _, _, err := parser.ParseUnverified(token, mc); err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		// Only the payload matters here; a broken header is not fatal.
		mc, err = decodePayload(token)
		if err != nil {
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if exp == nil {
		return Claims{}, ErrNoExpiry
	}

	return Claims{Subject: subject(mc["sub"]), ExpiresAt: exp.Time}, nil
}

func decodePayload(token string) (jwt.MapClaims, error) {
	seg := strings.Split(token, ".")[1]
	raw, err := parser.DecodeSegment(seg)
	if err != nil {
		return nil, err
	}
	mc := jwt.MapClaims{}
	if err := json.Unmarshal(raw, &mc); err != nil {
		return nil, err
	}
	return mc, nil
}

// IsValid reports whether token decodes and expires strictly after now.
// It never fails: any malformed input yields false.
func IsValid(token string, now time.Time) bool {
	c, err := Decode(token)
	if err != nil {
		return false
	}
	return !c.Expired(now)
}

// subject accepts both string and numeric "sub" values; older backend
// builds issue integer user ids.
func subject(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
