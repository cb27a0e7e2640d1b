package tokenx

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func segment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestIsValid_SegmentCount(t *testing.T) {
	now := time.Now()
	for _, tok := range []string{"", "abc", "a.b", "a.b.c.d", "...."} {
		assert.False(t, IsValid(tok, now), "token %q", tok)
	}
}

func TestIsValid_Expiry(t *testing.T) {
	now := time.Now()

	future := signed(t, jwt.MapClaims{"sub": "7", "exp": now.Add(time.Hour).Unix()})
	past := signed(t, jwt.MapClaims{"sub": "7", "exp": now.Add(-time.Minute).Unix()})

	assert.True(t, IsValid(future, now))
	assert.False(t, IsValid(past, now))
}

func TestIsValid_ExpiryIsStrict(t *testing.T) {
	exp := time.Unix(1_900_000_000, 0)
	tok := signed(t, jwt.MapClaims{"exp": exp.Unix()})

	assert.False(t, IsValid(tok, exp))
	assert.True(t, IsValid(tok, exp.Add(-time.Second)))
}

func TestIsValid_MalformedPayloads(t *testing.T) {
	now := time.Now()
	header := segment(`{"alg":"HS256","typ":"JWT"}`)

	tests := []struct {
		name  string
		token string
	}{
		{"bad base64", header + ".@@@.sig"},
		{"not json", header + "." + segment("hello") + ".sig"},
		{"missing exp", header + "." + segment(`{"sub":"1"}`) + ".sig"},
		{"string exp", header + "." + segment(`{"exp":"tomorrow"}`) + ".sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsValid(tt.token, now))
		})
	}
}

func TestDecode_IgnoresSignature(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signed(t, jwt.MapClaims{"sub": "alice", "exp": exp.Unix()})
	tampered := tok[:len(tok)-4] + "AAAA"

	c, err := Decode(tampered)
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Subject)
	assert.True(t, c.ExpiresAt.Equal(exp))
}

func TestDecode_HeaderWithoutAlg(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	tok := segment(`{"typ":"JWT"}`) + "." + segment(`{"sub":3,"exp":`+strconv.FormatInt(exp, 10)+`}`) + "."

	c, err := Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "3", c.Subject)
	assert.True(t, IsValid(tok, time.Now()))
}

func TestDecode_UnreadableHeaderStillYieldsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	payload := segment(`{"sub":"alice","exp":` + strconv.FormatInt(exp.Unix(), 10) + `}`)

	for _, header := range []string{"###", segment("not json")} {
		tok := header + "." + payload + ".sig"

		c, err := Decode(tok)
		require.NoError(t, err, "header %q", header)
		assert.Equal(t, "alice", c.Subject)
		assert.True(t, c.ExpiresAt.Equal(exp))
		assert.True(t, IsValid(tok, time.Now()))
	}

	_, err := Decode("###.@@@.sig")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecode_NumericSubject(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"sub": 42, "exp": time.Now().Add(time.Hour).Unix()})

	c, err := Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", c.Subject)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode("nope")
	require.ErrorIs(t, err, ErrMalformed)

	header := segment(`{"alg":"HS256"}`)
	_, err = Decode(header + "." + segment(`{"sub":"1"}`) + ".x")
	require.ErrorIs(t, err, ErrNoExpiry)
}
