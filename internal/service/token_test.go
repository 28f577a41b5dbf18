package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestInspectToken(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := signedToken(t, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})

	info := InspectToken(tok)
	assert.True(t, info.IsJWT)
	assert.Equal(t, "u1", info.Subject)
	assert.True(t, exp.Equal(info.ExpiresAt))
}

func TestInspectToken_Opaque(t *testing.T) {
	assert.False(t, InspectToken("t1").IsJWT)
	assert.False(t, InspectToken("a.b.c").IsJWT)
	assert.False(t, InspectToken("").IsJWT)
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	past := signedToken(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(-time.Minute).Unix()})
	future := signedToken(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(time.Hour).Unix()})
	noExp := signedToken(t, jwt.MapClaims{"sub": "u1"})

	assert.True(t, TokenExpired(past, now))
	assert.False(t, TokenExpired(future, now))
	assert.False(t, TokenExpired(noExp, now))
	assert.False(t, TokenExpired("opaque-token", now))
}
