package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a bearer token without verifying it.
// The API stays the authority; this only lets callers skip tokens that are
// certainly dead.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
	// IsJWT is false for opaque tokens; the other fields are then empty.
	IsJWT bool
}

// InspectToken reads the unverified claims of a JWT bearer token.
func InspectToken(raw string) TokenInfo {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ".") != 2 {
		return TokenInfo{}
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return TokenInfo{}
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return TokenInfo{}
	}

	info := TokenInfo{IsJWT: true}
	if sub, subErr := claims.GetSubject(); subErr == nil {
		info.Subject = sub
	}
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}

// TokenExpired reports whether raw is a JWT whose exp claim is at or before now.
// Opaque tokens and JWTs without exp are never considered expired here.
func TokenExpired(raw string, now time.Time) bool {
	info := InspectToken(raw)
	return info.IsJWT && !info.ExpiresAt.IsZero() && !now.Before(info.ExpiresAt)
}
