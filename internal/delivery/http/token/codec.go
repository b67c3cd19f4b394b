// Package token signs and verifies the session cookie value. The cookie
// carries an HS256 JWT whose subject is a server-side session row id, so
// the token alone never authenticates anyone: every request still looks
// the session up.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cookie is the name of the session cookie.
const Cookie = "session_token"

type Codec struct {
	issuer     string
	signingKey []byte
	ttl        time.Duration
}

func NewCodec(issuer, signingKey string, ttl time.Duration) Codec {
	return Codec{
		issuer:     issuer,
		signingKey: []byte(signingKey),
		ttl:        ttl,
	}
}

func (c Codec) TTL() time.Duration {
	return c.ttl
}

func (c Codec) Sign(sessionID string) (string, error) {
	now := time.Now()
	unsigned := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	signed, err := unsigned.SignedString(c.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and returns the session id it carries.
func (c Codec) Parse(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return c.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
	)
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("session token carries no subject")
	}
	return claims.Subject, nil
}
