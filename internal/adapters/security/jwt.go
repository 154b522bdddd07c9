// Package security resolves caller identities. The engine never sees a
// token; this adapter turns a bearer token into the verified subject that is
// threaded into every operation.
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/viralforge/marketplace/internal/ports"
)

// JWTVerifier validates HS256 tokens signed with a shared service secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

func (v *JWTVerifier) Verify(token string) (ports.CallerClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ports.CallerClaims{}, errors.New("invalid token")
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return ports.CallerClaims{}, errors.New("token has no subject")
	}
	return ports.CallerClaims{Subject: subject}, nil
}

// Sign issues a token for an identity. Used by tooling and tests; the
// service itself only verifies.
func (v *JWTVerifier) Sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(v.secret)
}
