package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"plume/contexts/content-sharing/publishing-service/ports"
)

const defaultTTL = 24 * time.Hour

// JWT implements ports.TokenSource with HS256-signed tokens whose subject
// claim carries the account id.
type JWT struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWT(secret []byte, ttl time.Duration) JWT {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return JWT{Secret: secret, TTL: ttl}
}

func (j JWT) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
}

func (j JWT) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.New("token verification failed")
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token subject missing")
	}
	return claims.Subject, nil
}

var _ ports.TokenSource = JWT{}
