// Package token issues and verifies the signed bearer tokens used to
// authenticate API requests. Tokens are self-contained: validity is a
// function of the signature and the embedded expiry only, with no
// server-side state.
package token

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed token lifetime.
const DefaultTTL = time.Hour

// ErrExpired is returned when a token's signature is valid but its
// expiry has passed.
var ErrExpired = errors.New("token expired")

// ErrInvalid is returned when a token cannot be verified for any other
// reason (bad signature, malformed payload, missing subject).
var ErrInvalid = errors.New("invalid token")

// Service signs and verifies tokens with a process-wide secret loaded
// once at startup.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token whose subject is the user's id,
// expiring ttl from now.
func (s *Service) Issue(userID int) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the signature and expiry and returns the embedded
// user id. No other claims are trusted.
func (s *Service) Verify(tokenString string) (int, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrInvalid
	}
	if !parsed.Valid {
		return 0, ErrInvalid
	}

	userID, err := strconv.Atoi(strings.TrimSpace(claims.Subject))
	if err != nil || userID < 1 {
		return 0, ErrInvalid
	}
	return userID, nil
}
