// Package jwtauth issues, validates, and revokes bearer tokens backing
// every protected route. Adapted from the teacher's
// internal/middleware/auth package: same HS256 + golang-jwt/jwt/v4
// shape, but extended with an explicit server-side revocation set,
// since a mock server's protected routes must 401 once logged out
// rather than silently mint a fresh cookie the way the shortener does.
package jwtauth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rawen554/mockhive/internal/apperr"
)

const tokenTTL = 24 * time.Hour

// Claims is the JWT payload: subject is the authenticated username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Service issues and validates tokens signed with a single shared
// secret, and tracks which issued tokens are still live.
type Service struct {
	secret []byte

	mu    sync.Mutex
	live  map[string]struct{}
}

// New creates a Service. If secret is empty, a random one is generated
// so the server still works with no config. The secret is fixed here:
// the [auth] jwt_secret key of a route TOML layer is parsed but not
// applied to the service.
func New(secret string) *Service {
	if secret == "" {
		secret = uuid.NewString()
	}
	return &Service{
		secret: []byte(secret),
		live:   make(map[string]struct{}),
	}
}

// Issue signs a token for username, valid for 24h, and records it live.
func (s *Service) Issue(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error signing jwt: %w", err)
	}

	s.mu.Lock()
	s.live[signed] = struct{}{}
	s.mu.Unlock()

	return signed, nil
}

// Validate verifies signature, expiry, and live-set membership,
// returning the claimed username.
func (s *Service) Validate(tokenString string) (string, error) {
	s.mu.Lock()
	_, isLive := s.live[tokenString]
	s.mu.Unlock()

	if !isLive {
		return "", apperr.ErrTokenInvalidExpired
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.mu.Lock()
			delete(s.live, tokenString)
			s.mu.Unlock()
		}
		return "", fmt.Errorf("%w: %v", apperr.ErrTokenInvalidExpired, err)
	}

	if claims.Username == "" {
		return "", apperr.ErrTokenInvalidExpired
	}

	return claims.Username, nil
}

// Revoke removes a token from the live set; validating it afterwards
// always fails even if signature and exp are still nominally good.
func (s *Service) Revoke(tokenString string) {
	s.mu.Lock()
	delete(s.live, tokenString)
	s.mu.Unlock()
}

// Clear empties the live-token set. The shutdown coordinator does not
// call it; the set is released with the process.
func (s *Service) Clear() {
	s.mu.Lock()
	s.live = make(map[string]struct{})
	s.mu.Unlock()
}
