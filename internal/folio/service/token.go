package service

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
)

// TokenService issues and verifies the stateless bearer tokens. There is no
// refresh flow and no revocation list: a token is good until it expires.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
	Now      func() time.Time // defaults to time.Now
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Issue returns a signed token for userID and the moment it expires.
func (s *TokenService) Issue(userID string) (string, time.Time, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims := jwtx.NewClaims(userID, s.Issuer, ttl, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify returns the user id the token was issued to. Expiry is reported as
// ErrTokenExpired; every other failure is ErrInvalidToken.
func (s *TokenService) Verify(token string) (string, error) {
	claims, err := s.Verifier.Verify(token)
	switch {
	case err == nil:
		return claims.Subject, nil
	case errors.Is(err, jwtx.ErrExpired):
		return "", ErrTokenExpired
	default:
		return "", ErrInvalidToken
	}
}
