package auth

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

var _ Checker = (*TokenService)(nil)

// Checker verifies session tokens presented by clients
type Checker interface {
	Verify(token string) (*Claims, error)
}

// TokenService issues and verifies stateless session tokens.
// There is no revocation list: a token stays valid until it expires.
type TokenService struct {
	codec *securecookie.SecureCookie
	ttl   time.Duration
	// ability to inject the clock (for unit tests)
	NowFunc func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	hashKey, err := deriveKey(secret, "session-token-hash", 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(secret, "session-token-block", 32)
	if err != nil {
		return nil, err
	}

	codec := securecookie.New(hashKey, blockKey).
		MaxAge(int(ttl.Seconds())).
		SetSerializer(securecookie.JSONEncoder{})

	return &TokenService{
		codec:   codec,
		ttl:     ttl,
		NowFunc: time.Now,
	}, nil
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Issue() (string, error) {
	now := s.NowFunc()
	claims := Claims{
		Role:      RoleAdmin,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	token, err := s.codec.Encode(CookieName, claims)
	if err != nil {
		return "", fmt.Errorf("encode session token: %w", err)
	}
	return token, nil
}

func (s *TokenService) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	var claims Claims
	if err := s.codec.Decode(CookieName, token, &claims); err != nil {
		return nil, fmt.Errorf("%w: decode token: %s", ErrUnauthorized, err)
	}

	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: unexpected role [%s]", ErrUnauthorized, claims.Role)
	}
	if !s.NowFunc().Before(claims.ExpiresAtTime()) {
		return nil, fmt.Errorf("%w: token expired at %s", ErrUnauthorized, claims.ExpiresAtTime())
	}

	return &claims, nil
}

func deriveKey(secret, purpose string, size int) ([]byte, error) {
	key := make([]byte, size)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}
