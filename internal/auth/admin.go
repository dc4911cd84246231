package auth

import (
	"errors"
	"time"
)

const (
	DefaultTTL = 8 * time.Hour
	RoleAdmin  = "admin"
)

// ErrUnauthorized is the only error callers see for failed logins and
// rejected tokens, whatever the actual reason was
var ErrUnauthorized = errors.New("unauthorized")

// Admin is the single admin identity, loaded once from the environment
type Admin struct {
	Username     string
	PasswordHash string
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Claims are embedded (signed and encrypted) in the session token
type Claims struct {
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func (c *Claims) ExpiresAtTime() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}
