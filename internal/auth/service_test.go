package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	testUsername = "testuser"
	testPassword = "testpass"
)

func newTestAuthService(t *testing.T) *Service {
	t.Helper()

	// min cost keeps the tests fast, production hashes use cost 14
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(&Admin{
		Username:     testUsername,
		PasswordHash: string(hash),
	}, newTestTokenService(t, testSecret))
}

func TestAuthService_Login(t *testing.T) {
	authService := newTestAuthService(t)
	assert.Equal(t, DefaultTTL, authService.SessionTTL())

	token, err := authService.Login(context.Background(), Credentials{
		Username: testUsername,
		Password: testPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := authService.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestAuthService_Login_invalidCredentials(t *testing.T) {
	authService := newTestAuthService(t)

	for name, creds := range map[string]Credentials{
		"wrong password":  {Username: testUsername, Password: "invalid_pass"},
		"wrong username":  {Username: "someone", Password: testPassword},
		"both wrong":      {Username: "someone", Password: "invalid_pass"},
		"empty":           {},
		"username prefix": {Username: testUsername[:4], Password: testPassword},
	} {
		t.Run(name, func(t *testing.T) {
			token, err := authService.Login(context.Background(), creds)
			assert.Equal(t, ErrUnauthorized, err)
			assert.Empty(t, token)
		})
	}
}

func TestAuthService_Login_passwordAlwaysChecked(t *testing.T) {
	authService := newTestAuthService(t)

	checks := 0
	authService.CheckPasswordFunc = func(password, hash string) bool {
		checks++
		return false
	}

	_, err := authService.Login(context.Background(), Credentials{Username: "wrong", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = authService.Login(context.Background(), Credentials{Username: testUsername, Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, 2, checks)
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, constantTimeEqual("admin", "admin"))
	assert.False(t, constantTimeEqual("admin", "admin2"))
	assert.False(t, constantTimeEqual("", "admin"))
	assert.True(t, constantTimeEqual("", ""))
}
