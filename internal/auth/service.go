package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"time"

	"github.com/foracure/backend/internal/telemetry/tracing"
	"github.com/foracure/backend/pkg"

	"go.opentelemetry.io/otel/codes"
)

type Service struct {
	admin  *Admin
	tokens *TokenService
	// ability to inject the password check (for unit tests)
	CheckPasswordFunc func(password, hash string) bool
}

func NewAuthService(admin *Admin, tokens *TokenService) *Service {
	return &Service{
		admin:             admin,
		tokens:            tokens,
		CheckPasswordFunc: pkg.CheckPasswordHash,
	}
}

// Login checks the credentials and issues a new session token.
// Both checks always run, in the same order, so neither the response
// nor its timing tells which one failed.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "authService.login")
	defer span.End()

	validUsername := constantTimeEqual(creds.Username, s.admin.Username)
	validPassword := s.CheckPasswordFunc(creds.Password, s.admin.PasswordHash)
	if !validUsername || !validPassword {
		span.SetStatus(codes.Error, "invalid-credentials")
		return "", ErrUnauthorized
	}

	token, err := s.tokens.Issue()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "issue-token")
		return "", err
	}

	span.SetStatus(codes.Ok, "ok")
	return token, nil
}

func (s *Service) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

// constantTimeEqual compares digests so that differing lengths take the same time too
func constantTimeEqual(a, b string) bool {
	aSum := sha256.Sum256([]byte(a))
	bSum := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(aSum[:], bSum[:]) == 1
}
