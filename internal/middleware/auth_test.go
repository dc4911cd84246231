package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foracure/backend/internal/auth"
	"github.com/foracure/backend/internal/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAdminGuard(t *testing.T) {
	testCases := []struct {
		name               string
		method             string
		token              string
		mockClaims         *auth.Claims
		mockErr            error
		expectedStatusCode int
		expectNextCalled   bool
	}{
		{
			name:               "MissingToken",
			method:             http.MethodPost,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ValidToken",
			method:             http.MethodPost,
			token:              "valid-token",
			mockClaims:         &auth.Claims{Role: auth.RoleAdmin},
			expectedStatusCode: http.StatusOK,
			expectNextCalled:   true,
		},
		{
			name:               "InvalidToken",
			method:             http.MethodDelete,
			token:              "invalid-token",
			mockErr:            auth.ErrUnauthorized,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ExpiredToken",
			method:             http.MethodPut,
			token:              "expired-token",
			mockErr:            errors.New("expired timestamp"),
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "PreflightWithoutToken",
			method:             http.MethodOptions,
			expectedStatusCode: http.StatusNoContent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockChecker := NewMocksessionChecker(ctrl)
			if tc.token != "" {
				mockChecker.EXPECT().
					Verify(tc.token).
					Return(tc.mockClaims, tc.mockErr).
					Times(1)
			}

			req := httptest.NewRequest(tc.method, "/news", nil)
			if tc.token != "" {
				req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tc.token})
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			rr := httptest.NewRecorder()
			middleware.AdminGuard(mockChecker)(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.Equal(t, tc.expectNextCalled, nextCalled)
			if tc.expectedStatusCode == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, rr.Body.String())
			}
		})
	}
}
