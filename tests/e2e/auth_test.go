//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"testing"

	"invoice-dashboard/internal/handler/api"
	resdto "invoice-dashboard/internal/handler/dto/response"
	"invoice-dashboard/tests/common/httptest"

	"github.com/stretchr/testify/suite"
)

type AuthE2ETestSuite struct {
	suite.Suite
	env *testEnv
}

func (s *AuthE2ETestSuite) SetupTest() {
	s.env = setupE2EEnvironment(s.T())
	createTestUser(s.T(), s.env.pool, "user@nextmail.com", "editor")
}

func TestAuthE2ESuite(t *testing.T) {
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) TestLogin() {
	path := "/api/auth/login"

	s.Run("valid credentials issue tokens and cookies", func() {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodPost, path,
			map[string]any{"email": "user@nextmail.com", "password": testPassword}, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotEmpty(response.AccessToken)
		s.NotEmpty(response.RefreshToken)
		s.Equal("user@nextmail.com", response.User.Email)
		s.NotNil(httptest.ExtractCookie(rec, "access_token"))

		var lastLogin any
		err := s.env.pool.QueryRow(context.Background(),
			"SELECT last_login FROM users WHERE email = $1", "user@nextmail.com").Scan(&lastLogin)
		s.Require().NoError(err)
		s.NotNil(lastLogin)
	})

	s.Run("wrong password gets the fixed credentials message", func() {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodPost, path,
			map[string]any{"email": "user@nextmail.com", "password": "wrong-password"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, api.MsgInvalidCredentials)
	})

	s.Run("unknown email is indistinguishable from a wrong password", func() {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodPost, path,
			map[string]any{"email": "nobody@nextmail.com", "password": testPassword}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, api.MsgInvalidCredentials)
	})

	s.Run("deactivated account gets the generic message", func() {
		createTestUser(s.T(), s.env.pool, "gone@nextmail.com", "viewer")
		_, err := s.env.pool.Exec(context.Background(),
			"UPDATE users SET is_active = false WHERE email = $1", "gone@nextmail.com")
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodPost, path,
			map[string]any{"email": "gone@nextmail.com", "password": testPassword}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, api.MsgAuthGenericError)
	})
}

func (s *AuthE2ETestSuite) TestSessionLifecycle() {
	login := func() resdto.LoginResponse {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodPost, "/api/auth/login",
			map[string]any{"email": "user@nextmail.com", "password": testPassword}, "")
		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		return response
	}

	s.Run("access token opens the dashboard", func() {
		session := login()
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodGet,
			"/dashboard/invoices", nil, session.AccessToken)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("refresh rotates the pair", func() {
		session := login()
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodPost, "/api/auth/refresh",
			map[string]any{"refresh_token": session.RefreshToken}, "")

		var response resdto.RefreshResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotEmpty(response.AccessToken)

		rec = httptest.PerformRequest(s.T(), s.env.router, http.MethodGet,
			"/api/auth/me", nil, response.AccessToken)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("a refresh token cannot be used as an access token", func() {
		session := login()
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodGet,
			"/dashboard/invoices", nil, session.RefreshToken)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("logout clears the session cookies", func() {
		session := login()
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodPost,
			"/api/auth/logout", nil, session.AccessToken)
		s.Equal(http.StatusNoContent, rec.Code)

		access := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(access)
		s.Empty(access.Value)
	})
}
