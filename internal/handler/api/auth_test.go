//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"invoice-dashboard/internal/handler/api"
	resdto "invoice-dashboard/internal/handler/dto/response"
	"invoice-dashboard/internal/pkg/config"
	"invoice-dashboard/internal/pkg/jwt"
	"invoice-dashboard/internal/usecase/commands"
	"invoice-dashboard/internal/usecase/queries"
	"invoice-dashboard/tests/common/builder"
	"invoice-dashboard/tests/common/httptest"
	"invoice-dashboard/tests/common/testutil"
	commandsmock "invoice-dashboard/tests/mock/commands"
	queriesmock "invoice-dashboard/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	currentUser  uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 720*time.Hour)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, jwtService, config.NewTestConfig())
	s.currentUser = uuid.New()

	s.router.POST("/api/auth/login", s.handler.Login)
	s.router.POST("/api/auth/refresh", s.handler.Refresh)
	s.router.POST("/api/auth/logout", s.handler.Logout)
	s.router.GET("/api/auth/me", func(c *gin.Context) {
		// stand-in for the auth middleware
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.currentUser)
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	path := "/api/auth/login"

	ub := builder.NewUserBuilder()
	reqBody := builder.NewAuthBuilder().BuildDTO()
	credentials, err := ub.BuildCredentials()
	s.Require().NoError(err)
	returnUser := ub.BuildView()

	loginResult := &commands.LoginResult{
		UserID: returnUser.ID,
		TokenPair: &commands.TokenPair{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
		},
	}

	s.Run("success: 200 with tokens, user and session cookies", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), credentials).
			Return(loginResult, nil).Times(1)
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).
			Return(returnUser, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("test-access-token", response.AccessToken)
		s.Equal(returnUser.Email, response.User.Email)
		s.NotNil(httptest.ExtractCookie(rec, "access_token"))
		s.NotNil(httptest.ExtractCookie(rec, "refresh_token"))
	})

	s.Run("error: 400 on malformed submissions", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing email", mutate: testutil.Field("email", nil)},
			{name: "missing password", mutate: testutil.Field("password", nil)},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email")},
			{name: "short password", mutate: testutil.Field("password", "12345")},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: wrong credentials get the fixed message", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), credentials).
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, api.MsgInvalidCredentials)
	})

	s.Run("error: other recognized auth failures get the generic message", func() {
		for _, authErr := range []error{
			commands.ErrUserInactive,
			commands.ErrAuthenticationFailed,
			commands.ErrTokenGeneration,
		} {
			s.mockCommands.EXPECT().Login(gomock.Any(), credentials).
				Return(nil, authErr).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, api.MsgAuthGenericError)
		}
	})

	s.Run("error: unrecognized failures are re-raised, not mapped", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), credentials).
			Return(nil, errors.New("connection refused")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody, "")
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.NotContains(rec.Body.String(), api.MsgInvalidCredentials)
		s.NotContains(rec.Body.String(), api.MsgAuthGenericError)
	})
}

func (s *AuthHandlerTestSuite) TestRefresh() {
	path := "/api/auth/refresh"

	s.Run("success: rotates the pair from the request body", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "old-refresh-token").
			Return(&commands.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path,
			map[string]any{"refresh_token": "old-refresh-token"}, "")

		var response resdto.RefreshResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("new-access", response.AccessToken)
		s.Equal("new-refresh", response.RefreshToken)
	})

	s.Run("error: 401 without any token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Refresh token required")
	})

	s.Run("error: 401 with the generic message on validation failure", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "stale").
			Return(nil, commands.ErrTokenValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path,
			map[string]any{"refresh_token": "stale"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, api.MsgAuthGenericError)
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: 204 and cleared cookies", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/logout", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)

		access := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(access)
		s.Empty(access.Value)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	path := "/api/auth/me"

	s.Run("success: returns the current user", func() {
		view := builder.NewUserBuilder().BuildView()
		view.ID = s.currentUser
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.currentUser).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")

		var response queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.currentUser, response.ID)
	})

	s.Run("error: 401 without credentials", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "User not authenticated")
	})

	s.Run("error: 404 when the user row is gone", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.currentUser).
			Return(nil, queries.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})

	s.Run("error: 403 when the account is inactive", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.currentUser).
			Return(nil, queries.ErrUserInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Account is inactive")
	})
}
