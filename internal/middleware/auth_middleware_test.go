package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	panic("not implemented in mock")
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	panic("not implemented in mock")
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthClaims), args.Error(1)
}

func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	panic("not implemented in mock")
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	panic("not implemented in mock")
}

func newProtectedApp(authSvc *MockAuthService, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handlers := append([]fiber.Handler{middleware.Protected(authSvc)}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		p, ok := middleware.CurrentUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(p.UserID + ":" + string(p.Role))
	})
	app.Get("/test", handlers...)
	return app
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(m *MockAuthService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "No Auth Header",
			authHeader:     "",
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: fiber.StatusUnauthorized,
			expectedBody:   "MISSING_AUTH_HEADER",
		},
		{
			name:           "Wrong Scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: fiber.StatusUnauthorized,
			expectedBody:   "INVALID_AUTH_SCHEME",
		},
		{
			name:       "Valid Access Token",
			authHeader: "Bearer good",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateJWT", mock.Anything, "good").
					Return(&dto.AuthClaims{UserID: "user123", Role: "hr", TokenType: "access"}, nil)
			},
			expectedStatus: fiber.StatusOK,
			expectedBody:   "user123:hr",
		},
		{
			name:       "Invalid Token",
			authHeader: "Bearer bad",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateJWT", mock.Anything, "bad").Return(nil, errors.New("token is expired"))
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedBody:   "INVALID_TOKEN",
		},
		{
			name:       "Refresh Token Used As Access",
			authHeader: "Bearer refresh",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateJWT", mock.Anything, "refresh").
					Return(&dto.AuthClaims{UserID: "user123", Role: "hr", TokenType: "refresh"}, nil)
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedBody:   "INVALID_TOKEN_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := new(MockAuthService)
			tt.setupMock(authSvc)
			app := newProtectedApp(authSvc)

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Contains(t, string(body), tt.expectedBody)
			authSvc.AssertExpectations(t)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		role           string
		permission     domain.Permission
		expectedStatus int
	}{
		{role: "admin", permission: domain.PermManageUsers, expectedStatus: fiber.StatusOK},
		{role: "hr", permission: domain.PermManageUsers, expectedStatus: fiber.StatusForbidden},
		{role: "hr", permission: domain.PermManageTraining, expectedStatus: fiber.StatusOK},
		{role: "employee", permission: domain.PermViewTraining, expectedStatus: fiber.StatusOK},
		{role: "employee", permission: domain.PermManageRecruitment, expectedStatus: fiber.StatusForbidden},
		{role: "candidate", permission: domain.PermViewJobs, expectedStatus: fiber.StatusOK},
		{role: "candidate", permission: domain.PermViewTraining, expectedStatus: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			authSvc := new(MockAuthService)
			authSvc.On("ValidateJWT", mock.Anything, "tok").
				Return(&dto.AuthClaims{UserID: "u1", Role: tt.role, TokenType: "access"}, nil)
			app := newProtectedApp(authSvc, middleware.RequirePermission(tt.permission))

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(middleware.AuthorizationHeader, "Bearer tok")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("ValidateJWT", mock.Anything, "admin").
		Return(&dto.AuthClaims{UserID: "u1", Role: "admin", TokenType: "access"}, nil)
	authSvc.On("ValidateJWT", mock.Anything, "employee").
		Return(&dto.AuthClaims{UserID: "u2", Role: "employee", TokenType: "access"}, nil)
	app := newProtectedApp(authSvc, middleware.RequireRoles(domain.RoleAdmin, domain.RoleHR))

	for token, status := range map[string]int{"admin": fiber.StatusOK, "employee": fiber.StatusForbidden} {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(middleware.AuthorizationHeader, "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, token)
	}
}

func TestGuardWithoutProtected(t *testing.T) {
	app := fiber.New()
	app.Get("/test", middleware.RequirePermission(domain.PermViewJobs), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
