package middleware

import (
	"fmt"
	"strings"

	"techcom/internal/domain"
	"techcom/internal/logger"
	"techcom/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	RoleKey             = "role"
)

// Principal is the authenticated caller of the current request.
type Principal struct {
	UserID string
	Role   domain.Role
}

// CurrentUser reads the principal stored by Protected.
func CurrentUser(c *fiber.Ctx) (Principal, bool) {
	userID, ok := c.Locals(UserIDKey).(string)
	if !ok || userID == "" {
		return Principal{}, false
	}
	role, ok := c.Locals(RoleKey).(domain.Role)
	if !ok {
		return Principal{}, false
	}
	return Principal{UserID: userID, Role: role}, true
}

func reject(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
		Status:  status,
	})
}

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided AuthService and sets the user id and role in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return reject(c, fiber.StatusUnauthorized, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return reject(c, fiber.StatusUnauthorized, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return reject(c, fiber.StatusUnauthorized, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("JWT validation error", zap.Error(err), zap.String("path", c.Path()))
			return reject(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired")
		}

		if claims.TokenType != "access" {
			return reject(c, fiber.StatusUnauthorized, "INVALID_TOKEN_TYPE",
				fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType))
		}

		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			return reject(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Token carries an unknown role")
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(RoleKey, role)

		return c.Next()
	}
}

// RequirePermission allows the request only when the caller's role holds p.
// It must run after Protected.
func RequirePermission(p domain.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := CurrentUser(c)
		if !ok {
			return reject(c, fiber.StatusUnauthorized, string(domain.CodeUnauthorized), "Unauthorized: missing role information")
		}
		if !principal.Role.Can(p) {
			logger.Get().Info("Access denied",
				zap.String("userID", principal.UserID),
				zap.String("role", string(principal.Role)),
				zap.String("path", c.Path()),
			)
			return reject(c, fiber.StatusForbidden, string(domain.CodeForbidden), "You are not allowed to access this resource")
		}
		return c.Next()
	}
}

// RequireRoles allows the request only for the listed roles.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := CurrentUser(c)
		if !ok {
			return reject(c, fiber.StatusUnauthorized, string(domain.CodeUnauthorized), "Unauthorized: missing role information")
		}
		for _, r := range roles {
			if principal.Role == r {
				return c.Next()
			}
		}
		return reject(c, fiber.StatusForbidden, string(domain.CodeForbidden), "You are not allowed to access this resource")
	}
}
