package middleware

import (
	"context"
	"strings"

	"github.com/MakMD/floor-boss-work-sub000/pkg/contextkeys"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/service"
	"github.com/MakMD/floor-boss-work-sub000/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RoleResolver returns the current role of a worker. The auth middleware uses
// it so role changes take effect without waiting for token expiry.
type RoleResolver interface {
	ResolveRole(ctx context.Context, workerID string) (string, error)
}

type AuthMiddleware struct {
	jwtService   service.JWTService
	roleResolver RoleResolver
	logger       *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, roleResolver RoleResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtSvc,
		roleResolver: roleResolver,
		logger:       logger,
	}
}

func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: empty Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: malformed Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: refresh token used for access")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		role := claims.Role
		if m.roleResolver != nil {
			if resolved, err := m.roleResolver.ResolveRole(c.Request().Context(), claims.UserID); err == nil && resolved != "" {
				role = resolved
			} else if err != nil {
				m.logger.Warn("AuthMiddleware: role lookup failed, falling back to token role",
					zap.String("workerID", claims.UserID), zap.Error(err))
			}
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
