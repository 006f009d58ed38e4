package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Payphone-Digital/catalog-api/internal/constants"
	"github.com/Payphone-Digital/catalog-api/internal/service"
	ctxutil "github.com/Payphone-Digital/catalog-api/pkg/context"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JWTMiddleware struct {
	jwtService *service.JWTService
}

func NewJWTMiddleware(jwtService *service.JWTService) *JWTMiddleware {
	return &JWTMiddleware{jwtService: jwtService}
}

// RequireAuth validates the bearer token and sets user info in context
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			logger.GetLogger().Warn("Missing Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			unauthorized(c)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.GetLogger().Warn("Invalid Authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			unauthorized(c)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			unauthorized(c)
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			logger.GetLogger().Warn("Invalid user ID in token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			unauthorized(c)
			return
		}
		userID := uint(userIDFloat)

		email, _ := claims["email"].(string)

		ctx := c.Request.Context()
		ctx = ctxutil.WithUserID(ctx, userID)
		ctx = context.WithValue(ctx, ctxutil.UserEmailKey, email)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", userID)
		c.Set("email", email)

		c.Next()
	}
}

// OptionalAuth checks for a token but doesn't require it
func (m *JWTMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			c.Next()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			c.Next()
			return
		}

		if userIDFloat, ok := claims["user_id"].(float64); ok {
			ctx := ctxutil.WithUserID(c.Request.Context(), uint(userIDFloat))
			if email, ok := claims["email"].(string); ok {
				ctx = context.WithValue(ctx, ctxutil.UserEmailKey, email)
			}
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
	c.Abort()
}
