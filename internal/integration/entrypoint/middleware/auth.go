// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/application/adapter"
	domainerror "github.com/bookkeeping/backend/internal/domain/error"
	"github.com/bookkeeping/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// CompanyIDKey is the context key for the tenant of the request.
	CompanyIDKey ContextKey = "company_id"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		// Check Bearer prefix
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		// Extract token
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		// Validate token
		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			response := dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			}
			switch {
			case errors.Is(err, domainerror.ErrExpiredToken):
				response.Code = string(domainerror.ErrCodeExpiredToken)
			case errors.Is(err, domainerror.ErrMissingTenant):
				response.Error = "Token is not bound to a company"
				response.Code = string(domainerror.ErrCodeMissingTenant)
			}
			c.JSON(http.StatusUnauthorized, response)
			c.Abort()
			return
		}

		// Store tenant info in context
		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(CompanyIDKey), claims.CompanyID)

		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetCompanyIDFromContext extracts the company ID from the Gin context.
func GetCompanyIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	companyID, exists := c.Get(string(CompanyIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := companyID.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
