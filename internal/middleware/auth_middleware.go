package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/pkg/apperrors"
	"github.com/rct/connect/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth rejects requests without a valid bearer token and stores the
// claims in the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			message := "Non autorisé"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				message = "Session expirée"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, models.Role(claims.Role))
		c.Next()
	}
}

// OptionalAuth stores the claims when a valid token is present and lets the
// request through either way. Read-only endpoints use it to personalize
// their responses (is_liked, viewed flags) for logged-in callers.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := m.authenticate(c); err == nil {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextEmail, claims.Email)
			c.Set(ContextRole, models.Role(claims.Role))
		}
		c.Next()
	}
}

// RequireRole runs after JWTAuth and rejects callers outside the allowed
// roles.
func (m *AuthMiddleware) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("Accès réservé"))
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil, err
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}

// CurrentUserID returns the authenticated user's ID, or "" for anonymous
// requests.
func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// CurrentRole returns the authenticated user's role, or "" for anonymous
// requests.
func CurrentRole(c *gin.Context) models.Role {
	if v, ok := c.Get(ContextRole); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}
