package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/pkg/auth"
)

// Context keys set by SessionRequired
const (
	ContextKeyRole      = "role"
	ContextKeyStudentID = "studentId"
)

// AuthMiddleware reads the role-selection token. It does not authenticate:
// the role inside the token is whatever the caller selected.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// SessionRequired validates the session token and stores role and student id in the context
func (m *AuthMiddleware) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Swagger UI and websocket clients cannot always set headers
		if authHeader == "" {
			if queryToken := c.Query("token"); queryToken != "" {
				authHeader = queryToken
			}
		}

		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Session required")
			errorDetail = errorDetail.WithDetails("Select a role via POST /api/v1/session first")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			details := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				details = "Token has expired"
			}
			status, code := ErrorStatus(err)
			errorDetail := dto.NewErrorDetail(code, "Session rejected").WithDetails(details)
			c.AbortWithStatusJSON(status, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyStudentID, claims.StudentID)
		c.Next()
	}
}

// RoleRequired allows the request through only for the listed roles
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}

	return func(c *gin.Context) {
		role, ok := RoleFrom(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Session required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if !slices.Contains(roles, role) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("Allowed roles: " + strings.Join(allowed, ", "))
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// RoleFrom returns the role stored by SessionRequired
func RoleFrom(c *gin.Context) (models.Role, bool) {
	v, exists := c.Get(ContextKeyRole)
	if !exists {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}

// StudentIDFrom returns the student id of a Student session
func StudentIDFrom(c *gin.Context) (string, bool) {
	id := c.GetString(ContextKeyStudentID)
	return id, id != ""
}
