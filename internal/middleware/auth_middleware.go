package middleware

import (
	"net/http"
	"strings"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/errors"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for operator information
const (
	OperatorIDKey    = "operator_id"
	OperatorEmailKey = "operator_email"
	OperatorRoleKey  = "operator_role"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates JWT token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "로그인이 필요합니다")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "인증 형식이 올바르지 않습니다")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			// 토큰 만료 에러인 경우 명확히 표시
			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "로그인이 만료되었습니다")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "유효하지 않은 인증 토큰입니다")
			}
			c.Abort()
			return
		}

		c.Set(OperatorIDKey, claims.UserID)
		c.Set(OperatorEmailKey, claims.Email)
		c.Set(OperatorRoleKey, model.OperatorRole(claims.Role))

		log.Debug("Operator authenticated successfully", map[string]interface{}{
			"operator_id": claims.UserID,
			"email":       claims.Email,
			"role":        claims.Role,
		})

		c.Next()
	}
}

// RequireRole checks if the operator has one of the given roles
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		operatorRole, exists := c.Get(OperatorRoleKey)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Forbidden(c, "권한 정보를 찾을 수 없습니다")
			c.Abort()
			return
		}

		role := operatorRole.(model.OperatorRole)
		operatorID, _ := GetOperatorID(c)

		for _, r := range roles {
			if role == model.OperatorRole(r) {
				c.Next()
				return
			}
		}

		log.Warn("Insufficient permissions", map[string]interface{}{
			"operator_id":    operatorID,
			"operator_role":  role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "접근 권한이 없습니다")
		c.Abort()
	}
}

// RequireAdmin shortcut for admin-only endpoints
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(string(model.RoleAdmin))
}

// GetOperatorID extracts operator ID from context
func GetOperatorID(c *gin.Context) (uint, bool) {
	operatorID, exists := c.Get(OperatorIDKey)
	if !exists {
		return 0, false
	}
	return operatorID.(uint), true
}

// GetOperatorRole extracts operator role from context
func GetOperatorRole(c *gin.Context) (model.OperatorRole, bool) {
	role, exists := c.Get(OperatorRoleKey)
	if !exists {
		return "", false
	}
	return role.(model.OperatorRole), true
}
