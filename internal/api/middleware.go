package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Constants for context keys
const (
	ContextPrincipalKey = "principal"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. On success
// it stores the verified Principal in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &service.AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		if !token.Valid || claims.AdminID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextPrincipalKey, service.Principal{
			AdminID:  claims.AdminID,
			Username: claims.Username,
			Role:     claims.Role,
		})

		c.Next()
	}
}

// RoleMiddleware creates middleware to check if the principal has one of the
// required roles. Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := getPrincipalFromContext(c)
		if err != nil {
			// AuthMiddleware did not run; a wiring error, not a client one.
			abortWithError(c, http.StatusInternalServerError, "Principal not found in context")
			return
		}

		for _, role := range allowedRoles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: role '%s' does not have permission", principal.Role))
	}
}

// getPrincipalFromContext returns the verified principal set by AuthMiddleware.
func getPrincipalFromContext(c *gin.Context) (service.Principal, error) {
	raw, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return service.Principal{}, errors.New("principal not found in context")
	}
	principal, ok := raw.(service.Principal)
	if !ok {
		return service.Principal{}, errors.New("invalid principal type in context")
	}
	return principal, nil
}
