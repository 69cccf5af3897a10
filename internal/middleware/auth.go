package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextUserEmail = "userEmail"
)

type identity struct {
	userID uint
	role   string
	email  string
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, code := parseBearer(c, cfg.JWTSecret)
		if code != "" {
			httperr.Unauthorized(c, code, "Please sign in to continue.")
			c.Abort()
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is sent and lets
// anonymous requests through untouched.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, code := parseBearer(c, cfg.JWTSecret); code == "" {
			setIdentity(c, id)
		}
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			httperr.Forbidden(c, "forbidden", "You do not have access to this resource.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func UserIDPtr(c *gin.Context) *uint {
	if id, ok := UserID(c); ok {
		return &id
	}
	return nil
}

func setIdentity(c *gin.Context, id identity) {
	c.Set(ContextUserID, id.userID)
	c.Set(ContextUserRole, id.role)
	c.Set(ContextUserEmail, id.email)
}

// parseBearer returns a non-empty error code when the request carries no
// usable token.
func parseBearer(c *gin.Context, secret string) (identity, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return identity{}, "missing_authorization_header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return identity{}, "invalid_authorization_header"
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return identity{}, "invalid_token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity{}, "invalid_token_claims"
	}

	userID, ok := claims["sub"].(float64)
	if !ok {
		return identity{}, "invalid_token_payload"
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	return identity{userID: uint(userID), role: role, email: email}, ""
}
