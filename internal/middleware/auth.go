package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserIDKey      = "user_id"
	EmailKey       = "email"
	DisplayNameKey = "display_name"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// Identity is the authenticated caller, as established by the auth token.
// The service layer trusts it unconditionally.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
}

// Claims are the JWT claims issued by the auth flow.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// AuthMiddleware validates bearer tokens locally with an HMAC secret.
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(secret string) (*AuthMiddleware, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &AuthMiddleware{secret: []byte(secret)}, nil
}

// RequireAuth returns a Gin middleware that validates the bearer token and
// stores the caller identity in the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, BearerPrefix)

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(DisplayNameKey, claims.Name)

		c.Next()
	}
}

// GetIdentity extracts the caller identity from the Gin context.
func GetIdentity(c *gin.Context) Identity {
	return Identity{
		UserID:      getString(c, UserIDKey),
		Email:       getString(c, EmailKey),
		DisplayName: getString(c, DisplayNameKey),
	}
}

func getString(c *gin.Context, key string) string {
	if v, exists := c.Get(key); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
