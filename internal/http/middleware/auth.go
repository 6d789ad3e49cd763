package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/InSantoshMahto/login-system/domain"
)

// UserDetailsKey is the gin context key the authenticated user is stored
// under for downstream handlers
const UserDetailsKey = "userDetails"

// AuthMW wraps the token service and user repository for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{
		tokenSvc: tokenSvc,
		userRepo: userRepo,
	}
}

// WithSession returns middleware that authenticates the caller from a
// Bearer session token and loads the full user into the request context
func (mw *AuthMW) WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required.")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format.")
			return
		}

		claims, err := mw.tokenSvc.Verify(tokenParts[1])
		if err != nil {
			abortUnauthorized(c, "invalid session token")
			return
		}

		// A proof token must not open an authenticated session
		if claims.Purpose != domain.PurposeSession {
			abortUnauthorized(c, "invalid session token")
			return
		}

		user, err := mw.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, "invalid session token")
			return
		}

		c.Set(UserDetailsKey, user)
		c.Next()
	}
}

// abortUnauthorized writes the failure envelope and stops the chain
func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"status":  http.StatusUnauthorized,
			"name":    http.StatusText(http.StatusUnauthorized),
			"message": message,
		},
	})
}
