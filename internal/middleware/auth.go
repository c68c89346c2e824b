package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/auth"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/models"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

const (
	headerAuth        = "Authorization"
	bearerPrefix      = "Bearer "
	unauthorizedError = "Unauthorized request!"

	contextUserID   = "userID"
	contextUsername = "username"
)

// Authenticator resolves the acting user from an access token carried in a
// cookie or an Authorization: Bearer header.
type Authenticator struct {
	verifier   auth.Verifier
	cookieName string
}

// NewAuthenticator creates a new Authenticator. cookieName defaults to
// "accessToken".
func NewAuthenticator(verifier auth.Verifier, cookieName string) *Authenticator {
	if cookieName == "" {
		cookieName = "accessToken"
	}
	return &Authenticator{verifier: verifier, cookieName: cookieName}
}

// RequireAuth rejects requests without a valid token with 401.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := a.extractToken(c)
		if token == "" {
			a.reject(c, auth.ErrMissingToken)
			return
		}

		claims, err := a.verifier.Verify(token)
		if err != nil {
			a.reject(c, err)
			return
		}
		id, err := claims.UserID()
		if err != nil {
			a.reject(c, err)
			return
		}

		c.Set(contextUserID, id)
		c.Set(contextUsername, claims.Username)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and
// otherwise lets the request through as anonymous.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := a.extractToken(c); token != "" {
			if claims, err := a.verifier.Verify(token); err == nil {
				if id, err := claims.UserID(); err == nil {
					c.Set(contextUserID, id)
					c.Set(contextUsername, claims.Username)
				}
			}
		}
		c.Next()
	}
}

// extractToken checks the cookie first, then the Authorization header.
func (a *Authenticator) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(a.cookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader(headerAuth)
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	return ""
}

func (a *Authenticator) reject(c *gin.Context, err error) {
	logger.Log.Warn("Unauthorized request",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("clientIp", c.ClientIP()),
	)
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewApiError(http.StatusUnauthorized, unauthorizedError))
}

// UserID returns the authenticated user. ok is false on anonymous requests.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(contextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Viewer returns the acting user or view.Anonymous.
func Viewer(c *gin.Context) uuid.UUID {
	if id, ok := UserID(c); ok {
		return id
	}
	return view.Anonymous
}
