// Package authmw gates protected routes on a valid, non-revoked token.
// Adapted from the teacher's internal/middleware/auth.AuthMiddleware:
// same header-or-cookie extraction and gin.Context plumbing, but this
// variant refuses rather than auto-issuing a replacement token on
// failure.
package authmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/jwtauth"
	"go.uber.org/zap"
)

// UsernameKey is the gin.Context key the authenticated username is
// stored under for downstream handlers.
const UsernameKey = "mockhive_username"

const cookieName = "auth_token"

// ExtractToken pulls the candidate bearer token from the Authorization
// header, falling back to the auth_token cookie. It never reads the
// request body.
func ExtractToken(c *gin.Context) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		if rest, ok := strings.CutPrefix(h, "Bearer "); ok {
			return rest, true
		}
	}

	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, true
	}

	return "", false
}

// Middleware validates the request's token against svc and either
// attaches the username to the context and continues, or responds 401.
func Middleware(svc *jwtauth.Service, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractToken(c)
		if !ok {
			logger.Debugw("protected route hit with no token", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.Body{Error: apperr.ErrAuthFailure.Error()})
			return
		}

		username, err := svc.Validate(token)
		if err != nil {
			logger.Debugw("protected route hit with invalid token", "path", c.Request.URL.Path, "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.Body{Error: apperr.ErrTokenInvalidExpired.Error()})
			return
		}

		c.Set(UsernameKey, username)
		c.Next()
	}
}
