package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/authmw"
	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/jwtauth"
)

const cookieMaxAgeSeconds = 86400

// AuthGroup handles the {auth} file's login/logout pair (§4.8/§4.9).
// The users REST group of the same compound producer is a separate
// RestGroup over the Users collection, built by the route builder.
type AuthGroup struct {
	Users         *collection.Collection
	JWT           *jwtauth.Service
	UsernameField string
	PasswordField string
	CookieName    string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST <dir>/login.
func (g *AuthGroup) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.ErrMalformedJSON)
		return
	}
	if req.Username == "" || req.Password == "" {
		fail(c, apperr.ErrMissingCredentials)
		return
	}

	var matched collection.Record
	found := false
	for _, u := range g.Users.List() {
		if toStr(u[g.UsernameField]) == req.Username && toStr(u[g.PasswordField]) == req.Password {
			matched = u
			found = true
			break
		}
	}
	if !found {
		fail(c, apperr.ErrAuthFailure)
		return
	}

	token, err := g.JWT.Issue(req.Username)
	if err != nil {
		fail(c, err)
		return
	}

	safeUser := make(collection.Record, len(matched))
	for k, v := range matched {
		if k == g.PasswordField {
			continue
		}
		safeUser[k] = v
	}

	c.SetCookie(cookieName(g.CookieName), token, cookieMaxAgeSeconds, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": safeUser})
}

// Logout handles POST <dir>/logout.
func (g *AuthGroup) Logout(c *gin.Context) {
	token, ok := authmw.ExtractToken(c)
	if ok {
		g.JWT.Revoke(token)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func cookieName(configured string) string {
	if configured == "" {
		return "auth_token"
	}
	return configured
}

func toStr(v any) string {
	s, _ := v.(string)
	return s
}
