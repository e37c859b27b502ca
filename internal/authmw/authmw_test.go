package authmw_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/authmw"
	"github.com/rawen554/mockhive/internal/jwtauth"
	"github.com/rawen554/mockhive/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(svc *jwtauth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", authmw.Middleware(svc, logger.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(authmw.UsernameKey)})
	})
	return r
}

func TestMissingTokenIsRejected(t *testing.T) {
	svc := jwtauth.New("secret")
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidBearerTokenIsAccepted(t *testing.T) {
	svc := jwtauth.New("secret")
	r := setupRouter(svc)

	token, err := svc.Issue("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"admin"}`, rec.Body.String())
}

func TestRevokedTokenIsRejected(t *testing.T) {
	svc := jwtauth.New("secret")
	r := setupRouter(svc)

	token, err := svc.Issue("admin")
	require.NoError(t, err)
	svc.Revoke(token)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieTokenIsAccepted(t *testing.T) {
	svc := jwtauth.New("secret")
	r := setupRouter(svc)

	token, err := svc.Issue("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
