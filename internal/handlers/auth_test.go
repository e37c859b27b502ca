package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/handlers"
	"github.com/rawen554/mockhive/internal/idmanager"
	"github.com/rawen554/mockhive/internal/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *jwtauth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := collection.New("users", "username", idmanager.None)
	_, err := users.Insert(collection.Record{"username": "admin", "password": "hunter2"})
	require.NoError(t, err)

	svc := jwtauth.New("secret")
	group := &handlers.AuthGroup{
		Users:         users,
		JWT:           svc,
		UsernameField: "username",
		PasswordField: "password",
		CookieName:    "auth_token",
	}

	r := gin.New()
	r.POST("/login", group.Login)
	r.POST("/logout", group.Logout)
	return r, svc
}

func TestLoginSuccess(t *testing.T) {
	r, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"admin","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "auth_token=")
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginMissingCredentials(t *testing.T) {
	r, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	r, svc := setupAuthRouter(t)

	token, err := svc.Issue("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	_, err = svc.Validate(token)
	assert.Error(t, err)
}
