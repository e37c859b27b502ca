package routebuilder

import (
	"fmt"
	"os"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/grammar"
	"github.com/rawen554/mockhive/internal/handlers"
	"github.com/rawen554/mockhive/internal/idmanager"
	"github.com/rawen554/mockhive/internal/tomlconfig"
)

// authRecords builds the login/logout pair plus the protected users
// CRUD group an {auth} file emits (§4.8), seeding the users collection
// from the file's own JSON array content when present. Only one
// {auth} file may exist per tree; a second is a build-fatal
// DuplicateAuth.
func (b *builder) authRecords(route string, token grammar.Token, path string, protected bool, delayMS int, eff tomlconfig.Effective) ([]Record, error) {
	if b.authSeen {
		return nil, fmt.Errorf("second {auth} file at %s: %w", route, apperr.ErrDuplicateAuth)
	}
	b.authSeen = true

	usernameField := eff.Auth.UsernameField
	if usernameField == "" {
		usernameField = "username"
	}
	passwordField := eff.Auth.PasswordField
	if passwordField == "" {
		passwordField = "password"
	}
	cookieName := eff.Auth.CookieName
	loginRoute := eff.Auth.LoginRoute
	if loginRoute == "" {
		loginRoute = "login"
	}
	logoutRoute := eff.Auth.LogoutRoute
	if logoutRoute == "" {
		logoutRoute = "logout"
	}
	usersRoute := eff.Auth.UsersRoute
	if usersRoute == "" {
		usersRoute = "users"
	}

	users := b.deps.Store.GetOrCreate(usersRoute, usernameField, idmanager.None)
	if raw, err := os.ReadFile(path); err == nil {
		if err := handlers.LoadInitialFromFile(users, raw); err != nil {
			return nil, fmt.Errorf("seeding users collection from %s: %w", path, err)
		}
	}
	jwtSvc := b.deps.JWT

	authGroup := &handlers.AuthGroup{
		Users:         users,
		JWT:           jwtSvc,
		UsernameField: usernameField,
		PasswordField: passwordField,
		CookieName:    cookieName,
	}

	restGroup := handlers.NewRestGroup(users)
	usersPath := grammar.JoinRoute(route, usersRoute)

	return []Record{
		newRecord("POST", grammar.JoinRoute(route, loginRoute), false, delayMS, authGroup.Login),
		newRecord("POST", grammar.JoinRoute(route, logoutRoute), false, delayMS, authGroup.Logout),
		newRecord("GET", usersPath, true, delayMS, restGroup.List),
		newRecord("POST", usersPath, true, delayMS, restGroup.Create),
		newRecord("GET", grammar.JoinRoute(usersPath, ":id"), true, delayMS, restGroup.Get),
		newRecord("PUT", grammar.JoinRoute(usersPath, ":id"), true, delayMS, restGroup.Replace),
		newRecord("PATCH", grammar.JoinRoute(usersPath, ":id"), true, delayMS, restGroup.Merge),
		newRecord("DELETE", grammar.JoinRoute(usersPath, ":id"), true, delayMS, restGroup.Delete),
	}, nil
}
