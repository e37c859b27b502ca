package jwtauth_test

import (
	"testing"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueThenValidate(t *testing.T) {
	svc := jwtauth.New("test-secret")

	token, err := svc.Issue("admin")
	require.NoError(t, err)

	username, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestRevokeInvalidatesToken(t *testing.T) {
	svc := jwtauth.New("test-secret")

	token, err := svc.Issue("admin")
	require.NoError(t, err)

	svc.Revoke(token)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, apperr.ErrTokenInvalidExpired)
}

func TestUnknownTokenIsInvalid(t *testing.T) {
	svc := jwtauth.New("test-secret")
	_, err := svc.Validate("not-a-real-token")
	assert.ErrorIs(t, err, apperr.ErrTokenInvalidExpired)
}

func TestClearRevokesEverything(t *testing.T) {
	svc := jwtauth.New("test-secret")
	token, err := svc.Issue("admin")
	require.NoError(t, err)

	svc.Clear()

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, apperr.ErrTokenInvalidExpired)
}
