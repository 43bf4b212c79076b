package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFManager(t *testing.T) {
	m := NewCSRFManager("csrf-secret", time.Hour)

	token, err := m.Generate("delete12", 7)
	require.NoError(t, err)

	assert.True(t, m.Valid("delete12", 7, token))
	assert.False(t, m.Valid("delete13", 7, token), "other intention")
	assert.False(t, m.Valid("delete12", 8, token), "other user")
	assert.False(t, m.Valid("delete12", 7, ""), "empty token")
	assert.False(t, m.Valid("delete12", 7, "garbage"))
	assert.False(t, NewCSRFManager("other-secret", time.Hour).Valid("delete12", 7, token))
}

func TestCSRFManager_Expired(t *testing.T) {
	m := NewCSRFManager("csrf-secret", -time.Minute)

	token, err := m.Generate("delete1", 1)
	require.NoError(t, err)
	assert.False(t, m.Valid("delete1", 1, token))
}

func TestCSRFAndAuthTokensAreNotInterchangeable(t *testing.T) {
	jwtService := NewJWTService("shared", 1)
	csrf := NewCSRFManager("shared", time.Hour)

	authToken, err := jwtService.GenerateToken(1, nil)
	require.NoError(t, err)
	csrfToken, err := csrf.Generate("delete1", 1)
	require.NoError(t, err)

	assert.False(t, csrf.Valid("delete1", 1, authToken))
	_, err = jwtService.ValidateToken(csrfToken)
	assert.Error(t, err)
}
