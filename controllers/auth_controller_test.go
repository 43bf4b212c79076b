package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/wild-series-backend/models"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    uint     `json:"id"`
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	} `json:"user"`
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON("/auth/register", `{"email":"New@Example.com","password":"secret1","full_name":"Newcomer"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decode[authResponse](t, w.Body.Bytes())
	assert.Equal(t, "new@example.com", registered.User.Email)
	assert.Equal(t, []string{models.RoleUser}, registered.User.Roles)
	assert.NotEmpty(t, registered.Token)
	assert.NotContains(t, w.Body.String(), "password")

	w = env.postJSON("/auth/register", `{"email":"new@example.com","password":"secret1","full_name":"Again"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.postJSON("/auth/login", `{"email":"new@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.postJSON("/auth/login", `{"email":"ghost@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.postJSON("/auth/login", `{"email":"new@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[authResponse](t, w.Body.Bytes())

	w = env.get("/my-profile", login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new@example.com")
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON("/auth/register", `{"email":"not-an-email","password":"123","full_name":""}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, w.Body.Bytes())
	assert.Contains(t, body.Fields, "email")
	assert.Contains(t, body.Fields, "password")
	assert.Contains(t, body.Fields, "full_name")

	w = env.postJSON("/auth/register", `{"email":`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGoogleLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON("/auth/google", `{"id_token":"forged"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.postJSON("/auth/google", `{"id_token":"good-google-token"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[authResponse](t, w.Body.Bytes())
	assert.Equal(t, "google@example.com", first.User.Email)

	w = env.postJSON("/auth/google", `{"id_token":"good-google-token"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[authResponse](t, w.Body.Bytes())
	assert.Equal(t, first.User.ID, second.User.ID, "second login reuses the account")

	// Google accounts have no password
	w = env.postJSON("/auth/login", `{"email":"google@example.com","password":"anything"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
