package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modelia/ai-studio-server/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	regToken, regID := registerUser(t, h, "a@b.com", "pass")

	w := doJSON(t, h, http.MethodPost, "/auth/login", map[string]string{
		"email":    "a@b.com",
		"password": "pass",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	loginToken, _ := body["token"].(string)
	require.NotEmpty(t, loginToken)

	// Both tokens verify to the same identity.
	regClaims, err := srv.Tokens.Verify(regToken)
	require.NoError(t, err)
	loginClaims, err := srv.Tokens.Verify(loginToken)
	require.NoError(t, err)
	require.Equal(t, regID, regClaims.UserID)
	require.Equal(t, regID, loginClaims.UserID)
	require.Equal(t, "a@b.com", loginClaims.Email)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	cases := []map[string]string{
		{"password": "pass"},
		{"email": "a@b.com"},
		{},
	}
	for _, body := range cases {
		w := doJSON(t, h, http.MethodPost, "/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.JSONEq(t, `{"error":"email & password required"}`, w.Body.String())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	registerUser(t, h, "a@b.com", "pass")

	w := doJSON(t, h, http.MethodPost, "/auth/register", map[string]string{
		"email":    "a@b.com",
		"password": "other",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"user exists"}`, w.Body.String())

	var count int64
	require.NoError(t, srv.DB.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestLoginFailureShapeIsUniform(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	registerUser(t, h, "a@b.com", "pass")

	wrongPassword := doJSON(t, h, http.MethodPost, "/auth/login", map[string]string{
		"email":    "a@b.com",
		"password": "wrong",
	}, "")
	unknownEmail := doJSON(t, h, http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@b.com",
		"password": "pass",
	}, "")

	// Identical status and body: the response must not reveal whether the
	// email exists.
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	require.JSONEq(t, `{"error":"invalid credentials"}`, wrongPassword.Body.String())
}

func TestLoginValidation(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	w := doJSON(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "a@b.com"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"email & password required"}`, w.Body.String())
}
