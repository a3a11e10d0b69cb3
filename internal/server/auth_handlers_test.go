package server

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp := performRequest(t, app, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID    uint   `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.NotZero(t, body.User.ID)
	assert.Equal(t, "Ada Lovelace", body.User.Name)
}

func TestSignup_PasswordNeverInResponse(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp := performRequest(t, app, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(raw)), "password")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	app, _, _ := setupTestServer(t)

	payload := fiber.Map{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "Str0ng!Passw0rd",
	}
	resp := performRequest(t, app, fiber.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = performRequest(t, app, fiber.MethodPost, "/api/auth/signup", "", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestSignup_InvalidInput(t *testing.T) {
	app, _, _ := setupTestServer(t)

	tests := []struct {
		name    string
		payload fiber.Map
	}{
		{"missing name", fiber.Map{"email": "a@b.com", "password": "Str0ng!Passw0rd"}},
		{"bad email", fiber.Map{"name": "A", "email": "nope", "password": "Str0ng!Passw0rd"}},
		{"weak password", fiber.Map{"name": "A", "email": "a@b.com", "password": "weak"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, app, fiber.MethodPost, "/api/auth/signup", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func TestLogin(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp := performRequest(t, app, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = performRequest(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ada@example.com",
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body authResponse
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)

	// The issued token is accepted by the gate.
	me := performRequest(t, app, fiber.MethodGet, "/api/users/me", body.Token, nil)
	assert.Equal(t, http.StatusOK, me.StatusCode)
	me.Body.Close()
}

func TestLogin_UniformRejection(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp := performRequest(t, app, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var unknown, wrong models.ErrorResponse

	resp = performRequest(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	decodeBody(t, resp, &unknown)

	resp = performRequest(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ada@example.com",
		"password": "WrongPassword1!",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	decodeBody(t, resp, &wrong)

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.Equal(t, unknown, wrong)
}
