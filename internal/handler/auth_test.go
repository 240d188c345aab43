package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigstage/music-event-backend/internal/config"
	"github.com/gigstage/music-event-backend/internal/repository"
)

// Validation runs before any storage access, so a repo without a live
// database is enough for these cases.
func newAuthHandler() *AuthHandler {
	return NewAuthHandler(config.Config{JWTSecret: "test", AccessTTLMin: 15, BcryptCost: 4},
		repository.NewUserRepo(nil))
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{`, "invalid body"},
		{"missing name", `{"email":"a@b.c","password":"pw","role":"USER"}`, "name is required"},
		{"missing email", `{"name":"Ana","password":"pw","role":"USER"}`, "email and password are required"},
		{"missing password", `{"name":"Ana","email":"a@b.c","role":"USER"}`, "email and password are required"},
		{"unknown role", `{"name":"Ana","email":"a@b.c","password":"pw","role":"WIZARD"}`, "invalid role"},
	}
	h := newAuthHandler()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register", tc.body)
			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	h := newAuthHandler()

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"email":"","password":""}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email and password are required")
}
