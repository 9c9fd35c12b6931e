package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/utils"
)

func TestNewUser(t *testing.T) {
	u, err := newUser(" Ana ", " Ana@Example.COM ", "s3cret-pass", "Editor")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, models.RoleEditor, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "s3cret-pass", u.Password)
	assert.True(t, utils.CheckPassword(u.Password, "s3cret-pass"))
}

func TestNewUserRejects(t *testing.T) {
	cases := map[string][3]string{
		"bad email":      {"not-an-email", "long-enough", "admin"},
		"short password": {"a@b.co", "short", "admin"},
		"unknown role":   {"a@b.co", "long-enough", "owner"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newUser("x", tc[0], tc[1], tc[2])
			assert.Error(t, err)
		})
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed", "create-admin"} {
		assert.True(t, names[want], want)
	}
}
