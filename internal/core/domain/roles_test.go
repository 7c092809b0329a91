package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
	}{
		{"user", RoleUser},
		{"admin", RoleAdmin},
		{"", RoleUser},
		{"superuser", RoleUser},
		{"ADMIN", RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRole(tt.input))
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, Role("superuser").IsAdmin())
}
