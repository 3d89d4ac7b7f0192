package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthenticator(t *testing.T) {
	auth := NewAuthenticator("operator", "s3cret")

	tests := []struct {
		name     string
		username string
		password string
		ok       bool
		want     bool
	}{
		{"exact pair", "operator", "s3cret", true, true},
		{"no credentials", "", "", false, false},
		{"header present but empty", "", "", true, false},
		{"wrong password", "operator", "nope", true, false},
		{"wrong username", "admin", "s3cret", true, false},
		{"both wrong", "admin", "changeme", true, false},
		{"username case differs", "Operator", "s3cret", true, false},
		{"password prefix", "operator", "s3cre", true, false},
		{"password with suffix", "operator", "s3cret ", true, false},
		{"ok false ignores matching pair", "operator", "s3cret", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Authenticate(tt.username, tt.password, tt.ok))
		})
	}
}

func TestAuthenticator_Defaults(t *testing.T) {
	auth := NewAuthenticator("", "")

	assert.True(t, auth.Authenticate(DefaultUsername, DefaultPassword, true))
	assert.True(t, auth.UsesDefaultPassword())

	assert.False(t, NewAuthenticator("admin", "long-random-password").UsesDefaultPassword())
}
