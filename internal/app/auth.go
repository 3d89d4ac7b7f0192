package app

import "crypto/subtle"

const (
	DefaultUsername = "admin"
	DefaultPassword = "changeme"
)

// Authenticator checks HTTP Basic credentials against one configured pair.
type Authenticator struct {
	username []byte
	password []byte
}

// NewAuthenticator falls back to DefaultUsername/DefaultPassword for empty values.
func NewAuthenticator(username, password string) *Authenticator {
	if username == "" {
		username = DefaultUsername
	}
	if password == "" {
		password = DefaultPassword
	}
	return &Authenticator{username: []byte(username), password: []byte(password)}
}

// Authenticate reports whether the supplied pair matches. ok is false when the
// request carried no credentials at all. Both halves are always compared.
func (a *Authenticator) Authenticate(username, password string, ok bool) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(username), a.username)
	passMatch := subtle.ConstantTimeCompare([]byte(password), a.password)
	return ok && userMatch&passMatch == 1
}

// UsesDefaultPassword reports whether the built-in password is in effect.
func (a *Authenticator) UsesDefaultPassword() bool {
	return string(a.password) == DefaultPassword
}
