package domain

import (
	"fmt"
	"regexp"
)

// MaxScreenNameLen is the longest screen name the renderer accepts from us.
const MaxScreenNameLen = 100

var screenNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ScreenName is a validated screen identifier. The zero value is not a valid name;
// use ParseScreenName.
type ScreenName struct {
	name string
}

// ParseScreenName accepts raw only if it is non-empty, at most MaxScreenNameLen
// characters long and made solely of ASCII letters, digits, '_', '.' and '-'.
// The value is returned unchanged; no trimming or case folding happens.
func ParseScreenName(raw string) (ScreenName, error) {
	if raw == "" {
		return ScreenName{}, fmt.Errorf("%w: empty", ErrInvalidScreenName)
	}
	if len(raw) > MaxScreenNameLen {
		return ScreenName{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidScreenName, MaxScreenNameLen)
	}
	// Go's $ only matches at the end of text, so a trailing newline is rejected too.
	if !screenNamePattern.MatchString(raw) {
		return ScreenName{}, fmt.Errorf("%w: contains disallowed characters", ErrInvalidScreenName)
	}
	return ScreenName{name: raw}, nil
}

func (s ScreenName) String() string {
	return s.name
}
