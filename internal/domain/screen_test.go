package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScreenName_Accepts(t *testing.T) {
	tests := []string{
		"weather",
		"weather.01",
		"my-screen_2",
		"A",
		"...",
		"-leading-hyphen",
		strings.Repeat("a", MaxScreenNameLen),
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			name, err := ParseScreenName(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, name.String())
		})
	}
}

func TestParseScreenName_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"path traversal", "../etc"},
		{"slash", "a/b"},
		{"space", "weather 01"},
		{"leading space", " weather"},
		{"trailing newline", "weather\n"},
		{"embedded newline", "weather\nreload"},
		{"semicolon", "a;b"},
		{"shell substitution", "$(reboot)"},
		{"unicode letter", "wétter"},
		{"null byte", "a\x00b"},
		{"too long", strings.Repeat("a", MaxScreenNameLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := ParseScreenName(tt.raw)
			require.ErrorIs(t, err, ErrInvalidScreenName)
			assert.Empty(t, name.String())
		})
	}
}

func TestParseScreenName_EveryDisallowedASCIIByte(t *testing.T) {
	allowed := func(b byte) bool {
		return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') ||
			b == '_' || b == '.' || b == '-'
	}

	for b := 0; b < 256; b++ {
		raw := "ok" + string([]byte{byte(b)}) + "ok"
		_, err := ParseScreenName(raw)
		if allowed(byte(b)) {
			assert.NoError(t, err, "byte %#x should be accepted", b)
		} else {
			assert.ErrorIs(t, err, ErrInvalidScreenName, "byte %#x should be rejected", b)
		}
	}
}

func TestParseScreenName_LengthBoundary(t *testing.T) {
	for n := 1; n <= MaxScreenNameLen+5; n++ {
		raw := strings.Repeat("x", n)
		_, err := ParseScreenName(raw)
		if n <= MaxScreenNameLen {
			assert.NoError(t, err, "length %d", n)
		} else {
			assert.ErrorIs(t, err, ErrInvalidScreenName, "length %d", n)
		}
	}
}
