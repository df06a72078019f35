package utils

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t\n"))
	assert.False(t, IsBlank(" a "))
}

func TestRemoveWhitespace(t *testing.T) {
	assert.Equal(t, "1234,56€", RemoveWhitespace("1 234,56\u00a0€"))
	assert.Equal(t, "TRUE", RemoveWhitespace(" T R U E "))
}

func TestKeepRunes(t *testing.T) {
	got := KeepRunes("12 ans", unicode.IsDigit)
	assert.Equal(t, "12", got)
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a \n b\t\tc "))
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"long", "abcdef", 3, "abc..."},
		{"multibyte", "éééé", 2, "éé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateString(tt.in, tt.max))
		})
	}
}
