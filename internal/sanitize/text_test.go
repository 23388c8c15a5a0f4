package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"trimmed", "  padded  ", "padded"},
		{"tabs", "a\tb", "a    b"},
		{"control chars", "a\x00b\x1fc", "abc"},
		{"latin1 fallback", "caf\xe9", "café"},
		{"valid utf8 kept", "café", "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestEmail(t *testing.T) {
	const fallback = "lost@example.com"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid", "User@CERN.CH", "user@cern.ch"},
		{"padded valid", "  a@b.org ", "a@b.org"},
		{"empty", "", fallback},
		{"no at", "not-an-email", fallback},
		{"double at", "a@@b.com", fallback},
		{"spaces inside", "a b@c.com", fallback},
		{"angle brackets", "<a@b.com>", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.in, fallback))
		})
	}
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "bold text", StripTags("<b>bold</b> text"))
	assert.Equal(t, "a & b", StripTags("a &amp; b"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Annual Meeting 2009", Title("  <i>Annual</i>\n  Meeting \t 2009 "))
}
