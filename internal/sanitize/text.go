// Package sanitize repairs the inconsistent text data found in the legacy
// store: mixed encodings, control characters, embedded markup and garbage
// e-mail addresses.
package sanitize

import (
	"html"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	controlRe = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
	wsRe      = regexp.MustCompile(`\s+`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
)

// Text repairs a legacy string. Invalid UTF-8 is reinterpreted as Latin-1,
// hard tabs become spaces and control characters are dropped.
func Text(s string) string {
	if !utf8.ValidString(s) {
		if dec, err := charmap.ISO8859_1.NewDecoder().String(s); err == nil {
			s = dec
		} else {
			s = strings.ToValidUTF8(s, "")
		}
	}
	s = strings.ReplaceAll(s, "\t", "    ")
	s = controlRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Email normalizes addr and returns fallback if it cannot be repaired into
// a valid address.
func Email(addr, fallback string) string {
	addr = strings.ToLower(Text(addr))
	if ValidEmail(addr) {
		return addr
	}
	return fallback
}

// ValidEmail reports whether addr is a plain, parseable e-mail address.
func ValidEmail(addr string) bool {
	if addr == "" || strings.ContainsAny(addr, " \t<>") || strings.Count(addr, "@") != 1 {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}

// StripTags removes HTML markup and resolves entities.
func StripTags(s string) string {
	return html.UnescapeString(tagRe.ReplaceAllString(s, ""))
}

// Title cleans a user-supplied title: repaired, de-tagged, whitespace collapsed.
func Title(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(StripTags(Text(s)), " "))
}
