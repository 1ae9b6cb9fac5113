package transport

import (
	"strings"
)

// queryValue returns the first non-empty value of key in rawQuery.
//
// Unlike url.ParseQuery, pairs are split on '&' only and a malformed
// percent-escape is kept literally instead of dropping the whole pair, so a
// value such as "a%zz" or "x;y" reaches the caller as typed.
func queryValue(rawQuery, key string) string {
	for _, pair := range strings.Split(rawQuery, "&") {
		name, value, found := strings.Cut(pair, "=")
		if !found || value == "" {
			continue
		}
		if lenientUnescape(name) != key {
			continue
		}
		if v := lenientUnescape(value); v != "" {
			return v
		}
	}
	return ""
}

// lenientUnescape decodes form encoding: '+' becomes a space and valid %XX
// escapes are decoded. Invalid escapes are left untouched.
func lenientUnescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
