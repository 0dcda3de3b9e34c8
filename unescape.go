package xmlreader

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unescape decodes the five predefined entities (&lt; &gt; &amp; &apos;
// &quot;) and decimal/hexadecimal character references (&#NNN; &#xHH;)
// in s. When s contains no ampersand the input string is returned
// unchanged without allocating; this is the common case. Never applied
// to CDATA runs, which require no decoding.
func Unescape(s string) (string, error) {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:amp])
	for i := amp; i < len(s); i++ {
		if s[i] != '&' {
			b.WriteByte(s[i])
			continue
		}
		semi := strings.IndexByte(s[i+1:], ';')
		if semi < 0 {
			return "", &EscapeError{Reference: s[i:]}
		}
		ref := s[i+1 : i+1+semi]
		whole := s[i : i+semi+2]
		if len(ref) == 0 {
			return "", &EscapeError{Reference: whole}
		}
		if ref[0] == '#' {
			r, ok := parseCharRef(ref[1:])
			if !ok {
				return "", &EscapeError{Reference: whole}
			}
			b.WriteRune(r)
		} else {
			rep, ok := entityReplacement(ref)
			if !ok {
				return "", &EscapeError{Reference: whole}
			}
			b.WriteByte(rep)
		}
		i += semi + 1
	}
	return b.String(), nil
}

func entityReplacement(name string) (byte, bool) {
	switch name {
	case "lt":
		return '<', true
	case "gt":
		return '>', true
	case "amp":
		return '&', true
	case "apos":
		return '\'', true
	case "quot":
		return '"', true
	}
	return 0, false
}

// parseCharRef parses the digits of a character reference, the part
// between "&#" and ";". A leading 'x' or 'X' selects hexadecimal.
func parseCharRef(digits string) (rune, bool) {
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		base = 16
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	if r == 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
		return 0, false
	}
	return r, true
}
