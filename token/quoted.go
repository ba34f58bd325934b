package token

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// unescapeQuoted decodes JSON escape sequences within a quoted string body
// (the bytes between the delimiting quotes), per spec.md §4.1.
func unescapeQuoted(body []byte) (string, error) {
	var out []byte
	i := 0
	n := len(body)
	for i < n {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= n {
			return "", fmt.Errorf("%w: dangling backslash", ErrInvalidEscape)
		}
		e := body[i+1]
		switch e {
		case '"':
			out = append(out, '"')
			i += 2
		case '\\':
			out = append(out, '\\')
			i += 2
		case '/':
			out = append(out, '/')
			i += 2
		case 'b':
			out = append(out, '\b')
			i += 2
		case 'f':
			out = append(out, '\f')
			i += 2
		case 'n':
			out = append(out, '\n')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case 'u':
			if i+6 > n {
				return "", fmt.Errorf("%w: short \\u escape", ErrInvalidEscape)
			}
			v, err := strconv.ParseUint(string(body[i+2:i+6]), 16, 32)
			if err != nil {
				return "", fmt.Errorf("%w: %s", ErrInvalidEscape, err)
			}
			var buf [utf8.UTFMax]byte
			w := utf8.EncodeRune(buf[:], rune(v))
			out = append(out, buf[:w]...)
			i += 6
		default:
			return "", fmt.Errorf("%w: \\%c", ErrInvalidEscape, e)
		}
	}
	return string(out), nil
}
