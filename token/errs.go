package token

import "errors"

var (
	ErrUnterminatedString = errors.New("hocon: unterminated string")
	ErrUnterminatedSubst  = errors.New("hocon: unterminated substitution")
	ErrInvalidEscape      = errors.New("hocon: invalid escape sequence")
	ErrInvalidNumber      = errors.New("hocon: invalid number")
	ErrUnexpectedChar     = errors.New("hocon: unexpected character")
)
