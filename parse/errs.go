package parse

import "errors"

var (
	ErrExpectedValue     = errors.New("hocon: expected a value")
	ErrExpectedKey       = errors.New("hocon: expected an object key")
	ErrExpectedCloseCurl = errors.New("hocon: expected '}'")
	ErrExpectedCloseSq   = errors.New("hocon: expected ']'")
	ErrUnexpectedToken   = errors.New("hocon: unexpected token")
	ErrBadInclude        = errors.New("hocon: malformed include directive")
	ErrTrailingInput     = errors.New("hocon: trailing input after document")
)
