package include

import "errors"

var (
	ErrCycle          = errors.New("hocon: include cycle detected")
	ErrTooDeep        = errors.New("hocon: include depth exceeded")
	ErrNotFound       = errors.New("hocon: include source not found")
	ErrUnsupportedURL = errors.New("hocon: url includes are disabled")
	ErrFetch          = errors.New("hocon: include fetch failed")
)
