package hocon

import "github.com/hocon-go/hocon/decode"

// Resolve runs Hocon() and decodes the result onto a new T using the same
// `hocon:"..."` struct-tag rules as decode.Unmarshal.
func Resolve[T any](l *Loader) (T, error) {
	var out T
	root, err := l.Hocon()
	if err != nil {
		return out, err
	}
	if err := decode.Unmarshal(root, &out); err != nil {
		return out, err
	}
	return out, nil
}
