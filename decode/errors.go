package decode

import "fmt"

// Error reports a record-mapping failure at a specific field path
// (spec.md §7's Deserialize{path, detail}).
type Error struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("decode error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
