package parse

// parseOpts holds the resolved configuration of a Parse call.
type parseOpts struct {
	filename string
	strict   bool
}

// ParseOption configures a single call to Parse.
type ParseOption func(*parseOpts)

// Filename attaches a name to positions reported in parse errors.
func Filename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

// Strict makes malformed input a hard error instead of producing a
// BadValue placeholder (spec.md §7).
func Strict(v bool) ParseOption {
	return func(o *parseOpts) { o.strict = v }
}
