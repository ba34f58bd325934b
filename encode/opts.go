package encode

// Option configures a call to Encode.
type Option func(*encState)

// WithIndent sets the number of spaces used per nesting level. Default 2.
func WithIndent(n int) Option {
	return func(es *encState) { es.indent = n }
}

// WithColor turns on ANSI syntax coloring using c.
func WithColor(c *Colors) Option {
	return func(es *encState) { es.color = c }
}
