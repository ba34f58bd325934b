package resolve

type resolveOpts struct {
	systemEnv bool
	strict    bool
}

// Option configures a call to Resolve.
type Option func(*resolveOpts)

// UseSystem toggles falling back to process environment variables for a
// substitution not found in the configuration tree (spec.md §4.4, default
// true).
func UseSystem(v bool) Option {
	return func(o *resolveOpts) { o.systemEnv = v }
}

// Strict makes an incompatible concatenation or missing required key a hard
// error rather than a BadValue placeholder threaded into the tree.
func Strict(v bool) Option {
	return func(o *resolveOpts) { o.strict = v }
}
