package hocon

type loaderOpts struct {
	strict          bool
	systemEnv       bool
	noURLIncludes   bool
	maxIncludeDepth int
}

// LoaderOption configures a Loader, mirroring the functional-options shape
// used throughout this module (parse.ParseOption, include.Option,
// resolve.Option, encode.Option).
type LoaderOption func(*loaderOpts)

// WithStrict toggles strict mode (spec.md §6): false (default) is lenient,
// turning malformed values and failed substitutions or concatenations into
// BadValue nodes; true aborts on the first error of any kind. Lexical errors
// (such as an unterminated string) and include errors (a cycle, excess
// depth, a missing required include) abort the load in either mode.
func WithStrict(v bool) LoaderOption {
	return func(o *loaderOpts) { o.strict = v }
}

// WithSystemEnv toggles falling back to the process environment for
// unresolved substitutions. Default true.
func WithSystemEnv(v bool) LoaderOption {
	return func(o *loaderOpts) { o.systemEnv = v }
}

// WithNoURLIncludes disables url(...) includes regardless of feature.
func WithNoURLIncludes(v bool) LoaderOption {
	return func(o *loaderOpts) { o.noURLIncludes = v }
}

// WithMaxIncludeDepth caps include nesting depth. Default 32.
func WithMaxIncludeDepth(n int) LoaderOption {
	return func(o *loaderOpts) { o.maxIncludeDepth = n }
}
