package include

import "net/http"

type resolverOpts struct {
	baseDir       string
	classpathDirs []string
	allowURL      bool
	maxDepth      int
	httpClient    *http.Client
	strict        bool
}

// Option configures a Resolver.
type Option func(*resolverOpts)

// BaseDir sets the directory unqualified and file() includes resolve
// relative to. Defaults to the current working directory.
func BaseDir(dir string) Option {
	return func(o *resolverOpts) { o.baseDir = dir }
}

// ClasspathDirs sets the search roots probed, in order, for
// include classpath("...") directives.
func ClasspathDirs(dirs ...string) Option {
	return func(o *resolverOpts) { o.classpathDirs = dirs }
}

// AllowURL enables include url(...) and unqualified http(s):// references.
// Disabled by default; a disabled URL include behaves as not-found.
func AllowURL(v bool) Option {
	return func(o *resolverOpts) { o.allowURL = v }
}

// MaxDepth caps the include nesting depth. Zero means the package default.
func MaxDepth(n int) Option {
	return func(o *resolverOpts) { o.maxDepth = n }
}

// HTTPClient overrides the client used for url includes.
func HTTPClient(c *http.Client) Option {
	return func(o *resolverOpts) { o.httpClient = c }
}

// Strict makes malformed included documents a hard error rather than
// producing BadValue placeholders, mirroring parse.Strict.
func Strict(v bool) Option {
	return func(o *resolverOpts) { o.strict = v }
}
