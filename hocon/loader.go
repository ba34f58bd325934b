// Package hocon ties the parse, include, merge, and resolve packages into
// the single entry point most callers want: load one or more sources, then
// ask for either the resolved tree or a decoded Go value.
package hocon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hocon-go/hocon/debug"
	"github.com/hocon-go/hocon/include"
	"github.com/hocon-go/hocon/ir"
	"github.com/hocon-go/hocon/merge"
	"github.com/hocon-go/hocon/parse"
	"github.com/hocon-go/hocon/resolve"
)

const defaultMaxIncludeDepth = 32

// Loader accumulates one or more independent HOCON sources and produces a
// single merged, resolved configuration tree from them. Sources are merged
// left to right in the order they were loaded, with the same override rule
// duplicate keys use within one document (§3.5): object values deep-merge,
// anything else is replaced outright by the later source.
type Loader struct {
	opts    loaderOpts
	sources []*ir.Value
	err     error
}

// NewLoader constructs an empty Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	o := loaderOpts{systemEnv: true, maxIncludeDepth: defaultMaxIncludeDepth}
	for _, fn := range opts {
		fn(&o)
	}
	return &Loader{opts: o}
}

// LoadStr parses text as a HOCON document and adds it as a source. Includes
// inside text resolve relative to the current working directory.
func (l *Loader) LoadStr(text string) *Loader {
	return l.loadBytes([]byte(text), "<string>", ".conf")
}

// LoadFile reads path from disk and adds it as a source. The parser chosen
// is selected by path's extension: .properties uses the Java properties
// format, anything else (.conf, .hocon, .json, or no extension) uses the
// HOCON parser, which is already a superset of JSON.
func (l *Loader) LoadFile(path string) *Loader {
	data, err := os.ReadFile(path)
	if err != nil {
		l.fail(fmt.Errorf("hocon: read %s: %w", path, err))
		return l
	}
	return l.loadBytesFrom(data, path, filepath.Ext(path), filepath.Dir(path))
}

// LoadURL fetches url over HTTP(S) and adds it as a source. It is a no-op
// producing an error if the Loader was built with WithNoURLIncludes(true).
func (l *Loader) LoadURL(rawURL string) *Loader {
	if l.opts.noURLIncludes {
		l.fail(fmt.Errorf("hocon: url includes disabled: %s", rawURL))
		return l
	}
	data, err := fetchURL(rawURL)
	if err != nil {
		l.fail(fmt.Errorf("hocon: fetch %s: %w", rawURL, err))
		return l
	}
	u, parseErr := url.Parse(rawURL)
	ext := ""
	if parseErr == nil {
		ext = filepath.Ext(u.Path)
	}
	return l.loadBytesFrom(data, rawURL, ext, "")
}

func (l *Loader) loadBytes(data []byte, name, ext string) *Loader {
	return l.loadBytesFrom(data, name, ext, ".")
}

func (l *Loader) loadBytesFrom(data []byte, name, ext, baseDir string) *Loader {
	if l.err != nil {
		return l
	}
	var (
		v   *ir.Value
		err error
	)
	switch ext {
	case ".properties":
		v, err = parse.ParseProperties(data)
	case ".json":
		// JSON has no lenient dialect of its own; malformed JSON is always
		// a hard parse error regardless of the loader's strict setting.
		v, err = parse.Parse(data, parse.Filename(name), parse.Strict(true))
	default:
		v, err = parse.Parse(data, parse.Filename(name), parse.Strict(l.opts.strict))
	}
	if err != nil {
		l.fail(fmt.Errorf("hocon: parse %s: %w", name, err))
		return l
	}
	if debug.Parse() {
		debug.ParseEvent().Str("source", name).Msg("loaded source")
	}
	resolver := include.NewResolver(
		include.BaseDir(baseDir),
		include.AllowURL(!l.opts.noURLIncludes),
		include.MaxDepth(l.opts.maxIncludeDepth),
		include.Strict(l.opts.strict),
	)
	spliced, err := resolver.Splice(v)
	if err != nil {
		l.fail(fmt.Errorf("hocon: include %s: %w", name, err))
		return l
	}
	l.sources = append(l.sources, merge.Tree(spliced))
	return l
}

func (l *Loader) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

// Hocon runs the accumulated sources through merging and substitution
// resolution and returns the final tree. It is safe to call more than
// once; each call re-resolves from the same accumulated sources.
func (l *Loader) Hocon() (*ir.Value, error) {
	if l.err != nil {
		return nil, l.err
	}
	if len(l.sources) == 0 {
		return ir.FromKeyVals(nil), nil
	}
	acc := l.sources[0]
	for _, s := range l.sources[1:] {
		acc = combineSources(acc, s)
	}
	out, err := resolve.Resolve(acc, resolve.UseSystem(l.opts.systemEnv), resolve.Strict(l.opts.strict))
	if err != nil {
		return nil, fmt.Errorf("hocon: resolve: %w", err)
	}
	return out, nil
}

// combineSources applies the cross-source override rule: object roots deep
// merge, anything else is replaced by the later source outright.
func combineSources(old, next *ir.Value) *ir.Value {
	if old.Type == ir.ObjectType && next.Type == ir.ObjectType {
		return merge.MergeValues(old, next)
	}
	return next
}

func fetchURL(rawURL string) ([]byte, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		if strings.HasPrefix(rawURL, "file://") {
			return os.ReadFile(strings.TrimPrefix(rawURL, "file://"))
		}
		return nil, fmt.Errorf("unsupported url scheme: %s", rawURL)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
