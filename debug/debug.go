// Package debug provides opt-in structured tracing for the HOCON pipeline.
//
// Every concern (parse, merge, resolve, include) is gated by its own
// environment variable so a caller can trace just the stage they care about
// without drowning in noise from the rest of the pipeline. Tracing is off by
// default; the core stays silent on the hot path per its purely-computational
// design (see SPEC_FULL.md, §5).
package debug

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

type flags struct {
	parse   bool
	merge   bool
	resolve bool
	include bool
}

var (
	f flags

	parseLog   zerolog.Logger
	mergeLog   zerolog.Logger
	resolveLog zerolog.Logger
	includeLog zerolog.Logger
)

func init() {
	f.parse = boolEnv("HOCON_DEBUG_PARSE")
	f.merge = boolEnv("HOCON_DEBUG_MERGE")
	f.resolve = boolEnv("HOCON_DEBUG_RESOLVE")
	f.include = boolEnv("HOCON_DEBUG_INCLUDE")

	base := zerolog.New(os.Stderr).With().Timestamp().Logger()
	parseLog = leveled(base, "parse", f.parse)
	mergeLog = leveled(base, "merge", f.merge)
	resolveLog = leveled(base, "resolve", f.resolve)
	includeLog = leveled(base, "include", f.include)
}

func leveled(base zerolog.Logger, concern string, on bool) zerolog.Logger {
	l := base.With().Str("concern", concern).Logger()
	if !on {
		return l.Level(zerolog.Disabled)
	}
	return l.Level(zerolog.DebugLevel)
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Parse reports whether parser tracing is enabled.
func Parse() bool { return f.parse }

// Merge reports whether merge tracing is enabled.
func Merge() bool { return f.merge }

// Resolve reports whether substitution-resolver tracing is enabled.
func Resolve() bool { return f.resolve }

// Include reports whether include-resolver tracing is enabled.
func Include() bool { return f.include }

// ParseEvent starts a debug-level event for the parse concern; it is a
// cheap no-op unless HOCON_DEBUG_PARSE is set.
func ParseEvent() *zerolog.Event { return parseLog.Debug() }

// MergeEvent starts a debug-level event for the merge concern.
func MergeEvent() *zerolog.Event { return mergeLog.Debug() }

// ResolveEvent starts a debug-level event for the resolve concern.
func ResolveEvent() *zerolog.Event { return resolveLog.Debug() }

// IncludeEvent starts a debug-level event for the include concern.
func IncludeEvent() *zerolog.Event { return includeLog.Debug() }
