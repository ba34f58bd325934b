// Package query implements the read-only surface over a resolved tree
// (spec.md §4.6): dotted path indexing, typed accessors, and the
// "missing" sentinel every accessor answers "none" against.
package query

import (
	"time"

	"github.com/hocon-go/hocon/arraypp"
	"github.com/hocon-go/hocon/ir"
	"github.com/hocon-go/hocon/units"
)

// missing is the sentinel node returned for any absent path. It carries no
// Type any real accessor recognizes, so every typed accessor below falls
// through to its "not present" branch.
var missing = &ir.Value{Type: ir.BadValueType}

// IsMissing reports whether v is the "missing" sentinel or a BadValue node
// (a deferred lenient-mode error), both of which answer None everywhere.
func IsMissing(v *ir.Value) bool {
	return v == nil || v == missing || v.Type == ir.BadValueType
}

// Get resolves a dotted path against root (e.g. "a.b", or `a."b.c"` with a
// segment quoted to embed a literal dot; bracket syntax is not parsed), returning the
// missing sentinel if any segment is absent. Numeric-key objects are
// transparently viewed as arrays when a segment on the way down is itself
// a decimal index into one (§4.5).
func Get(root *ir.Value, path string) *ir.Value {
	segs, err := ir.ParsePath(path)
	if err != nil {
		return missing
	}
	cur := root
	for _, seg := range segs {
		if cur == nil {
			return missing
		}
		if idx, ok := seg.AsArrayIndex(); ok {
			if arr, ok := arraypp.AsArray(cur); ok {
				if idx < 0 || idx >= len(arr.Values) {
					return missing
				}
				cur = arr.Values[idx]
				continue
			}
		}
		if cur.Type != ir.ObjectType {
			return missing
		}
		next := ir.Get(cur, seg.Key)
		if next == nil {
			return missing
		}
		cur = next
	}
	return cur
}

// Int returns v's value as an int64: an Integer as is, a Real truncated
// toward zero. It returns (0, false) if v is missing or not numeric.
func Int(v *ir.Value) (int64, bool) {
	if IsMissing(v) {
		return 0, false
	}
	switch v.Type {
	case ir.IntegerType:
		return v.Int64, true
	case ir.RealType:
		return int64(v.Float64), true
	default:
		return 0, false
	}
}

// Float returns v's numeric value as a float64.
func Float(v *ir.Value) (float64, bool) {
	if IsMissing(v) {
		return 0, false
	}
	switch v.Type {
	case ir.IntegerType:
		return float64(v.Int64), true
	case ir.RealType:
		return v.Float64, true
	default:
		return 0, false
	}
}

// Bool returns v's boolean value.
func Bool(v *ir.Value) (bool, bool) {
	if IsMissing(v) || v.Type != ir.BooleanType {
		return false, false
	}
	return v.Bool, true
}

// String returns v's string value. A unit-suffixed number is stored as a
// String node by the parser, so this is also the entry point typed
// accessors below parse further.
func String(v *ir.Value) (string, bool) {
	if IsMissing(v) || v.Type != ir.StringType {
		return "", false
	}
	return v.String, true
}

// Duration parses v's string form as a duration (§4.6).
func Duration(v *ir.Value) (time.Duration, bool) {
	s, ok := String(v)
	if !ok {
		return 0, false
	}
	d, err := units.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

// Period parses v's string form as a calendar period.
func Period(v *ir.Value) (units.Period, bool) {
	s, ok := String(v)
	if !ok {
		return units.Period{}, false
	}
	p, err := units.ParsePeriod(s)
	if err != nil {
		return units.Period{}, false
	}
	return p, true
}

// Size parses v's string form as a byte count.
func Size(v *ir.Value) (int64, bool) {
	s, ok := String(v)
	if !ok {
		return 0, false
	}
	n, err := units.ParseSize(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Array views v as an array, applying numeric-key-object post-processing
// when needed.
func Array(v *ir.Value) (*ir.Value, bool) {
	if IsMissing(v) {
		return nil, false
	}
	return arraypp.AsArray(v)
}
