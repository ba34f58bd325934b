// Package arraypp implements the array post-processing rule (spec.md §4.5):
// at typed-array-access time, an Object whose keys are all decimal
// non-negative integers can stand in for an Array. Conversion happens lazily
// at query time, never during resolution, so a document that never asks for
// this view keeps its object shape.
package arraypp

import (
	"sort"

	"github.com/hocon-go/hocon/ir"
)

// AsArray reports whether v can be viewed as an array, returning the
// compacting-variant view: numeric keys sorted ascending, values emitted in
// that order with no null-padding for gaps. An Array node is returned
// unchanged; a non-Object, or an Object with any non-numeric key, is not
// convertible.
func AsArray(v *ir.Value) (*ir.Value, bool) {
	if v == nil {
		return nil, false
	}
	if v.Type == ir.ArrayType {
		return v, true
	}
	if v.Type != ir.ObjectType {
		return nil, false
	}
	if len(v.Fields) == 0 {
		return nil, false
	}

	type indexed struct {
		idx int
		val *ir.Value
	}
	entries := make([]indexed, 0, len(v.Fields))
	for i, f := range v.Fields {
		idx, ok := f.NonNegativeIndex()
		if !ok {
			return nil, false
		}
		entries = append(entries, indexed{idx, v.Values[i]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })

	out := &ir.Value{Type: ir.ArrayType}
	out.Values = make([]*ir.Value, len(entries))
	for i, e := range entries {
		e.val.Parent = out
		e.val.ParentIndex = i
		e.val.ParentField = ""
		out.Values[i] = e.val
	}
	return out, true
}
