// Package merge deep-merges duplicate object keys in an intermediate tree,
// applying HOCON's fixed override rule (spec.md §4.3): when the same key
// appears more than once at the same nesting level, later object values
// merge into earlier ones field by field, while any other later value
// (scalar, array, substitution, concat) simply replaces what came before.
//
// It also implements the self-reference rule (spec.md §4.4): when an
// override's right-hand side contains a substitution back to the very key
// being overridden, that substitution is tagged with a snapshot of the
// pre-override value, so the resolver can see "the old me" instead of
// looping back onto the value being computed.
package merge

import (
	"strings"

	"github.com/hocon-go/hocon/debug"
	"github.com/hocon-go/hocon/ir"
)

// Tree walks v (which must be fully spliced by package include already) and
// folds duplicate object keys in encountered order.
func Tree(v *ir.Value) *ir.Value {
	return mergeValue(v, nil)
}

func mergeValue(v *ir.Value, path []string) *ir.Value {
	switch v.Type {
	case ir.ObjectType:
		return mergeObject(v, path)
	case ir.ArrayType:
		out := &ir.Value{Type: ir.ArrayType}
		out.Values = make([]*ir.Value, len(v.Values))
		for i, e := range v.Values {
			c := mergeValue(e, nil)
			c.Parent = out
			c.ParentIndex = i
			out.Values[i] = c
		}
		return out
	default:
		return v
	}
}

// mergeObject folds v's Fields/Values into first-occurrence order, deep
// merging any run of values sharing a key. path is the dotted-path prefix
// from the document root down to v, used to tag self-referencing overrides.
func mergeObject(v *ir.Value, path []string) *ir.Value {
	out := &ir.Value{Type: ir.ObjectType}
	slot := make(map[string]int, len(v.Fields))

	for i, f := range v.Fields {
		key := f.FieldString()
		fieldPath := append(append([]string(nil), path...), key)
		val := mergeValue(v.Values[i], fieldPath)
		if idx, ok := slot[key]; ok {
			old := out.Values[idx]
			tagSelfRef(val, strings.Join(fieldPath, "."), old)
			merged := combine(old, val)
			merged.Parent = out
			merged.ParentIndex = idx
			merged.ParentField = key
			out.Values[idx] = merged
			continue
		}
		idx := len(out.Fields)
		slot[key] = idx
		keyNode := ir.FromString(key)
		keyNode.Parent = out
		keyNode.ParentIndex = idx
		val.Parent = out
		val.ParentIndex = idx
		val.ParentField = key
		out.Fields = append(out.Fields, keyNode)
		out.Values = append(out.Values, val)
	}

	if debug.Merge() {
		debug.MergeEvent().Int("fields_in", len(v.Fields)).Int("fields_out", len(out.Fields)).Msg("merged object")
	}
	return out
}

// tagSelfRef walks next looking for Substitution nodes referencing
// ownPath, attaching snapshot (a detached clone of the pre-override value)
// to each. It does not descend into nested Object/Array values that
// establish their own path scope differently — only the direct expression
// tree of this assignment (Concat/leaf/Substitution) can self-reference,
// since a nested object literal's fields have their own distinct paths.
func tagSelfRef(next *ir.Value, ownPath string, snapshot *ir.Value) {
	switch next.Type {
	case ir.SubstitutionType:
		if next.SubstPath == ownPath {
			next.SelfRefSnapshot = snapshot.Clone()
		}
	case ir.ConcatType:
		for _, op := range next.Values {
			tagSelfRef(op, ownPath, snapshot)
		}
	}
}

// combine applies the two-row override table to a duplicate key's old and
// new values: Object+Object recurses; anything else, new replaces old.
func combine(old, next *ir.Value) *ir.Value {
	if old.Type == ir.ObjectType && next.Type == ir.ObjectType {
		return MergeValues(old, next)
	}
	return next
}

// MergeValues deep-merges two already-merged objects field by field,
// preserving old's field order and appending any fields next alone has. It
// is exported for package resolve, which needs the identical rule to
// combine adjacent Object operands in a value concatenation.
func MergeValues(old, next *ir.Value) *ir.Value {
	out := &ir.Value{Type: ir.ObjectType}
	slot := make(map[string]int, len(old.Fields)+len(next.Fields))

	for i, f := range old.Fields {
		key := f.FieldString()
		slot[key] = len(out.Fields)
		out.Fields = append(out.Fields, ir.FromString(key))
		out.Values = append(out.Values, old.Values[i])
	}
	for i, f := range next.Fields {
		key := f.FieldString()
		if idx, ok := slot[key]; ok {
			out.Values[idx] = combine(out.Values[idx], next.Values[i])
			continue
		}
		slot[key] = len(out.Fields)
		out.Fields = append(out.Fields, ir.FromString(key))
		out.Values = append(out.Values, next.Values[i])
	}
	for i := range out.Fields {
		out.Fields[i].Parent = out
		out.Fields[i].ParentIndex = i
		out.Values[i].Parent = out
		out.Values[i].ParentIndex = i
		out.Values[i].ParentField = out.Fields[i].FieldString()
	}
	return out
}
