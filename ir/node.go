// Package ir defines the Value tree shared by every stage of the HOCON
// pipeline: the intermediate tree parse produces (which may still carry
// Substitution and Concat nodes) and the fully resolved tree the rest of
// the system queries.
package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Value is a single node of either the intermediate or the resolved tree.
// Only the fields relevant to Type are meaningful; see spec.md §3 for the
// full variant list.
type Value struct {
	Type Type

	Parent      *Value
	ParentIndex int
	ParentField string

	// Object: Fields[i] names Values[i], insertion order preserved.
	Fields []*Value
	Values []*Value // Object field values, or Array elements, or Concat operands.

	// Leaves.
	String  string // String, or a unit-suffixed Number's raw text before typed conversion.
	Bool    bool
	Int64   int64
	Float64 float64

	// Substitution.
	SubstPath     string
	SubstOptional bool

	// SelfRefSnapshot, when non-nil, is the pre-override value of this
	// substitution's own path, captured by package merge at the moment a
	// duplicate key redefinition overrode it (spec.md §4.4 "Self-reference").
	// The resolver consults it instead of doing a fresh root lookup, which
	// is what lets `a = ${a} [x]` see the prior `a` instead of itself.
	SelfRefSnapshot *Value

	// Concat: Values holds the operands. Sep[i] is the literal whitespace
	// that appeared between operand i and operand i+1 in the source,
	// preserved verbatim per SPEC_FULL.md's Open Question resolution.
	Sep []string

	// BadValue.
	Err  error
	Kind ErrorKind

	// Include: a directive awaiting resolution by package include. It is
	// spliced away (replaced by the included content, merged in place)
	// before the merge pass runs and never reaches the resolver.
	IncludeSource   IncludeSource
	IncludeRef      string
	IncludeRequired bool
}

// IncludeSource discriminates the four forms of the "include" directive
// (spec.md §5).
type IncludeSource int

const (
	IncludeUnqualified IncludeSource = iota
	IncludeFile
	IncludeURL
	IncludeClasspath
)

func (s IncludeSource) String() string {
	switch s {
	case IncludeFile:
		return "file"
	case IncludeURL:
		return "url"
	case IncludeClasspath:
		return "classpath"
	default:
		return "unqualified"
	}
}

// FromInclude constructs an Include placeholder node.
func FromInclude(src IncludeSource, ref string, required bool) *Value {
	return &Value{Type: IncludeType, IncludeSource: src, IncludeRef: ref, IncludeRequired: required}
}

// FieldString returns the key text for an object field node, whether the
// key was written as a bare string or a decimal integer.
func (f *Value) FieldString() string {
	if f.Type == IntegerType {
		return itoa(f.Int64)
	}
	return f.String
}

// NonNegativeIndex reports whether the field key's text is a decimal
// non-negative integer, as required by the array post-processing rule
// (§4.5). Object field keys are always string-valued (HOCON has no
// distinct numeric-key syntax — `5 = x` and `"5" = x` name the same field),
// so this inspects the key text rather than the field node's Type.
func (f *Value) NonNegativeIndex() (int, bool) {
	s := f.FieldString()
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func itoa(i int64) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Null constructs a Null leaf.
func Null() *Value { return &Value{Type: NullType} }

// FromString constructs a String leaf.
func FromString(s string) *Value { return &Value{Type: StringType, String: s} }

// FromInt constructs an Integer leaf.
func FromInt(i int64) *Value { return &Value{Type: IntegerType, Int64: i} }

// FromFloat constructs a Real leaf.
func FromFloat(f float64) *Value { return &Value{Type: RealType, Float64: f} }

// FromBool constructs a Boolean leaf.
func FromBool(b bool) *Value { return &Value{Type: BooleanType, Bool: b} }

// FromBadValue constructs a lenient-mode BadValue leaf.
func FromBadValue(kind ErrorKind, err error) *Value {
	return &Value{Type: BadValueType, Kind: kind, Err: err}
}

// KeyVal pairs a raw object key node with its value, as produced by the
// parser before ordering/merging.
type KeyVal struct {
	Key *Value
	Val *Value
}

// FromKeyVals builds an insertion-ordered Object from key/value pairs.
func FromKeyVals(kvs []KeyVal) *Value {
	res := &Value{Type: ObjectType}
	res.Fields = make([]*Value, len(kvs))
	res.Values = make([]*Value, len(kvs))
	for i, kv := range kvs {
		kv.Key.Parent = res
		kv.Key.ParentIndex = i
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key.FieldString()
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// FromMap builds an Object node from a Go map, in sorted key order.
func FromMap(m map[string]*Value) *Value {
	res := &Value{Type: ObjectType}
	keys := slices.Sorted(maps.Keys(m))
	res.Fields = make([]*Value, len(keys))
	res.Values = make([]*Value, len(keys))
	for i, k := range keys {
		key := FromString(k)
		val := m[k]
		key.Parent = res
		key.ParentIndex = i
		val.Parent = res
		val.ParentIndex = i
		val.ParentField = k
		res.Fields[i] = key
		res.Values[i] = val
	}
	return res
}

// FromSlice builds an Array node.
func FromSlice(vs []*Value) *Value {
	res := &Value{Type: ArrayType}
	res.Values = make([]*Value, len(vs))
	for i, v := range vs {
		v.Parent = res
		v.ParentIndex = i
		res.Values[i] = v
	}
	return res
}

// Get returns the value of the named field in an Object, or nil.
func Get(v *Value, field string) *Value {
	if v.Type != ObjectType {
		return nil
	}
	for i, f := range v.Fields {
		if f.FieldString() == field {
			return v.Values[i]
		}
	}
	return nil
}

// Set assigns (or appends) a field on an Object in place, preserving the
// position of an existing field.
func Set(v *Value, field string, val *Value) {
	val.Parent = v
	val.ParentField = field
	for i, f := range v.Fields {
		if f.FieldString() == field {
			val.ParentIndex = i
			v.Values[i] = val
			return
		}
	}
	idx := len(v.Fields)
	val.ParentIndex = idx
	v.Fields = append(v.Fields, FromString(field))
	v.Values = append(v.Values, val)
}

// Clone deep-copies a Value, detaching it from its original parent.
func (v *Value) Clone() *Value {
	dst := &Value{}
	v.CloneTo(dst)
	dst.Parent = nil
	dst.ParentIndex = 0
	dst.ParentField = ""
	return dst
}

// CloneTo deep-copies v into dst, preserving dst's existing Parent linkage
// fields (callers that need to detach should follow with Clone instead).
func (v *Value) CloneTo(dst *Value) *Value {
	dst.Type = v.Type
	dst.String = v.String
	dst.Bool = v.Bool
	dst.Int64 = v.Int64
	dst.Float64 = v.Float64
	dst.SubstPath = v.SubstPath
	dst.SubstOptional = v.SubstOptional
	dst.Err = v.Err
	dst.Kind = v.Kind
	dst.IncludeSource = v.IncludeSource
	dst.IncludeRef = v.IncludeRef
	dst.IncludeRequired = v.IncludeRequired
	if v.Sep != nil {
		dst.Sep = append([]string(nil), v.Sep...)
	}

	dst.Values = make([]*Value, len(v.Values))
	for i, vv := range v.Values {
		c := &Value{}
		vv.CloneTo(c)
		c.Parent = dst
		c.ParentIndex = i
		c.ParentField = vv.ParentField
		dst.Values[i] = c
	}
	dst.Fields = make([]*Value, len(v.Fields))
	for i, f := range v.Fields {
		c := &Value{}
		f.CloneTo(c)
		c.Parent = dst
		c.ParentIndex = i
		dst.Fields[i] = c
	}
	return dst
}

// Root walks up to the outermost ancestor.
func (v *Value) Root() *Value {
	res := v
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Visit performs a pre/post-order traversal. f is called with isPost=false
// on entry; if it returns dive=true, children are visited; f is then called
// again with isPost=true.
func (v *Value) Visit(f func(node *Value, isPost bool) (bool, error)) error {
	dive, err := f(v, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range v.Values {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(v, true); err != nil {
		return err
	}
	return nil
}
