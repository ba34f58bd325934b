package ir

// Type discriminates the tagged union a Value node carries.
//
// NullType through ObjectType and ArrayType are the resolved-tree variants
// from spec.md §3. SubstitutionType and ConcatType exist only in the
// intermediate tree produced by parse and consumed by resolve; a fully
// resolved tree never contains them. BadValueType carries a deferred error
// and appears only when the pipeline runs in lenient mode.
type Type int

const (
	NullType Type = iota
	BooleanType
	IntegerType
	RealType
	StringType
	ArrayType
	ObjectType
	SubstitutionType
	ConcatType
	BadValueType
	IncludeType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:         "Null",
		BooleanType:      "Boolean",
		IntegerType:      "Integer",
		RealType:         "Real",
		StringType:       "String",
		ArrayType:        "Array",
		ObjectType:       "Object",
		SubstitutionType: "Substitution",
		ConcatType:       "Concat",
		BadValueType:     "BadValue",
		IncludeType:      "Include",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IsLeaf reports whether the type carries no children.
func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType, ConcatType, IncludeType:
		return false
	default:
		return true
	}
}

// IsIntermediate reports whether the type only ever appears in the
// intermediate tree, never in a resolved tree.
func (t Type) IsIntermediate() bool {
	return t == SubstitutionType || t == ConcatType || t == IncludeType
}
