package encode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hocon-go/hocon/ir"
)

// ErrEncoding is returned when Encode is asked to render a tree that still
// carries intermediate-only node types (Substitution/Concat/Include) —
// meaning it was never passed through resolve.Resolve.
var ErrEncoding = errors.New("hocon: cannot encode unresolved value")

type encState struct {
	indent int
	color  *Colors
}

// Encode writes node to w as canonical, indented JSON. node must be a fully
// resolved tree (the output of resolve.Resolve); a BadValue node (a
// lenient-mode deferred error) renders as JSON null, matching the rule that
// typed accessors read it as "none".
func Encode(node *ir.Value, w io.Writer, opts ...Option) error {
	es := &encState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if err := encodeValue(node, w, es, 0); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}

// MustString renders node to a string, panicking on error. Useful in tests
// and CLI code paths that already know the tree is resolved.
func MustString(node *ir.Value) string {
	var b strings.Builder
	if err := Encode(node, &b); err != nil {
		panic(err)
	}
	return strings.TrimSpace(b.String())
}

func encodeValue(node *ir.Value, w io.Writer, es *encState, depth int) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es, depth)
	case ir.ArrayType:
		return encodeArray(node, w, es, depth)
	case ir.StringType:
		return writeQuoted(w, es, StringColor, node.String)
	case ir.IntegerType:
		return writeToken(w, es, NumberColor, strconv.FormatInt(node.Int64, 10))
	case ir.RealType:
		return writeToken(w, es, NumberColor, strconv.FormatFloat(node.Float64, 'g', -1, 64))
	case ir.BooleanType:
		return writeToken(w, es, BoolColor, strconv.FormatBool(node.Bool))
	case ir.NullType, ir.BadValueType:
		return writeToken(w, es, NullColor, "null")
	default:
		return fmt.Errorf("%w: %s", ErrEncoding, node.Type)
	}
}

func encodeObject(node *ir.Value, w io.Writer, es *encState, depth int) error {
	if len(node.Fields) == 0 {
		return writeToken(w, es, PunctColor, "{}")
	}
	if err := writeToken(w, es, PunctColor, "{"); err != nil {
		return err
	}
	for i, f := range node.Fields {
		if err := newline(w, es, depth+1); err != nil {
			return err
		}
		if err := writeQuoted(w, es, FieldColor, f.FieldString()); err != nil {
			return err
		}
		if err := writeToken(w, es, PunctColor, ": "); err != nil {
			return err
		}
		if err := encodeValue(node.Values[i], w, es, depth+1); err != nil {
			return err
		}
		if i < len(node.Fields)-1 {
			if err := writeToken(w, es, PunctColor, ","); err != nil {
				return err
			}
		}
	}
	if err := newline(w, es, depth); err != nil {
		return err
	}
	return writeToken(w, es, PunctColor, "}")
}

func encodeArray(node *ir.Value, w io.Writer, es *encState, depth int) error {
	if len(node.Values) == 0 {
		return writeToken(w, es, PunctColor, "[]")
	}
	if err := writeToken(w, es, PunctColor, "["); err != nil {
		return err
	}
	for i, e := range node.Values {
		if err := newline(w, es, depth+1); err != nil {
			return err
		}
		if err := encodeValue(e, w, es, depth+1); err != nil {
			return err
		}
		if i < len(node.Values)-1 {
			if err := writeToken(w, es, PunctColor, ","); err != nil {
				return err
			}
		}
	}
	if err := newline(w, es, depth); err != nil {
		return err
	}
	return writeToken(w, es, PunctColor, "]")
}

func newline(w io.Writer, es *encState, depth int) error {
	_, err := w.Write([]byte("\n" + strings.Repeat(" ", depth*es.indent)))
	return err
}

func writeToken(w io.Writer, es *encState, attr ColorAttr, s string) error {
	_, err := w.Write([]byte(es.color.apply(attr, s)))
	return err
}

// writeQuoted JSON-escapes s and writes it under the given color role.
// encoding/json's string marshaling is reused here purely for its escaping
// table (surrogate pairs, control characters); nothing else in this package
// touches encoding/json.
func writeQuoted(w io.Writer, es *encState, attr ColorAttr, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return writeToken(w, es, attr, string(b))
}
