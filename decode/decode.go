// Package decode maps a resolved ir.Value onto a Go struct via reflection,
// the record-mapping half of spec.md §4.6. Field correspondence is driven
// by `hocon:"name,options"` tags, defaulting to the lower-cased Go field
// name when no tag is present.
//
// This is deliberately the reflection-driven half only: the teacher's
// schema-registry-aware mapper layer (cross-document schema references,
// `Mode`/`SchemaName`/`Context` tag fields) has no counterpart here, since
// HOCON documents carry no schema language of their own to register against.
package decode

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/hocon-go/hocon/ir"
	"github.com/hocon-go/hocon/query"
)

// Unmarshal walks node (the output of resolve.Resolve) and populates target,
// which must be a non-nil pointer.
func Unmarshal(node *ir.Value, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &Error{Message: "target must be a non-nil pointer"}
	}
	return decodeValue(node, rv.Elem(), "")
}

func decodeValue(node *ir.Value, rv reflect.Value, path string) error {
	if query.IsMissing(node) {
		return nil
	}

	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeValue(node, rv.Elem(), path)
	}

	if rv.Type() == reflect.TypeOf(time.Duration(0)) {
		d, ok := query.Duration(node)
		if !ok {
			return typeErr(path, "duration", node)
		}
		rv.SetInt(int64(d))
		return nil
	}

	switch rv.Kind() {
	case reflect.Struct:
		return decodeStruct(node, rv, path)
	case reflect.String:
		s, ok := query.String(node)
		if !ok {
			return typeErr(path, "string", node)
		}
		rv.SetString(s)
	case reflect.Bool:
		b, ok := query.Bool(node)
		if !ok {
			return typeErr(path, "bool", node)
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := query.Int(node)
		if !ok {
			return typeErr(path, "int", node)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := query.Int(node)
		if !ok || n < 0 {
			return typeErr(path, "uint", node)
		}
		rv.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		f, ok := query.Float(node)
		if !ok {
			return typeErr(path, "float", node)
		}
		rv.SetFloat(f)
	case reflect.Slice:
		return decodeSlice(node, rv, path)
	case reflect.Map:
		return decodeMap(node, rv, path)
	default:
		return &Error{FieldPath: path, Message: fmt.Sprintf("unsupported field kind %s", rv.Kind())}
	}
	return nil
}

func decodeStruct(node *ir.Value, rv reflect.Value, path string) error {
	if node.Type != ir.ObjectType {
		return typeErr(path, "object", node)
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}
		name, opts := parseTag(field.Tag.Get("hocon"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		fieldPath := joinPath(path, name)
		val := ir.Get(node, name)
		if val == nil {
			if opts["required"] {
				return &Error{FieldPath: fieldPath, Message: "required field is missing"}
			}
			continue
		}
		if err := decodeValue(val, rv.Field(i), fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func decodeSlice(node *ir.Value, rv reflect.Value, path string) error {
	arr, ok := query.Array(node)
	if !ok {
		return typeErr(path, "array", node)
	}
	out := reflect.MakeSlice(rv.Type(), len(arr.Values), len(arr.Values))
	for i, e := range arr.Values {
		if err := decodeValue(e, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

func decodeMap(node *ir.Value, rv reflect.Value, path string) error {
	if node.Type != ir.ObjectType {
		return typeErr(path, "object", node)
	}
	if rv.Type().Key().Kind() != reflect.String {
		return &Error{FieldPath: path, Message: "map key must be string"}
	}
	out := reflect.MakeMapWithSize(rv.Type(), len(node.Fields))
	elemType := rv.Type().Elem()
	for i, f := range node.Fields {
		key := f.FieldString()
		elem := reflect.New(elemType).Elem()
		if err := decodeValue(node.Values[i], elem, joinPath(path, key)); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), elem)
	}
	rv.Set(out)
	return nil
}

func parseTag(tag string) (name string, opts map[string]bool) {
	opts = map[string]bool{}
	if tag == "" {
		return "", opts
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, o := range parts[1:] {
		opts[o] = true
	}
	return name, opts
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func typeErr(path, want string, node *ir.Value) error {
	got := "missing"
	if node != nil {
		got = node.Type.String()
	}
	return &Error{FieldPath: path, Message: fmt.Sprintf("expected %s, got %s", want, got)}
}
