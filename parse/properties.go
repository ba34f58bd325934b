package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hocon-go/hocon/ir"
)

// ParseProperties parses a Java `.properties` file into an Object, inflating
// each dotted key into nested objects (spec.md's on-disk input section).
// Duplicate prefixes across lines are folded by the merge pass the same way
// duplicate HOCON keys are, since each line becomes its own top-level field.
func ParseProperties(src []byte) (*ir.Value, error) {
	obj := &ir.Value{Type: ir.ObjectType}
	lines, err := logicalLines(src)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		key, val, err := splitProperty(line)
		if err != nil {
			return nil, err
		}
		if key == "" {
			continue
		}
		path, err := ir.ParsePath(escapePropertyPathSegments(key))
		if err != nil {
			return nil, fmt.Errorf("hocon: invalid properties key %q: %w", key, err)
		}
		leaf := ir.FromString(val)
		wrapped := ir.WrapPath(path, leaf)
		idx := len(obj.Fields)
		keyNode := ir.FromString(path[0].Key)
		keyNode.Parent = obj
		keyNode.ParentIndex = idx
		wrapped.Parent = obj
		wrapped.ParentIndex = idx
		wrapped.ParentField = path[0].Key
		obj.Fields = append(obj.Fields, keyNode)
		obj.Values = append(obj.Values, wrapped)
	}
	return obj, nil
}

// escapePropertyPathSegments quotes any segment of a properties key that
// itself contains a literal quote, so ir.ParsePath's dotted splitting sees
// a well-formed path string; properties keys otherwise split on '.' as-is.
func escapePropertyPathSegments(key string) string {
	if !strings.Contains(key, `"`) {
		return key
	}
	segs := strings.Split(key, ".")
	for i, s := range segs {
		if strings.Contains(s, `"`) {
			segs[i] = `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
		}
	}
	return strings.Join(segs, ".")
}

// logicalLines joins backslash-continued physical lines into logical ones
// and drops comment (# or !) and blank lines.
func logicalLines(src []byte) ([]string, error) {
	raw := strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")
	var out []string
	var pending strings.Builder
	continuing := false
	for _, line := range raw {
		if !continuing {
			trimmed := strings.TrimLeft(line, " \t")
			if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
				continue
			}
			pending.Reset()
			pending.WriteString(trimmed)
		} else {
			pending.WriteString(strings.TrimLeft(line, " \t\f"))
		}
		s := pending.String()
		if n := trailingBackslashes(s); n%2 == 1 {
			pending.Reset()
			pending.WriteString(s[:len(s)-1])
			continuing = true
			continue
		}
		continuing = false
		out = append(out, pending.String())
	}
	return out, nil
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// splitProperty splits one logical line into an unescaped key and value,
// per the properties format's mix of '=', ':', and whitespace separators.
func splitProperty(line string) (key, val string, err error) {
	i := 0
	n := len(line)
	for i < n {
		c := line[i]
		if c == '\\' && i+1 < n {
			i += 2
			continue
		}
		if c == '=' || c == ':' || c == ' ' || c == '\t' || c == '\f' {
			break
		}
		i++
	}
	rawKey := line[:i]
	rest := strings.TrimLeft(line[i:], " \t\f")
	if len(rest) > 0 && (rest[0] == '=' || rest[0] == ':') {
		rest = strings.TrimLeft(rest[1:], " \t\f")
	}
	k, err := unescapeProperty(rawKey)
	if err != nil {
		return "", "", err
	}
	v, err := unescapeProperty(rest)
	if err != nil {
		return "", "", err
	}
	return k, v, nil
}

func unescapeProperty(s string) (string, error) {
	var b strings.Builder
	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= n {
			b.WriteByte('\\')
			i++
			continue
		}
		e := s[i+1]
		switch e {
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case '\\', ':', '=', ' ':
			b.WriteByte(e)
			i += 2
		case 'u':
			if i+6 > n {
				return "", fmt.Errorf("hocon: short \\u escape in properties key/value")
			}
			v, perr := strconv.ParseUint(s[i+2:i+6], 16, 32)
			if perr != nil {
				return "", fmt.Errorf("hocon: invalid \\u escape: %w", perr)
			}
			b.WriteRune(rune(v))
			i += 6
		default:
			b.WriteByte(e)
			i += 2
		}
	}
	return b.String(), nil
}
