// Package resolve eliminates every Substitution and Concat node left after
// package merge, producing a tree that contains only the resolved-tree
// variants from spec.md §3. It implements substitution lookup against the
// merged root (with process-environment fallback), value concatenation
// (string/array/object combination rules), and the self-reference rule
// merge tags onto overriding substitutions.
package resolve

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hocon-go/hocon/debug"
	"github.com/hocon-go/hocon/ir"
	"github.com/hocon-go/hocon/merge"
)

type cacheEntry struct {
	val      *ir.Value
	vanished bool
}

// Resolver holds the state of one resolution pass: the merged root being
// resolved against, a per-node memo cache, and the set of substitution
// paths currently being expanded (for cycle detection).
type Resolver struct {
	root       *ir.Value
	opts       resolveOpts
	cache      map[*ir.Value]cacheEntry
	inProgress map[string]bool
}

// Resolve fully resolves root (the output of merge.Tree) against itself and
// the process environment, per spec.md §4.4.
func Resolve(root *ir.Value, opts ...Option) (*ir.Value, error) {
	o := resolveOpts{systemEnv: true}
	for _, fn := range opts {
		fn(&o)
	}
	r := &Resolver{
		root:       root,
		opts:       o,
		cache:      map[*ir.Value]cacheEntry{},
		inProgress: map[string]bool{},
	}
	out, err := r.resolveExpr(root, "")
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = ir.Null()
	}
	if debug.Resolve() {
		debug.ResolveEvent().Str("type", out.Type.String()).Msg("resolved document")
	}
	return out, nil
}

// resolveExpr resolves node, which is either the whole assignment expression
// for the field named selfPath, or content beneath it that does not
// establish its own path (Concat operands share selfPath; Object fields and
// Array elements get their own scope). A nil result with a nil error means
// node vanished — an optional substitution that resolved to nothing.
func (r *Resolver) resolveExpr(node *ir.Value, selfPath string) (*ir.Value, error) {
	if e, ok := r.cache[node]; ok {
		if e.vanished {
			return nil, nil
		}
		return e.val, nil
	}

	var result *ir.Value
	var err error
	switch node.Type {
	case ir.SubstitutionType:
		result, err = r.resolveSubst(node, selfPath)
	case ir.ConcatType:
		result, err = r.resolveConcat(node, selfPath)
	case ir.ObjectType:
		result, err = r.resolveObject(node, selfPath)
	case ir.ArrayType:
		result, err = r.resolveArray(node)
	default:
		result, err = node, nil
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		r.cache[node] = cacheEntry{vanished: true}
		return nil, nil
	}
	r.cache[node] = cacheEntry{val: result}
	return result, nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func (r *Resolver) resolveObject(node *ir.Value, prefix string) (*ir.Value, error) {
	out := &ir.Value{Type: ir.ObjectType}
	for i, f := range node.Fields {
		key := f.FieldString()
		rv, err := r.resolveExpr(node.Values[i], joinPath(prefix, key))
		if err != nil {
			return nil, err
		}
		if rv == nil {
			continue
		}
		idx := len(out.Fields)
		keyNode := ir.FromString(key)
		keyNode.Parent = out
		keyNode.ParentIndex = idx
		rv.Parent = out
		rv.ParentIndex = idx
		rv.ParentField = key
		out.Fields = append(out.Fields, keyNode)
		out.Values = append(out.Values, rv)
	}
	return out, nil
}

func (r *Resolver) resolveArray(node *ir.Value) (*ir.Value, error) {
	out := &ir.Value{Type: ir.ArrayType}
	for _, e := range node.Values {
		rv, err := r.resolveExpr(e, "")
		if err != nil {
			return nil, err
		}
		if rv == nil {
			continue
		}
		idx := len(out.Values)
		rv.Parent = out
		rv.ParentIndex = idx
		out.Values = append(out.Values, rv)
	}
	return out, nil
}

// resolveSubst resolves one Substitution node. selfPath is the path of the
// field this substitution's assignment belongs to; it lets an untagged
// substitution that names its own field (e.g. `a += 1` on a first
// definition, which desugars to `a = ${?a} [1]` with nothing before it)
// vanish instead of looping back onto the value being computed.
func (r *Resolver) resolveSubst(node *ir.Value, selfPath string) (*ir.Value, error) {
	if node.SelfRefSnapshot != nil {
		return r.resolveExpr(node.SelfRefSnapshot, "")
	}
	if selfPath != "" && node.SubstPath == selfPath {
		if node.SubstOptional {
			return nil, nil
		}
		return r.missing(node)
	}

	path, perr := ir.ParsePath(node.SubstPath)
	if perr != nil {
		if !r.opts.strict {
			return ir.FromBadValue(ir.ParseErrorKind, perr), nil
		}
		return nil, perr
	}

	if r.inProgress[node.SubstPath] {
		if !r.opts.strict {
			return ir.FromBadValue(ir.SubstitutionCycleErrorKind, fmt.Errorf("%w: %s", ErrSubstitutionCycle, node.SubstPath)), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrSubstitutionCycle, node.SubstPath)
	}

	target := ir.Lookup(r.root, path)
	if target == nil {
		if r.opts.systemEnv {
			if ev, ok := os.LookupEnv(node.SubstPath); ok {
				return ir.FromString(ev), nil
			}
		}
		if node.SubstOptional {
			return nil, nil
		}
		return r.missing(node)
	}

	r.inProgress[node.SubstPath] = true
	resolved, err := r.resolveExpr(target, node.SubstPath)
	delete(r.inProgress, node.SubstPath)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		// The target itself vanished (e.g. it was an unset optional
		// substitution); treat this reference the same way.
		if node.SubstOptional {
			return nil, nil
		}
		return r.missing(node)
	}
	return resolved, nil
}

func (r *Resolver) missing(node *ir.Value) (*ir.Value, error) {
	err := fmt.Errorf("%w: %s", ErrMissingKey, node.SubstPath)
	if !r.opts.strict {
		return ir.FromBadValue(ir.MissingKeyErrorKind, err), nil
	}
	return nil, err
}

// resolveConcat resolves a value concatenation, applying the object/array/
// string combination rules in spec.md §4.2 and SPEC_FULL.md's Open Question
// resolution (interior whitespace preserved verbatim; null stringifies as
// "null" alongside strings but is incompatible with object/array operands).
func (r *Resolver) resolveConcat(node *ir.Value, selfPath string) (*ir.Value, error) {
	type piece struct {
		val       *ir.Value
		sepBefore string
	}
	var pieces []piece
	for i, op := range node.Values {
		rv, err := r.resolveExpr(op, selfPath)
		if err != nil {
			return nil, err
		}
		sep := ""
		if i > 0 {
			sep = node.Sep[i-1]
		}
		if rv == nil {
			continue
		}
		pieces = append(pieces, piece{rv, sep})
	}
	if len(pieces) == 0 {
		return nil, nil
	}
	if len(pieces) == 1 {
		return pieces[0].val, nil
	}

	allObj, allArr := true, true
	for _, p := range pieces {
		if p.val.Type != ir.ObjectType {
			allObj = false
		}
		if p.val.Type != ir.ArrayType {
			allArr = false
		}
	}
	switch {
	case allObj:
		acc := pieces[0].val
		for _, p := range pieces[1:] {
			acc = merge.MergeValues(acc, p.val)
		}
		return acc, nil
	case allArr:
		out := &ir.Value{Type: ir.ArrayType}
		for _, p := range pieces {
			for _, e := range p.val.Values {
				idx := len(out.Values)
				e.Parent = out
				e.ParentIndex = idx
				out.Values = append(out.Values, e)
			}
		}
		return out, nil
	default:
		for _, p := range pieces {
			if p.val.Type == ir.ObjectType || p.val.Type == ir.ArrayType {
				return r.incompatible(node)
			}
		}
		var sb strings.Builder
		for i, p := range pieces {
			if i > 0 {
				sb.WriteString(p.sepBefore)
			}
			sb.WriteString(stringForm(p.val))
		}
		return ir.FromString(sb.String()), nil
	}
}

func (r *Resolver) incompatible(node *ir.Value) (*ir.Value, error) {
	err := fmt.Errorf("%w at concatenation", ErrIncompatibleConcat)
	if !r.opts.strict {
		return ir.FromBadValue(ir.IncompatibleConcatErrorKind, err), nil
	}
	return nil, err
}

func stringForm(v *ir.Value) string {
	switch v.Type {
	case ir.StringType:
		return v.String
	case ir.IntegerType:
		return strconv.FormatInt(v.Int64, 10)
	case ir.RealType:
		return strconv.FormatFloat(v.Float64, 'g', -1, 64)
	case ir.BooleanType:
		if v.Bool {
			return "true"
		}
		return "false"
	case ir.NullType:
		return "null"
	default:
		return ""
	}
}
