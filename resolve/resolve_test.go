package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hocon-go/hocon/ir"
	"github.com/hocon-go/hocon/merge"
	"github.com/hocon-go/hocon/parse"
)

// ignoreParentage excludes ir.Value's back-references to its parent node,
// which would otherwise turn the tree into a cyclic graph go-cmp can't walk.
var ignoreParentage = cmpopts.IgnoreFields(ir.Value{}, "Parent", "ParentIndex", "ParentField")

func mergedFrom(t *testing.T, src string) *ir.Value {
	t.Helper()
	v, err := parse.Parse([]byte(src), parse.Filename("test"))
	if err != nil {
		t.Fatalf("parse.Parse(%q): %v", src, err)
	}
	return merge.Tree(v)
}

func TestResolveSelfReferenceAppend(t *testing.T) {
	v := mergedFrom(t, `a = [1]
a = ${a} [2]`)
	out, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	got := ir.Get(out, "a")
	if got.Type != ir.ArrayType || len(got.Values) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Values[0].Int64 != 1 || got.Values[1].Int64 != 2 {
		t.Fatalf("got values %v %v", got.Values[0], got.Values[1])
	}
}

func TestResolvePlusEqOnFreshKey(t *testing.T) {
	v := mergedFrom(t, `a += 1`)
	out, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	got := ir.Get(out, "a")
	if got.Type != ir.ArrayType || len(got.Values) != 1 || got.Values[0].Int64 != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestResolveSubstitutionAcrossFields(t *testing.T) {
	v := mergedFrom(t, `a = 1
b = ${a}`)
	out, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ir.Get(out, "b").Int64 != 1 {
		t.Fatalf("got %+v", ir.Get(out, "b"))
	}
}

func TestResolveEnvironmentFallback(t *testing.T) {
	t.Setenv("HOCON_RESOLVE_TEST_VAR", "from-env")
	v := mergedFrom(t, `a = ${HOCON_RESOLVE_TEST_VAR}`)
	out, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ir.Get(out, "a").String != "from-env" {
		t.Fatalf("got %+v", ir.Get(out, "a"))
	}
}

func TestResolveEnvironmentDisabled(t *testing.T) {
	t.Setenv("HOCON_RESOLVE_TEST_VAR", "from-env")
	v := mergedFrom(t, `a = ${HOCON_RESOLVE_TEST_VAR}`)
	if _, err := Resolve(v, UseSystem(false), Strict(true)); err == nil {
		t.Fatalf("expected missing-key error with system env disabled")
	}
}

func TestResolveMissingRequiredStrictError(t *testing.T) {
	v := mergedFrom(t, `a = ${nope}`)
	if _, err := Resolve(v, Strict(true)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestResolveMissingRequiredLenientBadValue(t *testing.T) {
	v := mergedFrom(t, `a = ${nope}`)
	out, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ir.Get(out, "a").Type != ir.BadValueType {
		t.Fatalf("got %+v", ir.Get(out, "a"))
	}
}

func TestResolveMissingOptionalVanishes(t *testing.T) {
	v := mergedFrom(t, `a = ${?nope}
b = 2`)
	out, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ir.Get(out, "a") != nil {
		t.Fatalf("expected a to vanish, got %+v", ir.Get(out, "a"))
	}
	if ir.Get(out, "b").Int64 != 2 {
		t.Fatalf("got %+v", ir.Get(out, "b"))
	}
}

func TestResolveSubstitutionCycle(t *testing.T) {
	v := mergedFrom(t, `a = ${b}
b = ${a}`)
	if _, err := Resolve(v, Strict(true)); err == nil {
		t.Fatalf("expected cycle error")
	}
}

func TestResolveObjectConcatDeepMerges(t *testing.T) {
	v := mergedFrom(t, `x = { a: 1 } { b: 2 }`)
	out, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	x := ir.Get(out, "x")
	if ir.Get(x, "a").Int64 != 1 || ir.Get(x, "b").Int64 != 2 {
		t.Fatalf("got %+v", x)
	}
}

func TestResolveStringConcatPreservesInteriorWhitespace(t *testing.T) {
	v := mergedFrom(t, `x = foo   bar`)
	out, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := ir.Get(out, "x").String; got != "foo   bar" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveIncompatibleConcatStrictError(t *testing.T) {
	v := mergedFrom(t, `x = { a: 1 } [1, 2]`)
	if _, err := Resolve(v, Strict(true)); err == nil {
		t.Fatalf("expected incompatible concat error")
	}
}

func TestResolveIncompatibleConcatLenientBadValue(t *testing.T) {
	v := mergedFrom(t, `x = { a: 1 } [1, 2]`)
	out, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ir.Get(out, "x").Type != ir.BadValueType {
		t.Fatalf("got %+v", ir.Get(out, "x"))
	}
}

func TestResolveIdempotentOnAlreadyResolvedTree(t *testing.T) {
	v := mergedFrom(t, `a = 1
b = ${a}`)
	once, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	twice, err := Resolve(once)
	if err != nil {
		t.Fatalf("Resolve (again): %v", err)
	}
	if diff := cmp.Diff(once, twice, ignoreParentage); diff != "" {
		t.Fatalf("re-resolving an already-resolved tree changed it (-once +twice):\n%s", diff)
	}
}
