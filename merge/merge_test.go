package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hocon-go/hocon/ir"
	"github.com/hocon-go/hocon/parse"
)

// ignoreParentage excludes ir.Value's back-references to its parent node,
// which would otherwise turn the tree into a cyclic graph go-cmp can't walk.
var ignoreParentage = cmpopts.IgnoreFields(ir.Value{}, "Parent", "ParentIndex", "ParentField")

func mergeSrc(t *testing.T, src string) *ir.Value {
	t.Helper()
	v, err := parse.Parse([]byte(src), parse.Filename("test"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Tree(v)
}

func TestMergeScalarOverride(t *testing.T) {
	v := mergeSrc(t, "a = 1\na = 2")
	if len(v.Fields) != 1 {
		t.Fatalf("expected duplicate key collapsed, got %+v", v.Fields)
	}
	if v.Values[0].Int64 != 2 {
		t.Fatalf("expected later scalar to win, got %+v", v.Values[0])
	}
}

func TestMergeObjectDeepMerge(t *testing.T) {
	v := mergeSrc(t, `a { x = 1 }
a { y = 2 }`)
	if len(v.Fields) != 1 {
		t.Fatalf("got %+v", v.Fields)
	}
	inner := v.Values[0]
	if len(inner.Fields) != 2 {
		t.Fatalf("expected both x and y present after deep merge, got %+v", inner.Fields)
	}
}

func TestMergeObjectThenScalarReplaces(t *testing.T) {
	v := mergeSrc(t, `a { x = 1 }
a = 2`)
	if len(v.Fields) != 1 {
		t.Fatalf("got %+v", v.Fields)
	}
	if v.Values[0].Type != ir.IntegerType || v.Values[0].Int64 != 2 {
		t.Fatalf("expected scalar to fully replace prior object, got %+v", v.Values[0])
	}
}

func TestMergeNestedDeepMergeAcrossLevels(t *testing.T) {
	v := mergeSrc(t, `a { b { x = 1 } }
a { b { y = 2 } }`)
	b := v.Values[0].Values[0]
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("x"), Val: ir.FromInt(1)},
		{Key: ir.FromString("y"), Val: ir.FromInt(2)},
	})
	if diff := cmp.Diff(want, b, ignoreParentage); diff != "" {
		t.Fatalf("nested deep merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergePreservesFieldOrder(t *testing.T) {
	v := mergeSrc(t, "a = 1\nb = 2\na = 3")
	if len(v.Fields) != 2 {
		t.Fatalf("got %+v", v.Fields)
	}
	if v.Fields[0].FieldString() != "a" || v.Fields[1].FieldString() != "b" {
		t.Fatalf("expected first-occurrence order preserved, got %+v", v.Fields)
	}
	if v.Values[0].Int64 != 3 {
		t.Fatalf("expected a's later value to win in place, got %+v", v.Values[0])
	}
}
