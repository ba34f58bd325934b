package arraypp

import "testing"

import "github.com/hocon-go/hocon/ir"

func TestAsArrayPassesThroughRealArray(t *testing.T) {
	a := ir.FromSlice([]*ir.Value{ir.FromInt(1), ir.FromInt(2)})
	out, ok := AsArray(a)
	if !ok || out != a {
		t.Fatalf("expected passthrough, got %+v ok=%v", out, ok)
	}
}

func TestAsArrayConvertsNumericKeyedObject(t *testing.T) {
	obj := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromInt(2), Val: ir.FromString("c")},
		{Key: ir.FromInt(0), Val: ir.FromString("a")},
		{Key: ir.FromInt(1), Val: ir.FromString("b")},
	})
	out, ok := AsArray(obj)
	if !ok {
		t.Fatalf("expected conversion")
	}
	if len(out.Values) != 3 {
		t.Fatalf("got %d values", len(out.Values))
	}
	for i, want := range []string{"a", "b", "c"} {
		if out.Values[i].String != want {
			t.Fatalf("index %d: got %q want %q", i, out.Values[i].String, want)
		}
	}
}

func TestAsArrayCompactsSparseIndices(t *testing.T) {
	obj := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromInt(5), Val: ir.FromString("x")},
		{Key: ir.FromInt(1), Val: ir.FromString("y")},
	})
	out, ok := AsArray(obj)
	if !ok || len(out.Values) != 2 {
		t.Fatalf("expected compacted 2-element array, got %+v ok=%v", out, ok)
	}
	if out.Values[0].String != "y" || out.Values[1].String != "x" {
		t.Fatalf("got %q %q", out.Values[0].String, out.Values[1].String)
	}
}

func TestAsArrayRejectsMixedKeys(t *testing.T) {
	obj := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromInt(0), Val: ir.FromString("a")},
		{Key: ir.FromString("name"), Val: ir.FromString("b")},
	})
	if _, ok := AsArray(obj); ok {
		t.Fatalf("expected non-convertible object")
	}
}

func TestAsArrayRejectsScalar(t *testing.T) {
	if _, ok := AsArray(ir.FromInt(1)); ok {
		t.Fatalf("expected non-convertible scalar")
	}
}
