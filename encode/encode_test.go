package encode

import (
	"strings"
	"testing"

	"github.com/hocon-go/hocon/ir"
	"github.com/hocon-go/hocon/merge"
	"github.com/hocon-go/hocon/parse"
	"github.com/hocon-go/hocon/resolve"
)

func resolved(t *testing.T, src string) *ir.Value {
	t.Helper()
	v, err := parse.Parse([]byte(src), parse.Filename("test"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := resolve.Resolve(merge.Tree(v))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return out
}

func TestEncodeObjectAndScalars(t *testing.T) {
	root := resolved(t, `
name = alice
age = 30
active = true
nickname = null
`)
	got := MustString(root)
	for _, want := range []string{`"name": "alice"`, `"age": 30`, `"active": true`, `"nickname": null`} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestEncodeArray(t *testing.T) {
	root := resolved(t, `xs = [1, 2, 3]`)
	got := MustString(root)
	if !strings.Contains(got, "[") || !strings.Contains(got, "1") || !strings.Contains(got, "3") {
		t.Fatalf("got:\n%s", got)
	}
}

func TestEncodeEmptyObjectAndArray(t *testing.T) {
	root := resolved(t, `a = {}
b = []`)
	got := MustString(root)
	if !strings.Contains(got, "{}") || !strings.Contains(got, "[]") {
		t.Fatalf("got:\n%s", got)
	}
}

func TestEncodeStringEscaping(t *testing.T) {
	root := resolved(t, `s = "line1\nline2\"quoted\""`)
	got := MustString(root)
	if !strings.Contains(got, `\n`) || !strings.Contains(got, `\"`) {
		t.Fatalf("got:\n%s", got)
	}
}

func TestEncodeBadValueRendersNull(t *testing.T) {
	root := resolved(t, `a = ${nope}`)
	got := MustString(root)
	if !strings.Contains(got, `"a": null`) {
		t.Fatalf("got:\n%s", got)
	}
}

func TestEncodeWithColorDoesNotError(t *testing.T) {
	root := resolved(t, `a = 1`)
	var b strings.Builder
	if err := Encode(root, &b, WithColor(NewColors())); err != nil {
		t.Fatalf("Encode with color: %v", err)
	}
	if b.Len() == 0 {
		t.Fatalf("expected non-empty output")
	}
}
