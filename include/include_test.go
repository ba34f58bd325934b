package include

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hocon-go/hocon/ir"
	"github.com/hocon-go/hocon/merge"
	"github.com/hocon-go/hocon/parse"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestSpliceUnqualifiedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.conf", `b = 2`)
	root, err := parse.Parse([]byte(`a = 1
include "extra.conf"`), parse.Filename("root"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewResolver(BaseDir(dir))
	out, err := r.Splice(root)
	if err != nil {
		t.Fatalf("splice: %v", err)
	}
	if len(out.Fields) != 2 {
		t.Fatalf("got %+v", out.Fields)
	}
	if out.Fields[1].FieldString() != "b" || out.Values[1].Int64 != 2 {
		t.Fatalf("got %+v", out.Values[1])
	}
}

func TestSpliceExtensionProbing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.json", `{"b": 2}`)
	root, err := parse.Parse([]byte(`include "extra"`), parse.Filename("root"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewResolver(BaseDir(dir))
	out, err := r.Splice(root)
	if err != nil {
		t.Fatalf("splice: %v", err)
	}
	if len(out.Fields) != 1 || out.Fields[0].FieldString() != "b" {
		t.Fatalf("got %+v", out.Fields)
	}
}

func TestSpliceExtensionProbingMergesAllVariants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.properties", "a=from-properties\nb=from-properties\n")
	writeFile(t, dir, "extra.json", `{"b": "from-json", "c": "from-json"}`)
	writeFile(t, dir, "extra.conf", `c = from-hocon`)
	root, err := parse.Parse([]byte(`include "extra"`), parse.Filename("root"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewResolver(BaseDir(dir))
	spliced, err := r.Splice(root)
	if err != nil {
		t.Fatalf("splice: %v", err)
	}
	// Splice only concatenates the three variants' fields in
	// properties -> json -> hocon order; package merge (run by the caller
	// over the whole tree next) is what folds the duplicate keys, keeping
	// the later value.
	seen := map[string][]string{}
	for i, f := range spliced.Fields {
		key := f.FieldString()
		seen[key] = append(seen[key], spliced.Values[i].String)
	}
	if got := seen["a"]; len(got) != 1 || got[0] != "from-properties" {
		t.Fatalf("a: got %v", got)
	}
	if got := seen["b"]; len(got) != 2 || got[0] != "from-properties" || got[1] != "from-json" {
		t.Fatalf("expected properties' b then json's b, got %v", got)
	}
	if got := seen["c"]; len(got) != 2 || got[0] != "from-json" || got[1] != "from-hocon" {
		t.Fatalf("expected json's c then hocon's c, got %v", got)
	}

	merged := merge.Tree(spliced)
	final := map[string]string{}
	for i, f := range merged.Fields {
		final[f.FieldString()] = merged.Values[i].String
	}
	if final["a"] != "from-properties" || final["b"] != "from-json" || final["c"] != "from-hocon" {
		t.Fatalf("got %+v", final)
	}
}

func TestSpliceOptionalMissingSkipped(t *testing.T) {
	dir := t.TempDir()
	root, err := parse.Parse([]byte(`a = 1
include "nope.conf"`), parse.Filename("root"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewResolver(BaseDir(dir))
	out, err := r.Splice(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Fields) != 1 {
		t.Fatalf("expected missing optional include to vanish, got %+v", out.Fields)
	}
}

func TestSpliceRequiredMissingErrors(t *testing.T) {
	dir := t.TempDir()
	root, err := parse.Parse([]byte(`include required("nope.conf")`), parse.Filename("root"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewResolver(BaseDir(dir))
	if _, err := r.Splice(root); err == nil {
		t.Fatalf("expected error for missing required include")
	}
}

func TestSpliceCycleDetected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.conf", `include "b.conf"`)
	writeFile(t, dir, "b.conf", `include "a.conf"`)
	root, err := parse.Parse([]byte(`include "a.conf"`), parse.Filename("root"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewResolver(BaseDir(dir))
	if _, err := r.Splice(root); err == nil {
		t.Fatalf("expected cycle error")
	}
}

func TestSplicePropertiesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.properties", "a.b.c=hello\n")
	root, err := parse.Parse([]byte(`include "extra.properties"`), parse.Filename("root"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewResolver(BaseDir(dir))
	out, err := r.Splice(root)
	if err != nil {
		t.Fatalf("splice: %v", err)
	}
	if len(out.Fields) != 1 || out.Fields[0].FieldString() != "a" {
		t.Fatalf("got %+v", out.Fields)
	}
	inner := out.Values[0]
	if inner.Fields[0].FieldString() != "b" {
		t.Fatalf("got %+v", inner)
	}
	leaf := inner.Values[0].Values[0]
	if leaf.Type != ir.StringType || leaf.String != "hello" {
		t.Fatalf("got %+v", leaf)
	}
}

func TestSpliceNestedInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.conf", `b { include "nested.conf" }`)
	writeFile(t, dir, "nested.conf", `c = 3`)
	root, err := parse.Parse([]byte(`include "extra.conf"`), parse.Filename("root"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewResolver(BaseDir(dir))
	out, err := r.Splice(root)
	if err != nil {
		t.Fatalf("splice: %v", err)
	}
	b := out.Values[0]
	if b.Type != ir.ObjectType || len(b.Fields) != 1 || b.Fields[0].FieldString() != "c" {
		t.Fatalf("got %+v", b)
	}
}
