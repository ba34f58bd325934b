package decode

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

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

type serverConfig struct {
	Host    string        `hocon:"host"`
	Port    int64         `hocon:"port"`
	Timeout time.Duration `hocon:"timeout"`
	Tags    []string      `hocon:"tags"`
}

func TestUnmarshalStruct(t *testing.T) {
	root := resolved(t, `
host = localhost
port = 8080
timeout = 30s
tags = [a, b, c]
`)
	var cfg serverConfig
	if err := Unmarshal(root, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := serverConfig{
		Host:    "localhost",
		Port:    8080,
		Timeout: 30 * time.Second,
		Tags:    []string{"a", "b", "c"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("decoded struct mismatch (-want +got):\n%s", diff)
	}
}

type nested struct {
	Server serverConfig `hocon:"server"`
}

func TestUnmarshalNestedStruct(t *testing.T) {
	root := resolved(t, `
server {
  host = db
  port = 5432
  timeout = 1m
}
`)
	var cfg nested
	if err := Unmarshal(root, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.Server.Host != "db" || cfg.Server.Timeout != time.Minute {
		t.Fatalf("got %+v", cfg.Server)
	}
}

func TestUnmarshalRequiredFieldMissing(t *testing.T) {
	type withRequired struct {
		Name string `hocon:"name,required"`
	}
	root := resolved(t, `other = 1`)
	var v withRequired
	if err := Unmarshal(root, &v); err == nil {
		t.Fatalf("expected error for missing required field")
	}
}

func TestUnmarshalMapField(t *testing.T) {
	type withMap struct {
		Env map[string]string `hocon:"env"`
	}
	root := resolved(t, `env { A = "1", B = "2" }`)
	var v withMap
	if err := Unmarshal(root, &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Env["A"] != "1" || v.Env["B"] != "2" {
		t.Fatalf("got %+v", v.Env)
	}
}

func TestUnmarshalSkipsDashTaggedField(t *testing.T) {
	type withSkip struct {
		Name string `hocon:"-"`
	}
	root := resolved(t, `name = whatever`)
	var v withSkip
	if err := Unmarshal(root, &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Name != "" {
		t.Fatalf("expected skip, got %q", v.Name)
	}
}
