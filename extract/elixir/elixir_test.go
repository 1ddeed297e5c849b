package elixir

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestModuleWithFunction(t *testing.T) {
	src := []byte(`defmodule Greeter do
  @doc "Says hello."
  def greet(name) do
    "hi " <> name
  end
end
`)
	items, err := (Extractor{}).Extract(context.Background(), "greeter.ex", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var mod, fn *model.ParsedItem
	for i := range items {
		switch items[i].Kind {
		case model.KindModule:
			mod = &items[i]
		case model.KindFunction:
			fn = &items[i]
		}
	}
	if mod == nil || mod.Name != "Greeter" {
		t.Fatalf("expected module Greeter, got %+v", mod)
	}
	if fn == nil || fn.Name != "greet" {
		t.Fatalf("expected function greet, got %+v", fn)
	}
	if fn.DocComment != "Says hello." {
		t.Errorf("expected doc comment, got %q", fn.DocComment)
	}
	if fn.ParentID != mod.ID {
		t.Errorf("expected function parented to module")
	}
}

func TestMultiClauseDefMerges(t *testing.T) {
	src := []byte(`defmodule Shapes do
  def area(0) do
    0
  end

  def area(radius) when radius > 0 do
    radius * radius
  end
end
`)
	items, err := (Extractor{}).Extract(context.Background(), "shapes.ex", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var fn *model.ParsedItem
	count := 0
	for i := range items {
		if items[i].Kind == model.KindFunction {
			fn = &items[i]
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected multi-clause def to merge into 1 item, got %d", count)
	}
	meta := fn.Metadata.(model.ElixirMetadata)
	if len(meta.Clauses) != 2 {
		t.Fatalf("expected 2 merged clauses, got %+v", meta.Clauses)
	}
	if meta.Clauses[1].Guard == "" {
		t.Errorf("expected second clause to carry its guard, got %+v", meta.Clauses[1])
	}
}

func TestPrivateDefp(t *testing.T) {
	src := []byte(`defmodule Helpers do
  defp secret(x) do
    x
  end
end
`)
	items, err := (Extractor{}).Extract(context.Background(), "helpers.ex", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var fn *model.ParsedItem
	for i := range items {
		if items[i].Kind == model.KindFunction {
			fn = &items[i]
		}
	}
	if fn == nil || fn.Visibility != model.Private {
		t.Fatalf("expected private defp, got %+v", fn)
	}
}
