package lua

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestExtractLocalFunctionWithDoc(t *testing.T) {
	src := []byte(`-- Adds two numbers.
local function add(a, b)
  return a + b
end
`)
	items, err := (Extractor{}).Extract(context.Background(), "math.lua", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "add" {
		t.Fatalf("unexpected items %+v", items)
	}
	if items[0].DocComment != "Adds two numbers." {
		t.Errorf("expected doc comment, got %q", items[0].DocComment)
	}
	meta := items[0].Metadata.(model.LuaMetadata)
	if !meta.IsLocal {
		t.Errorf("expected local function, got %+v", meta)
	}
}

func TestMethodIndexFunction(t *testing.T) {
	src := []byte(`function Widget:draw()
end
`)
	items, err := (Extractor{}).Extract(context.Background(), "widget.lua", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Kind != model.KindMethod {
		t.Fatalf("unexpected items %+v", items)
	}
	if items[0].QualifiedName != "Widget:draw" {
		t.Errorf("expected qualified name Widget:draw, got %q", items[0].QualifiedName)
	}
	meta := items[0].Metadata.(model.LuaMetadata)
	if !meta.IsReceiver || meta.Parent != "Widget" {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestDotIndexFunction(t *testing.T) {
	src := []byte(`function Utils.trim(s)
end
`)
	items, err := (Extractor{}).Extract(context.Background(), "utils.lua", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].QualifiedName != "Utils.trim" {
		t.Fatalf("unexpected items %+v", items)
	}
}
