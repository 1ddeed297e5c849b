package svelte

import (
	"context"
	"testing"

	_ "github.com/roveo/codextract/extract/typescript"
	"github.com/roveo/codextract/model"
)

func TestExtractScriptSegmentDispatchesToTypeScript(t *testing.T) {
	src := []byte(`<script lang="ts">
  export function greet(name: string): string {
    return "hi " + name;
  }
</script>

<h1>Hello</h1>
`)
	items, err := (Extractor{}).Extract(context.Background(), "App.svelte", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var segment, fn *model.ParsedItem
	for i := range items {
		switch {
		case items[i].Kind == model.KindSegment:
			segment = &items[i]
		case items[i].Kind == model.KindFunction:
			fn = &items[i]
		}
	}
	if segment == nil || segment.Name != "script_instance" {
		t.Fatalf("expected script_instance segment, got %+v", segment)
	}
	if fn == nil || fn.Name != "greet" {
		t.Fatalf("expected dispatched function greet, got %+v", items)
	}
	if fn.Language != "typescript" {
		t.Errorf("expected dispatched item to keep typescript language, got %q", fn.Language)
	}
}

func TestModuleContextSegment(t *testing.T) {
	src := []byte(`<script context="module">
  export const VERSION = "1.0";
</script>
`)
	items, err := (Extractor{}).Extract(context.Background(), "App.svelte", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var segment *model.ParsedItem
	for i := range items {
		if items[i].Kind == model.KindSegment {
			segment = &items[i]
		}
	}
	if segment == nil || segment.Name != "script_module" {
		t.Fatalf("expected script_module segment, got %+v", segment)
	}
}

func TestStyleSegment(t *testing.T) {
	src := []byte(`<style>
  h1 { color: red; }
</style>
`)
	items, err := (Extractor{}).Extract(context.Background(), "App.svelte", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "style" {
		t.Fatalf("expected single style segment, got %+v", items)
	}
}
