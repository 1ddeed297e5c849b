package c

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestExtractFunctionWithDoc(t *testing.T) {
	src := []byte(`// Add two integers.
int add(int a, int b) { return a + b; }
`)
	items, err := (Extractor{}).Extract(context.Background(), "math.c", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.Kind != model.KindFunction || it.Name != "add" {
		t.Fatalf("unexpected item %+v", it)
	}
	if it.DocComment != "Add two integers." {
		t.Errorf("expected doc comment, got %q", it.DocComment)
	}
	meta, ok := it.Metadata.(model.CMetadata)
	if !ok {
		t.Fatalf("expected CMetadata, got %T", it.Metadata)
	}
	if meta.ReturnType != "int" {
		t.Errorf("expected return type int, got %q", meta.ReturnType)
	}
	if len(meta.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(meta.Parameters))
	}
}

func TestStaticFunctionIsPrivate(t *testing.T) {
	src := []byte(`static void helper(void) {}`)
	items, err := (Extractor{}).Extract(context.Background(), "util.c", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Visibility != model.Private {
		t.Fatalf("expected static function to be private, got %+v", items)
	}
}

func TestStructFieldsAndBitfield(t *testing.T) {
	src := []byte(`struct Flags {
    int value;
    unsigned flag : 1;
};
`)
	items, err := (Extractor{}).Extract(context.Background(), "flags.h", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Kind != model.KindStruct {
		t.Fatalf("expected 1 struct item, got %+v", items)
	}
	meta := items[0].Metadata.(model.CMetadata)
	if len(meta.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %+v", meta.Fields)
	}
	if meta.Fields[1].Name != "flag" || meta.Fields[1].BitWidth != 1 {
		t.Errorf("unexpected bitfield %+v", meta.Fields[1])
	}
}

func TestEnumVariants(t *testing.T) {
	src := []byte(`enum Color { RED, GREEN, BLUE };`)
	items, err := (Extractor{}).Extract(context.Background(), "color.h", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	count := 0
	for _, it := range items {
		if it.Kind == model.KindEnumVariant {
			count++
		}
	}
	if count != 3 {
		t.Errorf("expected 3 variants, got %d", count)
	}
}

func TestFunctionLikeMacro(t *testing.T) {
	src := []byte(`#define SQUARE(x) ((x) * (x))`)
	items, err := (Extractor{}).Extract(context.Background(), "macros.h", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Kind != model.KindMacro || items[0].Name != "SQUARE" {
		t.Fatalf("unexpected items %+v", items)
	}
	meta := items[0].Metadata.(model.CMetadata)
	if !meta.IsFunctionLikeMacro || len(meta.MacroParameters) != 1 {
		t.Errorf("unexpected macro metadata %+v", meta)
	}
}
