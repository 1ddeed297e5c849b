package java

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestExtractClassAndMethod(t *testing.T) {
	src := []byte(`public class Greeter {
    /**
     * Says hello.
     */
    public String greet(String name) {
        return "hi " + name;
    }

    private int count;
}
`)
	items, err := (Extractor{}).Extract(context.Background(), "Greeter.java", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var cls, method, field *model.ParsedItem
	for i := range items {
		switch items[i].Kind {
		case model.KindClass:
			cls = &items[i]
		case model.KindMethod:
			method = &items[i]
		case model.KindField:
			field = &items[i]
		}
	}
	if cls == nil || cls.Name != "Greeter" || cls.Visibility != model.Public {
		t.Fatalf("unexpected class item %+v", cls)
	}
	if method == nil || method.Name != "greet" || method.DocComment != "Says hello." {
		t.Fatalf("unexpected method item %+v", method)
	}
	if method.ParentID != cls.ID {
		t.Errorf("expected method parented to class")
	}
	meta := method.Metadata.(model.JavaMetadata)
	if meta.ReturnType != "String" || len(meta.Parameters) != 1 {
		t.Errorf("unexpected method metadata %+v", meta)
	}
	if field == nil || field.Visibility != model.Private {
		t.Fatalf("unexpected field item %+v", field)
	}
}

func TestPackagePrivateDefault(t *testing.T) {
	src := []byte(`class Internal {}`)
	items, err := (Extractor{}).Extract(context.Background(), "Internal.java", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Visibility != model.Package {
		t.Fatalf("expected package-private default, got %+v", items)
	}
}

func TestRecordComponents(t *testing.T) {
	src := []byte(`public record Point(int x, int y) {}`)
	items, err := (Extractor{}).Extract(context.Background(), "Point.java", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %+v", items)
	}
	meta := items[0].Metadata.(model.JavaMetadata)
	if !meta.IsRecord || len(meta.RecordComponents) != 2 {
		t.Errorf("unexpected record metadata %+v", meta)
	}
}

func TestEnumVariants(t *testing.T) {
	src := []byte(`enum Color { RED, GREEN, BLUE }`)
	items, err := (Extractor{}).Extract(context.Background(), "Color.java", src)
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
