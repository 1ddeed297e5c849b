package cpp

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestOutOfClassMethodSharesParentAndQualifiedName(t *testing.T) {
	src := []byte(`class Foo {
public:
    void bar();
};

void Foo::bar() {}
`)
	items, err := (Extractor{}).Extract(context.Background(), "foo.cpp", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var decl, def *model.ParsedItem
	for i := range items {
		if items[i].Kind == model.KindMethod && items[i].Name == "bar" {
			if decl == nil {
				decl = &items[i]
			} else {
				def = &items[i]
			}
		}
	}
	if decl == nil || def == nil {
		t.Fatalf("expected both a declaration and an out-of-class definition, got %+v", items)
	}
	if decl.QualifiedName != "Foo::bar" || def.QualifiedName != "Foo::bar" {
		t.Errorf("expected matching qualified names, got %q and %q", decl.QualifiedName, def.QualifiedName)
	}
	if decl.ParentID == "" || decl.ParentID != def.ParentID {
		t.Errorf("expected out-of-class method linked to the class via parent id, got %q vs %q", decl.ParentID, def.ParentID)
	}
}

func TestAccessSpecifierStickiness(t *testing.T) {
	src := []byte(`class Foo {
private:
    int a;
    int b;
public:
    int c;
};
`)
	items, err := (Extractor{}).Extract(context.Background(), "foo.cpp", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var a, b, c *model.ParsedItem
	for i := range items {
		switch items[i].Name {
		case "a":
			a = &items[i]
		case "b":
			b = &items[i]
		case "c":
			c = &items[i]
		}
	}
	if a == nil || b == nil || c == nil {
		t.Fatalf("expected fields a, b, c, got %+v", items)
	}
	if a.Visibility != model.Private || b.Visibility != model.Private {
		t.Errorf("expected a and b to inherit private access, got %q and %q", a.Visibility, b.Visibility)
	}
	if c.Visibility != model.Public {
		t.Errorf("expected c to be public, got %q", c.Visibility)
	}
}

func TestStructDefaultsPublic(t *testing.T) {
	src := []byte(`struct Point {
    int x;
    int y;
};
`)
	items, err := (Extractor{}).Extract(context.Background(), "point.cpp", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	for _, it := range items {
		if it.Kind == model.KindField && it.Visibility != model.Public {
			t.Errorf("expected struct field %q to default public, got %q", it.Name, it.Visibility)
		}
	}
}

func TestTemplateParametersCaptured(t *testing.T) {
	src := []byte(`template <typename T>
T identity(T value) { return value; }
`)
	items, err := (Extractor{}).Extract(context.Background(), "identity.cpp", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Kind != model.KindFunction {
		t.Fatalf("expected 1 function item, got %+v", items)
	}
	meta, ok := items[0].Metadata.(model.CppMetadata)
	if !ok {
		t.Fatalf("expected CppMetadata, got %T", items[0].Metadata)
	}
	if len(meta.TemplateParameters) != 1 || meta.TemplateParameters[0].Name != "T" {
		t.Errorf("expected template parameter T, got %+v", meta.TemplateParameters)
	}
}
