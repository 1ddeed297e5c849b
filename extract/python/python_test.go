package python

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func extractAll(t *testing.T, src string) []model.ParsedItem {
	t.Helper()
	items, err := (Extractor{}).Extract(context.Background(), "mod.py", []byte(src))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return items
}

func TestExtractFunctionWithDocstringAndSections(t *testing.T) {
	items := extractAll(t, `
def fetch(user_id, cache=True):
    """Fetch a user record.

    Args:
        user_id: the numeric id to look up.
        cache: whether to use the read cache.

    Returns:
        The User record, or None if not found.
    """
    return None
`)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.Kind != model.KindFunction {
		t.Errorf("expected function, got %q", it.Kind)
	}
	if it.DocSections[model.SectionReturns].Text != "The User record, or None if not found." {
		t.Errorf("returns section = %+v", it.DocSections[model.SectionReturns])
	}
	if it.DocSections[model.SectionArgs].Items["user_id"] != "the numeric id to look up." {
		t.Errorf("args.user_id = %q", it.DocSections[model.SectionArgs].Items["user_id"])
	}

	gm := it.Metadata.(model.PythonMetadata)
	if len(gm.Parameters) != 2 || gm.Parameters[1].Default != "True" {
		t.Errorf("expected 2 params with default on second, got %+v", gm.Parameters)
	}
}

func TestExtractGeneratorDetection(t *testing.T) {
	items := extractAll(t, `
def count_up(n):
    for i in range(n):
        yield i
`)
	gm := items[0].Metadata.(model.PythonMetadata)
	if !gm.IsGenerator {
		t.Error("expected is_generator true")
	}
}

func TestExtractNestedFunctionDoesNotMarkOuterAsGenerator(t *testing.T) {
	items := extractAll(t, `
def outer():
    def inner():
        yield 1
    return inner
`)
	var outer model.ParsedItem
	for _, it := range items {
		if it.Name == "outer" {
			outer = it
		}
	}
	gm := outer.Metadata.(model.PythonMetadata)
	if gm.IsGenerator {
		t.Error("expected outer function to not be marked generator")
	}
}

func TestExtractClassWithMethodsAndDecorators(t *testing.T) {
	items := extractAll(t, `
class Counter:
    """A counter."""

    total = 0

    def __init__(self):
        self.count = 0

    @property
    def value(self):
        return self.count

    @staticmethod
    def zero():
        return 0
`)
	var cls *model.ParsedItem
	var methods []model.ParsedItem
	var attrs []model.ParsedItem
	for i := range items {
		switch items[i].Kind {
		case model.KindClass:
			cls = &items[i]
		case model.KindMethod:
			methods = append(methods, items[i])
		case model.KindAttribute:
			attrs = append(attrs, items[i])
		}
	}

	if cls == nil {
		t.Fatal("expected a class item")
	}
	if cls.DocComment != "A counter." {
		t.Errorf("expected class docstring, got %q", cls.DocComment)
	}
	if len(attrs) != 1 || attrs[0].Name != "total" {
		t.Errorf("expected 1 class attribute 'total', got %v", attrs)
	}

	var value, zero *model.ParsedItem
	for i := range methods {
		if methods[i].Name == "value" {
			value = &methods[i]
		}
		if methods[i].Name == "zero" {
			zero = &methods[i]
		}
	}
	if value == nil || !value.Metadata.(model.PythonMetadata).IsProperty {
		t.Error("expected value method marked is_property")
	}
	if zero == nil || !zero.Metadata.(model.PythonMetadata).IsStaticmethod {
		t.Error("expected zero method marked is_staticmethod")
	}
	for _, m := range methods {
		if m.ParentID != cls.ID {
			t.Errorf("method %q parent_id = %q, want %q", m.Name, m.ParentID, cls.ID)
		}
		if m.QualifiedName != "Counter."+m.Name {
			t.Errorf("method %q qualified_name = %q", m.Name, m.QualifiedName)
		}
	}
}

func TestExtractPydanticAndProtocolBases(t *testing.T) {
	items := extractAll(t, `
class User(BaseModel):
    pass

class Reader(Protocol):
    pass
`)
	for _, it := range items {
		gm := it.Metadata.(model.PythonMetadata)
		switch it.Name {
		case "User":
			if !gm.IsPydantic {
				t.Error("expected User to be marked is_pydantic")
			}
		case "Reader":
			if !gm.IsProtocol {
				t.Error("expected Reader to be marked is_protocol")
			}
		}
	}
}

func TestExtractModuleLevelVariableSkipsUnderscorePrefixed(t *testing.T) {
	items := extractAll(t, "PUBLIC = 1\n_private = 2\n")

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Name != "PUBLIC" {
		t.Errorf("expected PUBLIC, got %q", items[0].Name)
	}
}

func TestVisibilityConventions(t *testing.T) {
	tests := []struct {
		name string
		want model.Visibility
	}{
		{"public_name", model.Public},
		{"_protected", model.Protected},
		{"__private", model.Private},
		{"__init__", model.Public},
	}
	for _, tt := range tests {
		if got := pythonVisibility(tt.name); got != tt.want {
			t.Errorf("pythonVisibility(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
