package typescript

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func extractTS(t *testing.T, path string, src string) []model.ParsedItem {
	t.Helper()
	e, ok := findExtractor(path)
	if !ok {
		t.Fatalf("no extractor for %s", path)
	}
	items, err := e.Extract(context.Background(), path, []byte(src))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return items
}

func findExtractor(path string) (*Extractor, bool) {
	switch {
	case hasSuffix(path, ".tsx"):
		return &Extractor{dialect: "tsx", grammar: "tsx", exts: []string{".tsx"}}, true
	case hasSuffix(path, ".ts"):
		return &Extractor{dialect: "typescript", grammar: "typescript", exts: []string{".ts"}}, true
	case hasSuffix(path, ".js"):
		return &Extractor{dialect: "javascript", grammar: "javascript", exts: []string{".js"}}, true
	}
	return nil, false
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func TestDefaultExportedArrowFunction(t *testing.T) {
	items := extractTS(t, "mod.ts", `export default (x: number): number => x * 2;`)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.Kind != model.KindFunction || it.Name != "default" {
		t.Fatalf("unexpected item %+v", it)
	}
	meta, ok := it.Metadata.(model.TSMetadata)
	if !ok {
		t.Fatalf("expected TSMetadata, got %T", it.Metadata)
	}
	if !meta.IsDefaultExport || !meta.IsArrow {
		t.Errorf("expected default export arrow function, got %+v", meta)
	}
	if len(meta.Parameters) != 1 || meta.Parameters[0].Name != "x" || meta.Parameters[0].Type != "number" {
		t.Errorf("unexpected parameters %+v", meta.Parameters)
	}
	if meta.ReturnType != "number" {
		t.Errorf("expected return type number, got %q", meta.ReturnType)
	}
}

func TestClassWithHeritageAndMembers(t *testing.T) {
	src := `export class Dog extends Animal implements Pet {
  private name: string;
  constructor(name: string) { this.name = name; }
  public bark(): void {}
}
`
	items := extractTS(t, "mod.ts", src)
	var class *model.ParsedItem
	for i := range items {
		if items[i].Kind == model.KindClass {
			class = &items[i]
		}
	}
	if class == nil {
		t.Fatal("expected a class item")
	}
	meta := class.Metadata.(model.TSMetadata)
	if meta.Extends != "Animal" {
		t.Errorf("expected extends Animal, got %q", meta.Extends)
	}
	if len(meta.Implements) != 1 || meta.Implements[0] != "Pet" {
		t.Errorf("expected implements [Pet], got %v", meta.Implements)
	}

	var ctor, bark *model.ParsedItem
	for i := range items {
		switch {
		case items[i].Kind == model.KindConstructor:
			ctor = &items[i]
		case items[i].Kind == model.KindMethod && items[i].Name == "bark":
			bark = &items[i]
		}
	}
	if ctor == nil || ctor.ParentID != class.ID {
		t.Fatal("expected constructor parented to class")
	}
	if bark == nil || bark.QualifiedName != "Dog.bark" {
		t.Fatalf("expected qualified name Dog.bark, got %+v", bark)
	}
}

func TestFunctionOverloadsMergeOntoImplementation(t *testing.T) {
	src := `function make(x: number): number;
function make(x: string): string;
function make(x: any): any { return x; }
`
	items := extractTS(t, "mod.ts", src)
	if len(items) != 1 {
		t.Fatalf("expected overloads to merge into one item, got %d", len(items))
	}
	meta := items[0].Metadata.(model.TSMetadata)
	if len(meta.Overloads) != 2 {
		t.Fatalf("expected 2 overload signatures, got %d", len(meta.Overloads))
	}
}

func TestAmbientDeclarationIsFlagged(t *testing.T) {
	items := extractTS(t, "mod.ts", `declare function fetchJSON(url: string): Promise<any>;`)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	meta := items[0].Metadata.(model.TSMetadata)
	if !meta.IsDeclaration {
		t.Error("expected is_declaration=true for ambient function")
	}
}

func TestInterfaceWithMethodSignature(t *testing.T) {
	src := `export interface Greeter {
  greet(name: string): string;
}
`
	items := extractTS(t, "mod.ts", src)
	var iface *model.ParsedItem
	for i := range items {
		if items[i].Kind == model.KindInterface {
			iface = &items[i]
		}
	}
	if iface == nil || iface.Name != "Greeter" {
		t.Fatalf("expected interface Greeter, got %+v", items)
	}
	var method *model.ParsedItem
	for i := range items {
		if items[i].Kind == model.KindMethod && items[i].Name == "greet" {
			method = &items[i]
		}
	}
	if method == nil || method.ParentID != iface.ID {
		t.Fatal("expected greet method parented to interface")
	}
}
