package parsetree

import (
	"context"
	"testing"
)

func TestParseGoSource(t *testing.T) {
	src := []byte("package main\n\nfunc greet(name string) error {\n\treturn nil\n}\n")

	tree, err := Parse(context.Background(), "go", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.Type() != "source_file" {
		t.Errorf("expected root type source_file, got %q", root.Type())
	}

	children := NamedChildren(root)
	if len(children) != 1 {
		t.Fatalf("expected 1 named child, got %d", len(children))
	}
	if children[0].Type() != "function_declaration" {
		t.Errorf("expected function_declaration, got %q", children[0].Type())
	}
}

func TestParseUnknownLanguage(t *testing.T) {
	_, err := Parse(context.Background(), "cobol", []byte("IDENTIFICATION DIVISION."))
	if err == nil {
		t.Fatal("expected an error for an unregistered language")
	}
}

func TestNodeRangeUsesOneBasedLines(t *testing.T) {
	src := []byte("package main\n\nfunc f() {}\n")
	tree, err := Parse(context.Background(), "go", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	fn := NamedChildren(tree.RootNode())[0]
	r := NodeRange(fn)

	if r.Start.Line != 3 {
		t.Errorf("expected function to start on line 3, got %d", r.Start.Line)
	}
	if r.StartByte == 0 && r.EndByte == 0 {
		t.Error("expected non-zero byte range")
	}
}

func TestTextReturnsSourceSlice(t *testing.T) {
	src := []byte("package main\n\nfunc greet() {}\n")
	tree, err := Parse(context.Background(), "go", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	fn := NamedChildren(tree.RootNode())[0]
	name := fn.ChildByFieldName("name")

	if got := Text(name, src); got != "greet" {
		t.Errorf("Text(name) = %q, want %q", got, "greet")
	}
}

func TestHasChildOfType(t *testing.T) {
	src := []byte("package main\n\nfunc (s *Server) Start() error { return nil }\n")
	tree, err := Parse(context.Background(), "go", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	fn := NamedChildren(tree.RootNode())[0]
	if !HasChildOfType(fn, "parameter_list") {
		t.Error("expected method declaration to have a parameter_list child")
	}
	if HasChildOfType(fn, "nonexistent_type") {
		t.Error("expected no match for a type that does not occur")
	}
}
