package model

import "testing"

func TestValidateRejectsEmptyName(t *testing.T) {
	it := ParsedItem{ID: "x", Range: Range{StartByte: 0, EndByte: 1}}
	if err := Validate(it); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestValidateRejectsInvalidRange(t *testing.T) {
	it := ParsedItem{ID: "x", Name: "f", Range: Range{StartByte: 10, EndByte: 10}}
	if err := Validate(it); err == nil {
		t.Error("expected error for non-positive-length range")
	}
}

func TestValidateAcceptsWellFormedItem(t *testing.T) {
	it := NewBuilder("main.go", "go").Kind(KindFunction).Name("f").
		Range(Range{StartByte: 0, EndByte: 5}).Build()
	if err := Validate(it); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateAllDetectsDanglingParent(t *testing.T) {
	child := NewBuilder("main.go", "go").Kind(KindMethod).Name("m").
		Range(Range{StartByte: 0, EndByte: 5}).ParentID("missing").Build()

	if err := ValidateAll([]ParsedItem{child}); err == nil {
		t.Error("expected error for dangling parent_id")
	}
}

func TestValidateAllAcceptsValidForest(t *testing.T) {
	parent := NewBuilder("main.go", "go").Kind(KindStruct).Name("Server").
		Range(Range{StartByte: 0, EndByte: 100}).Build()
	child := NewBuilder("main.go", "go").Kind(KindMethod).Name("Start").
		Range(Range{StartByte: 10, EndByte: 50}).ParentID(parent.ID).Build()

	if err := ValidateAll([]ParsedItem{parent, child}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateAllDetectsCycle(t *testing.T) {
	a := ParsedItem{ID: "a", Name: "a", Range: Range{StartByte: 0, EndByte: 1}, ParentID: "b"}
	b := ParsedItem{ID: "b", Name: "b", Range: Range{StartByte: 1, EndByte: 2}, ParentID: "a"}

	if err := ValidateAll([]ParsedItem{a, b}); err == nil {
		t.Error("expected error for parent cycle")
	}
}
