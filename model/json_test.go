package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMarshalJSONOptionalFieldsAreNull(t *testing.T) {
	it := NewBuilder("main.go", "go").Kind(KindFunction).Name("f").
		Range(Range{StartByte: 0, EndByte: 1}).Build()

	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}

	for _, key := range []string{"qualified_name", "signature", "doc_comment", "parent_id", "metadata"} {
		v, ok := raw[key]
		if !ok {
			t.Errorf("expected key %q to be present", key)
		}
		if v != nil {
			t.Errorf("expected %q to be null, got %v", key, v)
		}
	}
}

func TestMarshalJSONFlattensMetadataWithDiscriminator(t *testing.T) {
	it := NewBuilder("main.go", "go").Kind(KindFunction).Name("f").
		Range(Range{StartByte: 0, EndByte: 1}).
		Metadata(GoMetadata{IsVariadic: true}).Build()

	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}

	meta, ok := raw["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("expected metadata to be an object, got %T", raw["metadata"])
	}
	if meta["language"] != "go" {
		t.Errorf("expected injected language discriminator 'go', got %v", meta["language"])
	}
	if meta["is_variadic"] != true {
		t.Errorf("expected is_variadic true, got %v", meta["is_variadic"])
	}
}

func TestRoundTripPreservesGoMetadata(t *testing.T) {
	orig := NewBuilder("main.go", "go").
		Kind(KindMethod).
		Name("Start").
		QualifiedName("Server.Start").
		Signature("Start() error").
		DocComment("Start begins serving.").
		Range(Range{Start: Position{Line: 5, Column: 0}, End: Position{Line: 7, Column: 1}, StartByte: 20, EndByte: 60}).
		Visibility(Public).
		Metadata(GoMetadata{
			Receiver:    &GoReceiver{Name: "s", Type: "Server", IsPointer: true},
			ReturnTypes: []string{"error"},
		}).Build()

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded ParsedItem
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.Name != orig.Name || decoded.QualifiedName != orig.QualifiedName {
		t.Errorf("name/qualified_name mismatch after round trip: %+v", decoded)
	}
	if decoded.Range != orig.Range {
		t.Errorf("range mismatch after round trip: got %+v, want %+v", decoded.Range, orig.Range)
	}

	gm, ok := decoded.Metadata.(GoMetadata)
	if !ok {
		t.Fatalf("expected decoded metadata to be GoMetadata, got %T", decoded.Metadata)
	}
	if gm.Receiver == nil || gm.Receiver.Type != "Server" || !gm.Receiver.IsPointer {
		t.Errorf("receiver not preserved: %+v", gm.Receiver)
	}
	if len(gm.ReturnTypes) != 1 || gm.ReturnTypes[0] != "error" {
		t.Errorf("return types not preserved: %v", gm.ReturnTypes)
	}
}

func TestUnmarshalUnknownLanguageFallsBackToOtherMetadata(t *testing.T) {
	raw := `{
		"id": "abc", "kind": "function", "name": "f",
		"qualified_name": null, "signature": null, "doc_comment": null,
		"doc_sections": {}, "range": {"start":{"line":1,"column":0},"end":{"line":1,"column":1},"start_byte":0,"end_byte":1},
		"visibility": "public", "language": "cobol", "parent_id": null,
		"metadata": {"language": "cobol", "division": "procedure"}
	}`

	var it ParsedItem
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	om, ok := it.Metadata.(OtherMetadata)
	if !ok {
		t.Fatalf("expected OtherMetadata, got %T", it.Metadata)
	}
	if om.Language() != "cobol" {
		t.Errorf("expected language 'cobol', got %q", om.Language())
	}
	if !strings.Contains(string(om.Raw), "procedure") {
		t.Errorf("expected raw json preserved, got %s", om.Raw)
	}
}

func TestUnmarshalTolerantOfUnknownTopLevelFields(t *testing.T) {
	raw := `{
		"id": "abc", "kind": "function", "name": "f",
		"qualified_name": null, "signature": null, "doc_comment": null,
		"doc_sections": {}, "range": {"start":{"line":1,"column":0},"end":{"line":1,"column":1},"start_byte":0,"end_byte":1},
		"visibility": "public", "language": "go", "parent_id": null, "metadata": null,
		"future_field": "ignored"
	}`

	var it ParsedItem
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if it.Name != "f" {
		t.Errorf("expected name 'f', got %q", it.Name)
	}
	if it.Metadata != nil {
		t.Errorf("expected nil metadata, got %v", it.Metadata)
	}
}

func TestTSMetadataLanguageReflectsDialect(t *testing.T) {
	tsx := TSMetadata{Dialect: "tsx"}
	if tsx.Language() != "tsx" {
		t.Errorf("expected dialect 'tsx', got %q", tsx.Language())
	}

	unset := TSMetadata{}
	if unset.Language() != "typescript" {
		t.Errorf("expected fallback 'typescript', got %q", unset.Language())
	}
}
