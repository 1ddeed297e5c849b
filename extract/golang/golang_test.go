package golang

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestExtractFunction(t *testing.T) {
	src := []byte(`package main

// greet prints a greeting message
func greet(name string) error {
	return nil
}
`)
	items, err := (Extractor{}).Extract(context.Background(), "main.go", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	it := items[0]
	if it.Kind != model.KindFunction {
		t.Errorf("expected kind function, got %q", it.Kind)
	}
	if it.Name != "greet" {
		t.Errorf("expected name greet, got %q", it.Name)
	}
	if it.DocComment != "greet prints a greeting message" {
		t.Errorf("expected doc comment, got %q", it.DocComment)
	}
	if it.Visibility != model.Package {
		t.Errorf("expected package visibility for lowercase name, got %q", it.Visibility)
	}
	if it.Signature != "greet(string) error" {
		t.Errorf("expected signature, got %q", it.Signature)
	}
}

func TestExtractMethod(t *testing.T) {
	src := []byte(`package main

type Server struct{}

// Start begins serving requests.
func (s *Server) Start() error {
	return nil
}
`)
	items, err := (Extractor{}).Extract(context.Background(), "main.go", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var method *model.ParsedItem
	for i := range items {
		if items[i].Kind == model.KindMethod {
			method = &items[i]
		}
	}
	if method == nil {
		t.Fatal("expected to find a method item")
	}

	if method.Name != "Start" {
		t.Errorf("expected name Start, got %q", method.Name)
	}
	if method.QualifiedName != "Server.Start" {
		t.Errorf("expected qualified name Server.Start, got %q", method.QualifiedName)
	}
	if method.Visibility != model.Public {
		t.Errorf("expected public visibility, got %q", method.Visibility)
	}

	gm, ok := method.Metadata.(model.GoMetadata)
	if !ok {
		t.Fatalf("expected GoMetadata, got %T", method.Metadata)
	}
	if gm.Receiver == nil || gm.Receiver.Type != "Server" || !gm.Receiver.IsPointer {
		t.Errorf("expected pointer receiver of type Server, got %+v", gm.Receiver)
	}
	if len(gm.ReturnTypes) != 1 || gm.ReturnTypes[0] != "error" {
		t.Errorf("expected return type error, got %v", gm.ReturnTypes)
	}
}

func TestExtractStructFields(t *testing.T) {
	src := []byte(`package main

type Config struct {
	Name string ` + "`json:\"name\"`" + `
	Logger
}
`)
	items, err := (Extractor{}).Extract(context.Background(), "main.go", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var strct *model.ParsedItem
	var fields []model.ParsedItem
	for i := range items {
		switch items[i].Kind {
		case model.KindStruct:
			strct = &items[i]
		case model.KindField:
			fields = append(fields, items[i])
		}
	}

	if strct == nil {
		t.Fatal("expected a struct item")
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	for _, f := range fields {
		if f.ParentID != strct.ID {
			t.Errorf("field %q has parent_id %q, want %q", f.Name, f.ParentID, strct.ID)
		}
	}

	named := fields[0]
	if named.Name != "Name" {
		t.Errorf("expected first field Name, got %q", named.Name)
	}
	gm := named.Metadata.(model.GoMetadata)
	if gm.StructTag != `json:"name"` {
		t.Errorf("expected struct tag preserved, got %q", gm.StructTag)
	}

	embedded := fields[1]
	if embedded.Name != "Logger" {
		t.Errorf("expected embedded field named Logger, got %q", embedded.Name)
	}
}

func TestExtractInterfaceMethods(t *testing.T) {
	src := []byte(`package main

type Reader interface {
	Read([]byte) (int, error)
}
`)
	items, err := (Extractor{}).Extract(context.Background(), "main.go", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var iface *model.ParsedItem
	var method *model.ParsedItem
	for i := range items {
		switch items[i].Kind {
		case model.KindInterface:
			iface = &items[i]
		case model.KindMethod:
			method = &items[i]
		}
	}

	if iface == nil {
		t.Fatal("expected an interface item")
	}
	if method == nil {
		t.Fatal("expected a method item for Read")
	}
	if method.ParentID != iface.ID {
		t.Errorf("method parent_id = %q, want %q", method.ParentID, iface.ID)
	}
}

func TestExtractConstsAndVars(t *testing.T) {
	src := []byte(`package main

const (
	A = 1
	B = 2
)

var DefaultName = "test"
`)
	items, err := (Extractor{}).Extract(context.Background(), "main.go", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var consts, vars int
	for _, it := range items {
		switch it.Kind {
		case model.KindConstant:
			consts++
		case model.KindGlobalVariable:
			vars++
		}
	}
	if consts != 2 {
		t.Errorf("expected 2 consts, got %d", consts)
	}
	if vars != 1 {
		t.Errorf("expected 1 var, got %d", vars)
	}
}

func TestExtractEmptyFile(t *testing.T) {
	items, err := (Extractor{}).Extract(context.Background(), "main.go", []byte("package main"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestExtractMultiLineDocComment(t *testing.T) {
	src := []byte(`package main

// Start begins serving.
// It blocks until the context is canceled.
func Start() {}
`)
	items, err := (Extractor{}).Extract(context.Background(), "main.go", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	want := "Start begins serving.\nIt blocks until the context is canceled."
	if items[0].DocComment != want {
		t.Errorf("got doc comment %q, want %q", items[0].DocComment, want)
	}
}

func TestDispatchRegistersGoExtractor(t *testing.T) {
	// Extractor self-registers via init(); a blank import of this package
	// elsewhere should make it reachable through extract.ForLanguage.
	e := Extractor{}
	if e.Language() != "go" {
		t.Errorf("expected language go, got %q", e.Language())
	}
	if len(e.Extensions()) != 1 || e.Extensions()[0] != ".go" {
		t.Errorf("expected extensions [.go], got %v", e.Extensions())
	}
}
