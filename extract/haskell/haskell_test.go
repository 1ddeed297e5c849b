package haskell

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestSignatureAndEquationMerge(t *testing.T) {
	src := []byte(`-- | Adds two numbers.
add :: Int -> Int -> Int
add x y = x + y
`)
	items, err := (Extractor{}).Extract(context.Background(), "Math.hs", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var fn *model.ParsedItem
	count := 0
	for i := range items {
		if items[i].Name == "add" && items[i].Kind == model.KindFunction {
			fn = &items[i]
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected signature and equation to merge into 1 item, got %d: %+v", count, items)
	}
	meta := fn.Metadata.(model.HaskellMetadata)
	if meta.TypeSig != "Int -> Int -> Int" {
		t.Errorf("expected type sig to carry onto the equation, got %q", meta.TypeSig)
	}
	if meta.Equations != 1 {
		t.Errorf("expected 1 equation, got %d", meta.Equations)
	}
	if fn.DocComment != "Adds two numbers." {
		t.Errorf("expected doc comment, got %q", fn.DocComment)
	}
}

func TestMultiEquationFunctionCounts(t *testing.T) {
	src := []byte(`fact :: Int -> Int
fact 0 = 1
fact n = n * fact (n - 1)
`)
	items, err := (Extractor{}).Extract(context.Background(), "Fact.hs", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var fn *model.ParsedItem
	for i := range items {
		if items[i].Name == "fact" && items[i].Kind == model.KindFunction {
			fn = &items[i]
		}
	}
	if fn == nil {
		t.Fatalf("expected fact function, got %+v", items)
	}
	meta := fn.Metadata.(model.HaskellMetadata)
	if meta.Equations != 2 {
		t.Errorf("expected 2 merged equations, got %d", meta.Equations)
	}
}

func TestDataDeclarationConstructors(t *testing.T) {
	src := []byte(`data Shape = Circle Double | Rectangle Double Double
`)
	items, err := (Extractor{}).Extract(context.Background(), "Shape.hs", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Shape" {
		t.Fatalf("expected Shape data item, got %+v", items)
	}
	if items[0].Kind != model.KindEnum {
		t.Errorf("expected multi-constructor data to be KindEnum, got %v", items[0].Kind)
	}
	meta := items[0].Metadata.(model.HaskellMetadata)
	if len(meta.Constructors) != 2 || meta.Constructors[0] != "Circle" || meta.Constructors[1] != "Rectangle" {
		t.Errorf("unexpected constructors %+v", meta.Constructors)
	}
}

func TestNewtypeIsStruct(t *testing.T) {
	src := []byte(`newtype Age = Age Int
`)
	items, err := (Extractor{}).Extract(context.Background(), "Age.hs", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Kind != model.KindStruct {
		t.Fatalf("expected newtype to be KindStruct, got %+v", items)
	}
	meta := items[0].Metadata.(model.HaskellMetadata)
	if meta.DeclKind != "newtype" {
		t.Errorf("expected DeclKind newtype, got %q", meta.DeclKind)
	}
}

func TestClassAndInstance(t *testing.T) {
	src := []byte(`class Shape a where
  area :: a -> Double

instance Shape Circle where
  area c = 3.14
`)
	items, err := (Extractor{}).Extract(context.Background(), "Shape.hs", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var class, inst *model.ParsedItem
	for i := range items {
		switch items[i].Kind {
		case model.KindTrait:
			class = &items[i]
		case model.KindImplTrait:
			inst = &items[i]
		}
	}
	if class == nil || class.Name != "Shape" {
		t.Fatalf("expected Shape class, got %+v", class)
	}
	if inst == nil || inst.Name != "Shape Circle" {
		t.Fatalf("expected Shape Circle instance, got %+v", inst)
	}
}

func TestForeignImport(t *testing.T) {
	src := []byte(`foreign import ccall "sqrt" c_sqrt :: Double -> Double
`)
	items, err := (Extractor{}).Extract(context.Background(), "FFI.hs", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "c_sqrt" {
		t.Fatalf("expected c_sqrt foreign import, got %+v", items)
	}
	meta := items[0].Metadata.(model.HaskellMetadata)
	if meta.DeclKind != "foreign_import" || meta.ForeignCConv != "ccall" {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestFixityDeclaration(t *testing.T) {
	src := []byte(`infixl 6 +++
`)
	items, err := (Extractor{}).Extract(context.Background(), "Ops.hs", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "+++" {
		t.Fatalf("expected +++ fixity item, got %+v", items)
	}
	if items[0].Kind != model.KindOperatorOverload {
		t.Errorf("expected KindOperatorOverload, got %v", items[0].Kind)
	}
}
