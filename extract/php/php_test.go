package php

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestExtractClassWithMethodAndTrait(t *testing.T) {
	src := []byte(`<?php

class Greeter {
    use Loggable;

    /**
     * Says hello.
     */
    public function greet(string $name): string {
        return "hi " . $name;
    }

    private int $count;
}
`)
	items, err := (Extractor{}).Extract(context.Background(), "Greeter.php", src)
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
	if cls == nil {
		t.Fatalf("expected class item, got %+v", items)
	}
	meta := cls.Metadata.(model.PHPMetadata)
	if len(meta.TraitUses) != 1 || meta.TraitUses[0] != "Loggable" {
		t.Errorf("expected trait use Loggable, got %+v", meta.TraitUses)
	}
	if method == nil || method.DocComment != "Says hello." {
		t.Fatalf("unexpected method %+v", method)
	}
	if field == nil || field.Visibility != model.Private {
		t.Fatalf("unexpected field %+v", field)
	}
}

func TestEnumWithBackingType(t *testing.T) {
	src := []byte(`<?php

enum Suit: string {
    case Hearts = 'H';
    case Spades = 'S';
}
`)
	items, err := (Extractor{}).Extract(context.Background(), "Suit.php", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var enum *model.ParsedItem
	count := 0
	for i := range items {
		if items[i].Kind == model.KindEnum {
			enum = &items[i]
		}
		if items[i].Kind == model.KindEnumVariant {
			count++
		}
	}
	if enum == nil {
		t.Fatalf("expected enum item")
	}
	meta := enum.Metadata.(model.PHPMetadata)
	if meta.BackingType != "string" {
		t.Errorf("expected string backing type, got %q", meta.BackingType)
	}
	if count != 2 {
		t.Errorf("expected 2 enum cases, got %d", count)
	}
}
