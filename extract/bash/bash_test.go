package bash

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestExtractFunctionWithDoc(t *testing.T) {
	src := []byte(`#!/bin/bash
# Prints a greeting.
greet() {
  echo "hi $1"
}
`)
	items, err := (Extractor{}).Extract(context.Background(), "greet.sh", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Kind != model.KindFunction || items[0].Name != "greet" {
		t.Fatalf("unexpected items %+v", items)
	}
	if items[0].DocComment != "Prints a greeting." {
		t.Errorf("expected doc comment, got %q", items[0].DocComment)
	}
}

func TestExportedReadonlyVariables(t *testing.T) {
	src := []byte(`export PATH=/usr/bin
readonly VERSION=1.0
`)
	items, err := (Extractor{}).Extract(context.Background(), "env.sh", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	var path, version *model.ParsedItem
	for i := range items {
		switch items[i].Name {
		case "PATH":
			path = &items[i]
		case "VERSION":
			version = &items[i]
		}
	}
	if path == nil || !path.Metadata.(model.BashMetadata).IsExported {
		t.Errorf("expected PATH to be exported, got %+v", path)
	}
	if version == nil || !version.Metadata.(model.BashMetadata).IsReadonly {
		t.Errorf("expected VERSION to be readonly, got %+v", version)
	}
}

func TestAlias(t *testing.T) {
	src := []byte(`alias ll='ls -la'`)
	items, err := (Extractor{}).Extract(context.Background(), "aliases.sh", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || !items[0].Metadata.(model.BashMetadata).IsAlias {
		t.Fatalf("expected alias item, got %+v", items)
	}
	if items[0].Name != "ll" {
		t.Errorf("expected alias name ll, got %q", items[0].Name)
	}
}
