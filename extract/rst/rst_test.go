package rst

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestSectionLevelsByAdornmentOrder(t *testing.T) {
	src := []byte(`Title
=====

Intro text.

Subsection
----------

More text.

Second Section
==============
`)
	items, err := (Extractor{}).Extract(context.Background(), "doc.rst", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var sections []model.ParsedItem
	for _, it := range items {
		if it.Kind == model.KindSection {
			sections = append(sections, it)
		}
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d: %+v", len(sections), sections)
	}
	if sections[0].Name != "Title" || sections[0].Metadata.(model.RSTMetadata).Level != 1 {
		t.Errorf("unexpected title section %+v", sections[0])
	}
	if sections[1].Name != "Subsection" || sections[1].Metadata.(model.RSTMetadata).Level != 2 {
		t.Errorf("unexpected subsection %+v", sections[1])
	}
	if sections[2].Name != "Second Section" || sections[2].Metadata.(model.RSTMetadata).Level != 1 {
		t.Errorf("expected Second Section to reuse level 1 (= adornment), got %+v", sections[2])
	}
}

func TestHyperlinkTarget(t *testing.T) {
	src := []byte(`.. _golang: https://go.dev
`)
	items, err := (Extractor{}).Extract(context.Background(), "doc.rst", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Kind != model.KindRSTTarget || items[0].Name != "golang" {
		t.Fatalf("expected golang target, got %+v", items)
	}
}

func TestFootnoteAndCitation(t *testing.T) {
	src := []byte(`.. [1] A numbered footnote.

.. [CIT2021] A citation reference.
`)
	items, err := (Extractor{}).Extract(context.Background(), "doc.rst", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var footnote, citation *model.ParsedItem
	for i := range items {
		switch items[i].Kind {
		case model.KindFootnote:
			footnote = &items[i]
		case model.KindCitation:
			citation = &items[i]
		}
	}
	if footnote == nil || footnote.Name != "1" {
		t.Fatalf("expected footnote 1, got %+v", footnote)
	}
	if citation == nil || citation.Name != "CIT2021" {
		t.Fatalf("expected citation CIT2021, got %+v", citation)
	}
}

func TestSubstitutionDefinition(t *testing.T) {
	src := []byte(`.. |version| replace:: 1.0
`)
	items, err := (Extractor{}).Extract(context.Background(), "doc.rst", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Kind != model.KindSubstitution || items[0].Name != "version" {
		t.Fatalf("expected version substitution, got %+v", items)
	}
}

func TestDirectiveAndCustomRole(t *testing.T) {
	src := []byte(`.. code-block:: go

   fmt.Println("hi")

.. role:: important(emphasis)
`)
	items, err := (Extractor{}).Extract(context.Background(), "doc.rst", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var codeBlock, role *model.ParsedItem
	for i := range items {
		meta := items[i].Metadata.(model.RSTMetadata)
		if meta.DirectiveName == "code-block" {
			codeBlock = &items[i]
		}
		if meta.DirectiveName == "role" {
			role = &items[i]
		}
	}
	if codeBlock == nil {
		t.Fatalf("expected code-block directive, got %+v", items)
	}
	if role == nil || role.Metadata.(model.RSTMetadata).RoleName != "important" {
		t.Fatalf("expected important custom role, got %+v", role)
	}
}

func TestInlineRoleUsage(t *testing.T) {
	src := []byte(`See :func:` + "`" + `mypackage.myfunc` + "`" + ` for details.
`)
	items, err := (Extractor{}).Extract(context.Background(), "doc.rst", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var role *model.ParsedItem
	for i := range items {
		if items[i].Kind == model.KindRole {
			role = &items[i]
		}
	}
	if role == nil || role.Name != "func" {
		t.Fatalf("expected func role usage, got %+v", items)
	}
}
