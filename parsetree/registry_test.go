package parsetree

import "testing"

func TestGrammarKnownLanguages(t *testing.T) {
	for _, name := range []string{"go", "rust", "python", "typescript", "tsx", "javascript", "jsx", "c", "cpp", "ruby", "php", "java", "csharp", "svelte", "bash", "lua", "elixir"} {
		t.Run(name, func(t *testing.T) {
			if _, ok := Grammar(name); !ok {
				t.Errorf("expected a grammar registered for %q", name)
			}
		})
	}
}

func TestGrammarUnknownLanguage(t *testing.T) {
	if _, ok := Grammar("cobol"); ok {
		t.Error("expected no grammar for an unsupported language")
	}
}

func TestGrammarHasNoEntryForHandWalkedLanguages(t *testing.T) {
	for _, name := range []string{"markdown", "rst"} {
		if _, ok := Grammar(name); ok {
			t.Errorf("expected %q to have no tree-sitter grammar", name)
		}
	}
}

func TestLanguagesMatchesGrammarCount(t *testing.T) {
	if got, want := len(Languages()), len(grammars); got != want {
		t.Errorf("Languages() returned %d entries, want %d", got, want)
	}
}
