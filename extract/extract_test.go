package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/roveo/codextract/model"
)

type mockExtractor struct {
	lang string
	exts []string
}

func (m *mockExtractor) Language() string     { return m.lang }
func (m *mockExtractor) Extensions() []string { return m.exts }
func (m *mockExtractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	return nil, nil
}

func withCleanRegistry(t *testing.T) {
	t.Helper()
	origLang, origExt := byLanguage, byExtension
	byLanguage = map[string]Extractor{}
	byExtension = map[string]Extractor{}
	t.Cleanup(func() {
		byLanguage = origLang
		byExtension = origExt
	})
}

func TestRegisterIndexesByLanguageAndExtension(t *testing.T) {
	withCleanRegistry(t)

	e := &mockExtractor{lang: "test", exts: []string{".test", ".tst"}}
	Register(e)

	if got, ok := ForLanguage("test"); !ok || got != e {
		t.Errorf("ForLanguage(test) = %v, %v", got, ok)
	}
	if got, ok := ForFile("main.test"); !ok || got != e {
		t.Errorf("ForFile(main.test) = %v, %v", got, ok)
	}
	if got, ok := ForFile("main.tst"); !ok || got != e {
		t.Errorf("ForFile(main.tst) = %v, %v", got, ok)
	}
}

func TestForFileCaseInsensitive(t *testing.T) {
	withCleanRegistry(t)
	e := &mockExtractor{lang: "test", exts: []string{".test"}}
	Register(e)

	if _, ok := ForFile("MAIN.TEST"); !ok {
		t.Error("expected case-insensitive extension match")
	}
}

func TestForFileUnknownExtension(t *testing.T) {
	withCleanRegistry(t)
	if _, ok := ForFile("main.unknown"); ok {
		t.Error("expected no extractor for an unregistered extension")
	}
}

func TestDispatchUnsupportedLanguage(t *testing.T) {
	withCleanRegistry(t)

	_, err := Dispatch(context.Background(), "main.cobol", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	var uerr *model.UnsupportedLanguageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedLanguageError, got %T: %v", err, err)
	}
}

func TestDispatchLanguageExplicit(t *testing.T) {
	withCleanRegistry(t)
	e := &mockExtractor{lang: "test", exts: []string{".test"}}
	Register(e)

	if _, err := DispatchLanguage(context.Background(), "test", "anything.xyz", nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLanguagesAndExtensions(t *testing.T) {
	withCleanRegistry(t)
	Register(&mockExtractor{lang: "a", exts: []string{".a1", ".a2"}})
	Register(&mockExtractor{lang: "b", exts: []string{".b1"}})

	if len(Languages()) != 2 {
		t.Errorf("expected 2 languages, got %v", Languages())
	}
	if len(Extensions()) != 3 {
		t.Errorf("expected 3 extensions, got %v", Extensions())
	}
}
