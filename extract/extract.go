// Package extract defines the Extractor abstraction and its registry: one
// extractor per source language, dispatched by file extension or an
// explicit language tag. Each concrete extractor lives in its own
// subpackage (extract/golang, extract/python, ...) and registers itself
// from an init(), mirroring a common registration pattern: a
// ParsedItem-producing extractor instead of a Symbol-producing Language.
package extract

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/roveo/codextract/model"
)

// Extractor walks a parsed source file and emits the unified ParsedItem
// symbols it contains.
type Extractor interface {
	// Language returns the extractor's source-language tag, matching the
	// discriminator each item's Metadata carries.
	Language() string

	// Extensions returns the file extensions this extractor claims.
	Extensions() []string

	// Extract parses content and returns every ParsedItem it finds, in
	// source order, or InternalExtractorError if one of the extractor's own
	// output invariants is violated. A malformed or partially invalid parse
	// tree is not itself an error: unrecognized or broken subtrees are
	// skipped, and extraction continues over whatever can be understood.
	Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error)
}

var (
	mu          sync.RWMutex
	byLanguage  = map[string]Extractor{}
	byExtension = map[string]Extractor{}
)

// Register installs e under its language tag and every extension it
// claims. Called from each extractor subpackage's init().
func Register(e Extractor) {
	mu.Lock()
	defer mu.Unlock()

	byLanguage[e.Language()] = e
	for _, ext := range e.Extensions() {
		byExtension[strings.ToLower(ext)] = e
	}
}

// ForLanguage returns the extractor registered for a language tag.
func ForLanguage(language string) (Extractor, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := byLanguage[language]
	return e, ok
}

// ForFile returns the extractor registered for path's extension.
func ForFile(path string) (Extractor, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := byExtension[strings.ToLower(filepath.Ext(path))]
	return e, ok
}

// Languages returns every registered language tag.
func Languages() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(byLanguage))
	for lang := range byLanguage {
		out = append(out, lang)
	}
	return out
}

// Extensions returns every registered file extension.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		out = append(out, ext)
	}
	return out
}

// Dispatch extracts path's content with the extractor registered for its
// file extension, returning model.UnsupportedLanguageError if none
// matches.
func Dispatch(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	e, ok := ForFile(path)
	if !ok {
		return nil, &model.UnsupportedLanguageError{Language: filepath.Ext(path)}
	}
	return e.Extract(ctx, path, content)
}

// DispatchLanguage extracts content as the named language explicitly,
// ignoring path's extension (used by callers, such as the MCP tool, that
// receive an explicit language tag alongside a snippet).
func DispatchLanguage(ctx context.Context, language, path string, content []byte) ([]model.ParsedItem, error) {
	e, ok := ForLanguage(language)
	if !ok {
		return nil, &model.UnsupportedLanguageError{Language: language}
	}
	return e.Extract(ctx, path, content)
}
