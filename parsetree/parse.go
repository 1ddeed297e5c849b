package parsetree

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roveo/codextract/model"
)

// Parse compiles content with the grammar registered under language. Each
// call gets its own *sitter.Parser, so concurrent calls for the same or
// different languages never share mutable state; the returned *sitter.Tree
// must be closed by the caller once the extractor is done walking it.
func Parse(ctx context.Context, language string, content []byte) (*sitter.Tree, error) {
	grammar, err := requireGrammar(language)
	if err != nil {
		return nil, &model.GrammarUnavailableError{Language: language, Cause: err}
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsetree: parse %s: %w", language, err)
	}
	return tree, nil
}

// NodeRange converts a tree-sitter node's positions into a model.Range,
// carrying both line/column points and raw byte offsets.
func NodeRange(node *sitter.Node) model.Range {
	start := node.StartPoint()
	end := node.EndPoint()
	return model.Range{
		Start:     model.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
		End:       model.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
		StartByte: node.StartByte(),
		EndByte:   node.EndByte(),
	}
}

// Text returns the source slice a node spans.
func Text(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(content)
}

// NamedChildren returns every named child of node, in order. Extractors
// walk this slice and dispatch on Type() in a large switch keyed by node
// kind.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}

// Children returns every child of node, including anonymous (unnamed)
// ones. Some extractors need these to find literal tokens such as Rust's
// visibility_modifier or punctuation that never appears as a named child.
func Children(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.ChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.Child(i))
	}
	return children
}

// HasChildOfType reports whether node has any direct child (named or not)
// whose Type() equals kind.
func HasChildOfType(node *sitter.Node, kind string) bool {
	for _, c := range Children(node) {
		if c.Type() == kind {
			return true
		}
	}
	return false
}
