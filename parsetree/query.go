package parsetree

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// CompileQuery compiles pattern against language's grammar, the spec's
// "compile an S-expression pattern" capability over the parse-tree
// interface.
func CompileQuery(language, pattern string) (*sitter.Query, error) {
	grammar, err := requireGrammar(language)
	if err != nil {
		return nil, err
	}

	q, err := sitter.NewQuery([]byte(pattern), grammar)
	if err != nil {
		return nil, fmt.Errorf("parsetree: compile query for %s: %w", language, err)
	}
	return q, nil
}

// QueryMatches runs a compiled query over root and returns every match's
// captures as node slices, grouped by match. Callers that need capture
// names should pair this with q.CaptureNameForId.
func QueryMatches(q *sitter.Query, root *sitter.Node) [][]*sitter.Node {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q, root)

	var matches [][]*sitter.Node
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		nodes := make([]*sitter.Node, 0, len(m.Captures))
		for _, c := range m.Captures {
			nodes = append(nodes, c.Node)
		}
		matches = append(matches, nodes)
	}
	return matches
}
