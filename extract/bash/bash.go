// Package bash extracts ParsedItems from shell script source, grounded on
// the tree-sitter Bash grammar's function/variable productions.
package bash

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roveo/codextract/docparse"
	"github.com/roveo/codextract/extract"
	"github.com/roveo/codextract/model"
	"github.com/roveo/codextract/parsetree"
)

func init() {
	extract.Register(&Extractor{})
}

// Extractor implements extract.Extractor for Bash/shell scripts.
type Extractor struct{}

func (Extractor) Language() string     { return "bash" }
func (Extractor) Extensions() []string { return []string{".sh", ".bash"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "bash", content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{path: path, content: content}
	w.walk(tree.RootNode())
	return w.items, nil
}

type walker struct {
	path    string
	content []byte
	items   []model.ParsedItem
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, "bash")
}

func (w *walker) add(it model.ParsedItem) model.ParsedItem {
	w.items = append(w.items, it)
	return it
}

func (w *walker) walk(node *sitter.Node) {
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "function_definition":
			w.add(w.extractFunction(child))
		case "variable_assignment":
			w.extractVariable(child)
		case "declaration_command":
			w.extractDeclarationCommand(child)
		case "command":
			w.extractAliasOrTrap(child)
		default:
			// descend into conditional/loop bodies so top-level functions
			// and variables nested in e.g. `if`/`case` blocks are still
			// surfaced.
			w.walk(child)
		}
	}
}

func (w *walker) extractFunction(node *sitter.Node) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)

	return w.builder().
		Kind(model.KindFunction).
		Name(name).
		QualifiedName(name).
		Signature(name + "()").
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		Metadata(model.BashMetadata{}).
		Build()
}

func (w *walker) extractVariable(node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := parsetree.Text(nameNode, w.content)
	doc := collectDoc(node, w.content)

	w.add(w.builder().
		Kind(model.KindGlobalVariable).
		Name(name).
		QualifiedName(name).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		Metadata(model.BashMetadata{}).
		Build())
}

// extractDeclarationCommand handles `export FOO=bar` and `readonly FOO=bar`
// declarations.
func (w *walker) extractDeclarationCommand(node *sitter.Node) {
	text := parsetree.Text(node, w.content)
	isExported := strings.HasPrefix(text, "export ")
	isReadonly := strings.HasPrefix(text, "readonly ")
	if !isExported && !isReadonly {
		return
	}
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() != "variable_assignment" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := parsetree.Text(nameNode, w.content)
		doc := collectDoc(node, w.content)
		w.add(w.builder().
			Kind(model.KindGlobalVariable).
			Name(name).
			QualifiedName(name).
			DocComment(doc.Text).
			Range(parsetree.NodeRange(node)).
			Visibility(model.Public).
			Metadata(model.BashMetadata{IsExported: isExported, IsReadonly: isReadonly}).
			Build())
	}
}

func (w *walker) extractAliasOrTrap(node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	cmd := parsetree.Text(nameNode, w.content)
	if cmd != "alias" && cmd != "trap" {
		return
	}
	argsText := ""
	for _, arg := range parsetree.NamedChildren(node) {
		if arg == nameNode {
			continue
		}
		argsText = parsetree.Text(arg, w.content)
		break
	}
	if cmd == "alias" {
		name, value := splitAlias(argsText)
		if name == "" {
			return
		}
		w.add(w.builder().
			Kind(model.KindMacro).
			Name(name).
			QualifiedName(name).
			Signature(value).
			Range(parsetree.NodeRange(node)).
			Visibility(model.Public).
			Metadata(model.BashMetadata{IsAlias: true}).
			Build())
		return
	}
	w.add(w.builder().
		Kind(model.KindMacro).
		Name("trap").
		QualifiedName("trap").
		Signature(argsText).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		Metadata(model.BashMetadata{IsTrap: true}).
		Build())
}

func splitAlias(text string) (name, value string) {
	idx := strings.Index(text, "=")
	if idx == -1 {
		return strings.TrimSpace(text), ""
	}
	name = strings.TrimSpace(text[:idx])
	value = strings.Trim(strings.TrimSpace(text[idx+1:]), "'\"")
	return
}

func fieldText(node *sitter.Node, field string, content []byte) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		return ""
	}
	return parsetree.Text(n, content)
}

// collectDoc walks backward over contiguous `#` comment lines immediately
// preceding node, stopping at shebang lines.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return docparse.Block{}
	}
	if strings.HasPrefix(parsetree.Text(prev, content), "#!") {
		return docparse.Block{}
	}
	if !docparse.Attaches(int(prev.EndPoint().Row), int(node.StartPoint().Row), 0) {
		return docparse.Block{}
	}
	var raw []*sitter.Node
	cur := prev
	for cur != nil && cur.Type() == "comment" && !strings.HasPrefix(parsetree.Text(cur, content), "#!") {
		raw = append([]*sitter.Node{cur}, raw...)
		next := cur.PrevNamedSibling()
		if next == nil || next.Type() != "comment" {
			break
		}
		if int(cur.StartPoint().Row)-int(next.EndPoint().Row) > 1 {
			break
		}
		cur = next
	}
	lines := make([]string, len(raw))
	for i, c := range raw {
		lines[i] = parsetree.Text(c, content)
	}
	return docparse.CollectLine(lines, "#")
}
