// Package lua extracts ParsedItems from Lua source, grounded on the
// tree-sitter Lua grammar's function/variable productions.
package lua

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

// Extractor implements extract.Extractor for Lua.
type Extractor struct{}

func (Extractor) Language() string     { return "lua" }
func (Extractor) Extensions() []string { return []string{".lua"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "lua", content)
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
	return model.NewBuilder(w.path, "lua")
}

func (w *walker) add(it model.ParsedItem) model.ParsedItem {
	w.items = append(w.items, it)
	return it
}

func (w *walker) walk(node *sitter.Node) {
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "function_declaration":
			w.add(w.extractFunction(child))
		case "local_function":
			w.add(w.extractLocalFunction(child))
		case "variable_declaration":
			w.extractVariable(child, false)
		case "local_variable_declaration":
			w.extractVariable(child, true)
		default:
			w.walk(child)
		}
	}
}

func (w *walker) extractFunction(node *sitter.Node) model.ParsedItem {
	nameNode := node.ChildByFieldName("name")
	params := node.ChildByFieldName("parameters")
	doc := collectDoc(node, w.content)

	name := ""
	parent := ""
	isReceiver := false
	if nameNode != nil {
		name, parent, isReceiver = splitDottedName(nameNode, w.content)
	}
	qualified := name
	if parent != "" {
		sep := "."
		if isReceiver {
			sep = ":"
		}
		qualified = parent + sep + name
	}

	kind := model.KindFunction
	if parent != "" {
		kind = model.KindMethod
	}

	return w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualified).
		Signature(qualified + formatParams(params, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		Metadata(model.LuaMetadata{IsReceiver: isReceiver, Parent: parent}).
		Build()
}

func (w *walker) extractLocalFunction(node *sitter.Node) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	doc := collectDoc(node, w.content)

	return w.builder().
		Kind(model.KindFunction).
		Name(name).
		QualifiedName(name).
		Signature(name + formatParams(params, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.ModuleVis).
		Metadata(model.LuaMetadata{IsLocal: true}).
		Build()
}

func (w *walker) extractVariable(node *sitter.Node, isLocal bool) {
	doc := collectDoc(node, w.content)
	vis := model.Public
	if isLocal {
		vis = model.ModuleVis
	}
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "variable_list":
			for _, v := range parsetree.NamedChildren(child) {
				w.addVariable(v, isLocal, vis, doc.Text)
			}
		case "identifier":
			w.addVariable(child, isLocal, vis, doc.Text)
		}
	}
}

func (w *walker) addVariable(node *sitter.Node, isLocal bool, vis model.Visibility, doc string) {
	isConst := false
	isClose := false
	name := ""
	if node.Type() == "attribute" {
		if n := node.ChildByFieldName("name"); n != nil {
			name = parsetree.Text(n, w.content)
		}
		text := parsetree.Text(node, w.content)
		isConst = strings.Contains(text, "<const>")
		isClose = strings.Contains(text, "<close>")
	} else {
		name = parsetree.Text(node, w.content)
	}
	if name == "" {
		return
	}
	w.add(w.builder().
		Kind(model.KindGlobalVariable).
		Name(name).
		QualifiedName(name).
		DocComment(doc).
		Range(parsetree.NodeRange(node)).
		Visibility(vis).
		Metadata(model.LuaMetadata{IsLocal: isLocal, IsConst: isConst, IsClose: isClose}).
		Build())
}

// --- helpers ---

func fieldText(node *sitter.Node, field string, content []byte) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		return ""
	}
	return parsetree.Text(n, content)
}

// splitDottedName splits a `dot_index_expression`/`method_index_expression`
// function name (e.g. `M.f` or `M:f`) into its table and member parts.
func splitDottedName(node *sitter.Node, content []byte) (name, parent string, isReceiver bool) {
	switch node.Type() {
	case "dot_index_expression":
		if table := node.ChildByFieldName("table"); table != nil {
			parent = parsetree.Text(table, content)
		}
		if field := node.ChildByFieldName("field"); field != nil {
			name = parsetree.Text(field, content)
		}
		return name, parent, false
	case "method_index_expression":
		if table := node.ChildByFieldName("table"); table != nil {
			parent = parsetree.Text(table, content)
		}
		if method := node.ChildByFieldName("method"); method != nil {
			name = parsetree.Text(method, content)
		}
		return name, parent, true
	default:
		return parsetree.Text(node, content), "", false
	}
}

func formatParams(params *sitter.Node, content []byte) string {
	if params == nil {
		return "()"
	}
	return parsetree.Text(params, content)
}

// collectDoc walks backward over contiguous `--` comment lines immediately
// preceding node, treating `--[[ ]]` long comments as block doc comments.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return docparse.Block{}
	}
	text := parsetree.Text(prev, content)
	if !docparse.Attaches(int(prev.EndPoint().Row), int(node.StartPoint().Row), 0) {
		return docparse.Block{}
	}
	if strings.HasPrefix(text, "--[[") {
		return docparse.CollectBlock(text, "--[[", "]]")
	}

	var raw []*sitter.Node
	cur := prev
	for cur != nil && cur.Type() == "comment" && strings.HasPrefix(parsetree.Text(cur, content), "--") && !strings.HasPrefix(parsetree.Text(cur, content), "--[[") {
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
	if len(raw) == 0 {
		return docparse.Block{}
	}
	lines := make([]string, len(raw))
	for i, c := range raw {
		lines[i] = parsetree.Text(c, content)
	}
	return docparse.CollectLine(lines, "--")
}
