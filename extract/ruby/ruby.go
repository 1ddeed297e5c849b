// Package ruby extracts ParsedItems from Ruby source, grounded on the
// tree-sitter Ruby grammar's method/class/module productions.
package ruby

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

// Extractor implements extract.Extractor for Ruby.
type Extractor struct{}

func (Extractor) Language() string     { return "ruby" }
func (Extractor) Extensions() []string { return []string{".rb"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "ruby", content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{path: path, content: content}
	w.walkBody(tree.RootNode(), "", "")
	return w.items, nil
}

type walker struct {
	path    string
	content []byte
	items   []model.ParsedItem
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, "ruby")
}

func (w *walker) add(it model.ParsedItem) model.ParsedItem {
	w.items = append(w.items, it)
	return it
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "::" + name
}

func (w *walker) walkBody(node *sitter.Node, parentID, prefix string) {
	access := "public"
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "class":
			w.extractClass(child, parentID, prefix)
		case "module":
			w.extractModule(child, parentID, prefix)
		case "method":
			w.add(w.extractMethod(child, parentID, prefix, access))
		case "singleton_method":
			w.add(w.extractSingletonMethod(child, parentID, prefix))
		case "call":
			if newAccess, ok := accessCallTarget(child, w.content); ok {
				access = newAccess
				continue
			}
			if acc, name, ok := accessorCall(child, w.content); ok {
				w.add(w.extractAccessor(child, name, acc, parentID, prefix, access))
			}
		case "assignment":
			w.extractConstant(child, parentID, prefix, access)
		case "identifier":
			// A bare `private`/`protected`/`public` with no receiver or
			// arguments parses as an identifier rather than a call.
			switch name := parsetree.Text(child, w.content); name {
			case "private", "protected", "public":
				access = name
			}
		}
	}
}

func (w *walker) extractClass(node *sitter.Node, parentID, prefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)

	var superclass string
	if sc := node.ChildByFieldName("superclass"); sc != nil {
		superclass = strings.TrimPrefix(parsetree.Text(sc, w.content), "< ")
	}

	item := w.add(w.builder().
		Kind(model.KindClass).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.RubyMetadata{Mixins: mixinsOf(node, w.content), AccessorKind: ""}).
		Build())
	_ = superclass

	body := node.ChildByFieldName("body")
	if body != nil {
		w.walkBody(body, item.ID, qualified)
	}
}

func (w *walker) extractModule(node *sitter.Node, parentID, prefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)

	item := w.add(w.builder().
		Kind(model.KindModule).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.RubyMetadata{Mixins: mixinsOf(node, w.content)}).
		Build())

	body := node.ChildByFieldName("body")
	if body != nil {
		w.walkBody(body, item.ID, qualified)
	}
}

func (w *walker) extractMethod(node *sitter.Node, parentID, prefix, access string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	doc := collectDoc(node, w.content)

	return w.builder().
		Kind(model.KindMethod).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature(name + formatParams(params, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(rubyVisibility(access)).
		ParentID(parentID).
		Metadata(model.RubyMetadata{Parameters: extractParameters(params, w.content)}).
		Build()
}

func (w *walker) extractSingletonMethod(node *sitter.Node, parentID, prefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	doc := collectDoc(node, w.content)

	return w.builder().
		Kind(model.KindMethod).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature("self." + name + formatParams(params, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.RubyMetadata{IsClassMethod: true, IsSingleton: true, Parameters: extractParameters(params, w.content)}).
		Build()
}

func (w *walker) extractAccessor(node *sitter.Node, name, kind, parentID, prefix, access string) model.ParsedItem {
	return w.builder().
		Kind(model.KindProperty).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Range(parsetree.NodeRange(node)).
		Visibility(rubyVisibility(access)).
		ParentID(parentID).
		Metadata(model.RubyMetadata{AccessorKind: kind}).
		Build()
}

func (w *walker) extractConstant(node *sitter.Node, parentID, prefix, access string) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Type() != "constant" {
		return
	}
	name := parsetree.Text(left, w.content)
	w.add(w.builder().
		Kind(model.KindGlobalVariable).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Range(parsetree.NodeRange(node)).
		Visibility(rubyVisibility(access)).
		ParentID(parentID).
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

// accessCallTarget recognizes bare `private`/`protected`/`public` calls
// that toggle the default visibility for subsequent methods.
func accessCallTarget(node *sitter.Node, content []byte) (string, bool) {
	method := node.ChildByFieldName("method")
	if method == nil || node.ChildByFieldName("arguments") != nil {
		return "", false
	}
	name := parsetree.Text(method, content)
	switch name {
	case "private", "protected", "public":
		return name, true
	}
	return "", false
}

func mixinTarget(node *sitter.Node, content []byte) (string, bool) {
	method := node.ChildByFieldName("method")
	if method == nil {
		return "", false
	}
	name := parsetree.Text(method, content)
	switch name {
	case "include", "extend", "prepend":
		if args := node.ChildByFieldName("arguments"); args != nil && args.NamedChildCount() > 0 {
			return parsetree.Text(args.NamedChild(0), content), true
		}
	}
	return "", false
}

func mixinsOf(classOrModule *sitter.Node, content []byte) []string {
	body := classOrModule.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var mixins []string
	for _, child := range parsetree.NamedChildren(body) {
		if child.Type() != "call" {
			continue
		}
		if target, ok := mixinTarget(child, content); ok {
			mixins = append(mixins, target)
		}
	}
	return mixins
}

// accessorCall recognizes `attr_reader`/`attr_writer`/`attr_accessor`
// calls and returns the declared attribute's kind and name; only the first argument is
// surfaced since each call commonly declares one property per line in
// idiomatic style.
func accessorCall(node *sitter.Node, content []byte) (kind, name string, ok bool) {
	method := node.ChildByFieldName("method")
	if method == nil {
		return "", "", false
	}
	switch parsetree.Text(method, content) {
	case "attr_reader":
		kind = "reader"
	case "attr_writer":
		kind = "writer"
	case "attr_accessor":
		kind = "accessor"
	default:
		return "", "", false
	}
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return "", "", false
	}
	first := args.NamedChild(0)
	name = strings.TrimPrefix(parsetree.Text(first, content), ":")
	return kind, name, true
}

func extractParameters(params *sitter.Node, content []byte) []model.Parameter {
	if params == nil {
		return nil
	}
	var out []model.Parameter
	for _, child := range parsetree.NamedChildren(params) {
		p := model.Parameter{}
		switch child.Type() {
		case "identifier":
			p.Name = parsetree.Text(child, content)
		case "optional_parameter":
			if n := child.ChildByFieldName("name"); n != nil {
				p.Name = parsetree.Text(n, content)
			}
			if v := child.ChildByFieldName("value"); v != nil {
				p.Default = parsetree.Text(v, content)
			}
			p.IsOptional = true
		case "keyword_parameter":
			if n := child.ChildByFieldName("name"); n != nil {
				p.Name = parsetree.Text(n, content)
			}
			if v := child.ChildByFieldName("value"); v != nil {
				p.Default = parsetree.Text(v, content)
				p.IsOptional = true
			}
			p.IsKeywordOnly = true
		case "splat_parameter":
			p.Name = parsetree.Text(child, content)
			p.IsVariadic = true
		case "hash_splat_parameter":
			p.Name = parsetree.Text(child, content)
			p.IsKeywordOnly = true
		case "block_parameter":
			p.Name = parsetree.Text(child, content)
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

func formatParams(params *sitter.Node, content []byte) string {
	if params == nil {
		return ""
	}
	return parsetree.Text(params, content)
}

func rubyVisibility(access string) model.Visibility {
	switch access {
	case "private":
		return model.Private
	case "protected":
		return model.Protected
	default:
		return model.Public
	}
}

// collectDoc walks backward over contiguous `#` comment lines immediately
// preceding node.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return docparse.Block{}
	}
	if !docparse.Attaches(int(prev.EndPoint().Row), int(node.StartPoint().Row), 0) {
		return docparse.Block{}
	}
	var raw []*sitter.Node
	cur := prev
	for cur != nil && cur.Type() == "comment" {
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
