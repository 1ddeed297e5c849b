// Package python extracts ParsedItems from Python source, grounded on the
// tree-sitter Python grammar's statement productions.
package python

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

// Extractor implements extract.Extractor for Python.
type Extractor struct{}

func (Extractor) Language() string     { return "python" }
func (Extractor) Extensions() []string { return []string{".py", ".pyi"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "python", content)
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
	return model.NewBuilder(w.path, "python")
}

// walkBody handles both module and class bodies: parentID/qualifiedPrefix
// are empty at module scope and populated with the owning class's id/name
// once nested, following a scope-stack pattern.
func (w *walker) walkBody(root *sitter.Node, parentID, qualifiedPrefix string) {
	for _, child := range parsetree.NamedChildren(root) {
		switch child.Type() {
		case "function_definition", "async_function_definition":
			w.items = append(w.items, w.extractFunction(child, nil, parentID, qualifiedPrefix))
		case "class_definition":
			w.extractClass(child, nil, parentID, qualifiedPrefix)
		case "decorated_definition":
			w.extractDecorated(child, parentID, qualifiedPrefix)
		case "expression_statement":
			w.extractAssignments(child, parentID, qualifiedPrefix)
		}
	}
}

func (w *walker) extractDecorated(node *sitter.Node, parentID, qualifiedPrefix string) {
	var decorators []string
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "decorator":
			decorators = append(decorators, decoratorName(child, w.content))
		case "function_definition", "async_function_definition":
			w.items = append(w.items, w.extractFunction(child, decorators, parentID, qualifiedPrefix))
		case "class_definition":
			w.extractClass(child, decorators, parentID, qualifiedPrefix)
		}
	}
}

func decoratorName(node *sitter.Node, content []byte) string {
	text := strings.TrimPrefix(node.Content(content), "@")
	if idx := strings.IndexAny(text, "(\n"); idx != -1 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func (w *walker) extractFunction(node *sitter.Node, decorators []string, parentID, qualifiedPrefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")
	body := node.ChildByFieldName("body")

	doc := extractDocstring(body, w.content)
	qualified := name
	if qualifiedPrefix != "" {
		qualified = qualifiedPrefix + "." + name
	}

	kind := model.KindFunction
	if parentID != "" {
		kind = model.KindMethod
	}

	meta := model.PythonMetadata{
		IsAsync:     node.Type() == "async_function_definition",
		IsGenerator: bodyYields(body),
		Decorators:  decorators,
		Parameters:  extractParameters(params, w.content),
	}
	if returnType != nil {
		meta.ReturnType = parsetree.Text(returnType, w.content)
	}
	for _, d := range decorators {
		switch d {
		case "property":
			meta.IsProperty = true
		case "staticmethod":
			meta.IsStaticmethod = true
		case "classmethod":
			meta.IsClassmethod = true
		case "abstractmethod":
			meta.IsAbstract = true
		case "overload":
			meta.IsOverload = true
		}
	}

	return w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualified).
		Signature(name + formatSignature(params, returnType, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(pythonVisibility(name)).
		ParentID(parentID).
		Metadata(meta).
		Build()
}

func (w *walker) extractClass(node *sitter.Node, decorators []string, parentID, qualifiedPrefix string) {
	name := fieldText(node, "name", w.content)
	body := node.ChildByFieldName("body")
	doc := extractDocstring(body, w.content)

	qualified := name
	if qualifiedPrefix != "" {
		qualified = qualifiedPrefix + "." + name
	}

	var bases []string
	if super := node.ChildByFieldName("superclasses"); super != nil {
		bases = extractBases(super, w.content)
	}

	meta := model.PythonMetadata{BaseClasses: bases, Decorators: decorators}
	for _, b := range bases {
		switch {
		case strings.HasSuffix(b, "BaseModel"):
			meta.IsPydantic = true
		case strings.HasSuffix(b, "Protocol"):
			meta.IsProtocol = true
		}
	}
	for _, d := range decorators {
		if d == "dataclass" {
			meta.IsDataclass = true
		}
	}

	cls := w.builder().
		Kind(model.KindClass).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(pythonVisibility(name)).
		ParentID(parentID).
		Metadata(meta).
		Build()
	w.items = append(w.items, cls)

	if body != nil {
		w.walkClassBody(body, cls.ID, qualified)
	}
}

// walkClassBody is like walkBody but also recognizes top-level class
// attributes.
func (w *walker) walkClassBody(body *sitter.Node, parentID, qualifiedPrefix string) {
	for _, child := range parsetree.NamedChildren(body) {
		switch child.Type() {
		case "function_definition", "async_function_definition":
			w.items = append(w.items, w.extractFunction(child, nil, parentID, qualifiedPrefix))
		case "class_definition":
			w.extractClass(child, nil, parentID, qualifiedPrefix)
		case "decorated_definition":
			w.extractDecorated(child, parentID, qualifiedPrefix)
		case "expression_statement":
			w.extractClassAttribute(child, parentID, qualifiedPrefix)
		}
	}
}

func (w *walker) extractClassAttribute(node *sitter.Node, parentID, qualifiedPrefix string) {
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "assignment":
			left := child.ChildByFieldName("left")
			if left == nil || left.Type() != "identifier" {
				continue
			}
			name := parsetree.Text(left, w.content)
			typeText := ""
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				typeText = parsetree.Text(typeNode, w.content)
			}
			w.items = append(w.items, w.builder().
				Kind(model.KindAttribute).
				Name(name).
				QualifiedName(qualifiedPrefix+"."+name).
				Signature(typeText).
				Range(parsetree.NodeRange(node)).
				Visibility(pythonVisibility(name)).
				ParentID(parentID).
				Metadata(model.PythonMetadata{}).
				Build())
		}
	}
}

func (w *walker) extractAssignments(node *sitter.Node, parentID, qualifiedPrefix string) {
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() != "assignment" {
			continue
		}
		left := child.ChildByFieldName("left")
		if left == nil || left.Type() != "identifier" {
			continue
		}
		name := parsetree.Text(left, w.content)
		if strings.HasPrefix(name, "_") {
			continue
		}
		w.items = append(w.items, w.builder().
			Kind(model.KindGlobalVariable).
			Name(name).
			Range(parsetree.NodeRange(node)).
			Visibility(pythonVisibility(name)).
			ParentID(parentID).
			Build())
	}
}

func extractBases(node *sitter.Node, content []byte) []string {
	var bases []string
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() != "keyword_argument" {
			bases = append(bases, parsetree.Text(child, content))
		}
	}
	return bases
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
		case "typed_parameter":
			p.Name = parsetree.Text(child.NamedChild(0), content)
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = parsetree.Text(t, content)
			}
		case "default_parameter":
			if n := child.ChildByFieldName("name"); n != nil {
				p.Name = parsetree.Text(n, content)
			}
			if v := child.ChildByFieldName("value"); v != nil {
				p.Default = parsetree.Text(v, content)
			}
			p.IsOptional = true
		case "typed_default_parameter":
			if n := child.ChildByFieldName("name"); n != nil {
				p.Name = parsetree.Text(n, content)
			}
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = parsetree.Text(t, content)
			}
			if v := child.ChildByFieldName("value"); v != nil {
				p.Default = parsetree.Text(v, content)
			}
			p.IsOptional = true
		case "list_splat_pattern":
			p.Name = parsetree.Text(child, content)
			p.IsVariadic = true
		case "dictionary_splat_pattern":
			p.Name = parsetree.Text(child, content)
			p.IsKeywordOnly = true
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

func formatSignature(params, returnType *sitter.Node, content []byte) string {
	var sb strings.Builder
	if params != nil {
		sb.WriteString(parsetree.Text(params, content))
	} else {
		sb.WriteString("()")
	}
	if returnType != nil {
		sb.WriteString(" -> ")
		sb.WriteString(parsetree.Text(returnType, content))
	}
	return sb.String()
}

// bodyYields reports whether a yield/yield-from expression occurs in body
// at any depth that isn't inside a nested function or class.
func bodyYields(body *sitter.Node) bool {
	if body == nil {
		return false
	}
	var walk func(n *sitter.Node) bool
	walk = func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition", "async_function_definition", "class_definition", "lambda":
			return false
		case "yield":
			return true
		}
		for _, child := range parsetree.NamedChildren(n) {
			if walk(child) {
				return true
			}
		}
		return false
	}
	for _, stmt := range parsetree.NamedChildren(body) {
		if walk(stmt) {
			return true
		}
	}
	return false
}

func extractDocstring(body *sitter.Node, content []byte) docparse.Block {
	if body == nil || body.NamedChildCount() == 0 {
		return docparse.Block{}
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return docparse.Block{}
	}
	expr := first.NamedChild(0)
	if expr.Type() != "string" {
		return docparse.Block{}
	}
	return docparse.CollectDocstring(parsetree.Text(expr, content))
}

func fieldText(node *sitter.Node, field string, content []byte) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		return ""
	}
	return parsetree.Text(n, content)
}

// pythonVisibility applies PEP 8's leading-underscore convention: a single
// leading underscore maps to protected, a leading double underscore
// without a trailing one (name-mangled) maps to private, a dunder name is
// left public (magic methods are part of the public protocol), anything
// else is public.
func pythonVisibility(name string) model.Visibility {
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		return model.Public
	}
	if strings.HasPrefix(name, "__") {
		return model.Private
	}
	if strings.HasPrefix(name, "_") {
		return model.Protected
	}
	return model.Public
}
