// Package php extracts ParsedItems from PHP source, grounded on the
// tree-sitter PHP grammar's declaration productions.
package php

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

// Extractor implements extract.Extractor for PHP.
type Extractor struct{}

func (Extractor) Language() string     { return "php" }
func (Extractor) Extensions() []string { return []string{".php"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "php", content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{path: path, content: content}
	w.walkBody(tree.RootNode(), "", "", "")
	return w.items, nil
}

type walker struct {
	path    string
	content []byte
	items   []model.ParsedItem
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, "php")
}

func (w *walker) add(it model.ParsedItem) model.ParsedItem {
	w.items = append(w.items, it)
	return it
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "\\" + name
}

func (w *walker) walkBody(node *sitter.Node, parentID, prefix, namespace string) {
	for _, child := range parsetree.NamedChildren(node) {
		w.dispatch(child, parentID, prefix, namespace)
	}
}

func (w *walker) dispatch(node *sitter.Node, parentID, prefix, namespace string) {
	switch node.Type() {
	case "namespace_definition":
		w.extractNamespace(node, parentID)
	case "namespace_use_declaration":
		// use-imports are not surfaced as items; they only affect name
		// resolution, which this extractor leaves unresolved.
	case "class_declaration":
		w.extractClassLike(node, model.KindClass, parentID, prefix, namespace)
	case "interface_declaration":
		w.extractClassLike(node, model.KindInterface, parentID, prefix, namespace)
	case "trait_declaration":
		w.extractClassLike(node, model.KindTrait, parentID, prefix, namespace)
	case "enum_declaration":
		w.extractEnum(node, parentID, prefix, namespace)
	case "function_definition":
		w.add(w.extractFunction(node, parentID, prefix, namespace))
	case "compound_statement":
		w.walkBody(node, parentID, prefix, namespace)
	}
}

func (w *walker) extractNamespace(node *sitter.Node, parentID string) {
	name := fieldText(node, "name", w.content)
	item := w.add(w.builder().
		Kind(model.KindNamespace).
		Name(name).
		QualifiedName(name).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Build())

	body := node.ChildByFieldName("body")
	if body != nil {
		w.walkBody(body, item.ID, "", name)
	} else {
		w.walkBody(node, item.ID, "", name)
	}
}

func (w *walker) extractClassLike(node *sitter.Node, kind model.SymbolKind, parentID, prefix, namespace string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)
	mods := modifiers(node, w.content)

	var traitUses []string
	body := node.ChildByFieldName("body")

	item := w.add(w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.PHPMetadata{
			IsAbstract: hasWord(mods, "abstract"),
			IsFinal:    hasWord(mods, "final"),
			Namespace:  namespace,
		}).
		Build())

	if body == nil {
		return
	}
	for _, member := range parsetree.NamedChildren(body) {
		switch member.Type() {
		case "use_declaration":
			for _, t := range parsetree.NamedChildren(member) {
				if t.Type() == "name" || t.Type() == "qualified_name" {
					traitUses = append(traitUses, parsetree.Text(t, w.content))
				}
			}
		case "method_declaration":
			w.add(w.extractMethod(member, item.ID, qualified))
		case "property_declaration":
			w.extractProperty(member, item.ID, qualified)
		case "const_declaration":
			w.extractConst(member, item.ID, qualified)
		}
	}
	if len(traitUses) > 0 {
		if m, ok := item.Metadata.(model.PHPMetadata); ok {
			m.TraitUses = traitUses
			item.Metadata = m
			w.items[len(w.items)-1] = item
		}
	}
}

func (w *walker) extractEnum(node *sitter.Node, parentID, prefix, namespace string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)

	backing := ""
	if bt := node.ChildByFieldName("backing_type"); bt != nil {
		backing = parsetree.Text(bt, w.content)
	}

	item := w.add(w.builder().
		Kind(model.KindEnum).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.PHPMetadata{BackingType: backing, Namespace: namespace}).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, member := range parsetree.NamedChildren(body) {
		switch member.Type() {
		case "enum_case":
			vname := fieldText(member, "name", w.content)
			w.add(w.builder().
				Kind(model.KindEnumVariant).
				Name(vname).
				QualifiedName(qualify(qualified, vname)).
				Range(parsetree.NodeRange(member)).
				Visibility(model.Public).
				ParentID(item.ID).
				Build())
		case "method_declaration":
			w.add(w.extractMethod(member, item.ID, qualified))
		}
	}
}

func (w *walker) extractFunction(node *sitter.Node, parentID, prefix, namespace string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")
	doc := collectDoc(node, w.content)
	returnStr := ""
	if returnType != nil {
		returnStr = parsetree.Text(returnType, w.content)
	}

	return w.builder().
		Kind(model.KindFunction).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature("function " + name + formatParams(params, w.content) + returnSuffix(returnStr)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.PHPMetadata{Parameters: extractParameters(params, w.content), ReturnType: returnStr, Namespace: namespace}).
		Build()
}

func (w *walker) extractMethod(node *sitter.Node, parentID, qualifiedPrefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")
	doc := collectDoc(node, w.content)
	mods := modifiers(node, w.content)
	returnStr := ""
	if returnType != nil {
		returnStr = parsetree.Text(returnType, w.content)
	}

	kind := model.KindMethod
	if name == "__construct" {
		kind = model.KindConstructor
	}

	return w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualify(qualifiedPrefix, name)).
		Signature("function " + name + formatParams(params, w.content) + returnSuffix(returnStr)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(phpVisibility(mods)).
		ParentID(parentID).
		Metadata(model.PHPMetadata{
			IsStatic:   hasWord(mods, "static"),
			IsAbstract: hasWord(mods, "abstract"),
			IsFinal:    hasWord(mods, "final"),
			Parameters: extractParameters(params, w.content),
			ReturnType: returnStr,
		}).
		Build()
}

func (w *walker) extractProperty(node *sitter.Node, parentID, qualifiedPrefix string) {
	mods := modifiers(node, w.content)
	typeNode := node.ChildByFieldName("type")
	typeStr := ""
	if typeNode != nil {
		typeStr = parsetree.Text(typeNode, w.content)
	}
	doc := collectDoc(node, w.content)

	for _, element := range parsetree.NamedChildren(node) {
		if element.Type() != "property_element" {
			continue
		}
		nameNode := element.ChildByFieldName("name")
		if nameNode == nil {
			if element.NamedChildCount() > 0 {
				nameNode = element.NamedChild(0)
			} else {
				continue
			}
		}
		name := strings.TrimPrefix(parsetree.Text(nameNode, w.content), "$")
		w.add(w.builder().
			Kind(model.KindField).
			Name(name).
			QualifiedName(qualify(qualifiedPrefix, name)).
			Signature(typeStr).
			DocComment(doc.Text).
			Range(parsetree.NodeRange(node)).
			Visibility(phpVisibility(mods)).
			ParentID(parentID).
			Metadata(model.PHPMetadata{
				IsStatic:   hasWord(mods, "static"),
				IsReadonly: hasWord(mods, "readonly"),
			}).
			Build())
	}
}

func (w *walker) extractConst(node *sitter.Node, parentID, qualifiedPrefix string) {
	for _, element := range parsetree.NamedChildren(node) {
		if element.Type() != "const_element" {
			continue
		}
		nameNode := element.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := parsetree.Text(nameNode, w.content)
		w.add(w.builder().
			Kind(model.KindConstant).
			Name(name).
			QualifiedName(qualify(qualifiedPrefix, name)).
			Range(parsetree.NodeRange(node)).
			Visibility(model.Public).
			ParentID(parentID).
			Build())
	}
}

// --- helpers ---

func fieldText(node *sitter.Node, field string, content []byte) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		return ""
	}
	return parsetree.Text(n, content)
}

func modifiers(node *sitter.Node, content []byte) string {
	var sb strings.Builder
	for _, child := range parsetree.Children(node) {
		switch child.Type() {
		case "visibility_modifier", "static_modifier", "abstract_modifier", "final_modifier", "readonly_modifier":
			sb.WriteString(parsetree.Text(child, content))
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func hasWord(text, word string) bool {
	idx := strings.Index(text, word)
	if idx == -1 {
		return false
	}
	before := idx == 0 || !isIdentByte(text[idx-1])
	after := idx+len(word) >= len(text) || !isIdentByte(text[idx+len(word)])
	return before && after
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// phpVisibility maps PHP's three access modifiers onto the shared
// lattice; an unmarked class member defaults to public.
func phpVisibility(mods string) model.Visibility {
	switch {
	case hasWord(mods, "private"):
		return model.Private
	case hasWord(mods, "protected"):
		return model.Protected
	default:
		return model.Public
	}
}

func extractParameters(params *sitter.Node, content []byte) []model.Parameter {
	if params == nil {
		return nil
	}
	var out []model.Parameter
	for _, child := range parsetree.NamedChildren(params) {
		p := model.Parameter{}
		switch child.Type() {
		case "simple_parameter":
			if n := child.ChildByFieldName("name"); n != nil {
				p.Name = strings.TrimPrefix(parsetree.Text(n, content), "$")
			}
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = parsetree.Text(t, content)
			}
			if v := child.ChildByFieldName("default_value"); v != nil {
				p.Default = parsetree.Text(v, content)
				p.IsOptional = true
			}
		case "variadic_parameter":
			if n := child.ChildByFieldName("name"); n != nil {
				p.Name = strings.TrimPrefix(parsetree.Text(n, content), "$")
			}
			p.IsVariadic = true
		case "property_promotion_parameter":
			if n := child.ChildByFieldName("name"); n != nil {
				p.Name = strings.TrimPrefix(parsetree.Text(n, content), "$")
			}
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = parsetree.Text(t, content)
			}
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

func formatParams(params *sitter.Node, content []byte) string {
	if params == nil {
		return "()"
	}
	return parsetree.Text(params, content)
}

func returnSuffix(returnType string) string {
	if returnType == "" {
		return ""
	}
	return ": " + returnType
}

// collectDoc recognizes PHPDoc (/** */) blocks immediately preceding node.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return docparse.Block{}
	}
	text := parsetree.Text(prev, content)
	if !strings.HasPrefix(text, "/**") {
		return docparse.Block{}
	}
	if !docparse.Attaches(int(prev.EndPoint().Row), int(node.StartPoint().Row), 0) {
		return docparse.Block{}
	}
	return docparse.CollectBlock(text, "/*", "*/")
}
