// Package java extracts ParsedItems from Java source, grounded on the
// tree-sitter Java grammar's declaration productions.
package java

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

// Extractor implements extract.Extractor for Java.
type Extractor struct{}

func (Extractor) Language() string     { return "java" }
func (Extractor) Extensions() []string { return []string{".java"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "java", content)
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
	return model.NewBuilder(w.path, "java")
}

func (w *walker) add(it model.ParsedItem) model.ParsedItem {
	w.items = append(w.items, it)
	return it
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (w *walker) walkBody(node *sitter.Node, parentID, prefix string) {
	for _, child := range parsetree.NamedChildren(node) {
		w.dispatch(child, parentID, prefix)
	}
}

func (w *walker) dispatch(node *sitter.Node, parentID, prefix string) {
	switch node.Type() {
	case "package_declaration":
		// package scope is recorded via the first component's qualified name
		// prefix only when needed; the extractor keeps files self-contained
		// per declaration, so no item is emitted for the package clause.
	case "class_declaration":
		w.extractTypeLike(node, model.KindClass, parentID, prefix)
	case "interface_declaration":
		w.extractTypeLike(node, model.KindInterface, parentID, prefix)
	case "enum_declaration":
		w.extractEnum(node, parentID, prefix)
	case "record_declaration":
		w.extractRecord(node, parentID, prefix)
	case "annotation_type_declaration":
		w.extractTypeLike(node, model.KindInterface, parentID, prefix)
	case "method_declaration", "constructor_declaration":
		w.add(w.extractMethod(node, parentID, prefix))
	case "field_declaration":
		w.extractField(node, parentID, prefix)
	}
}

func (w *walker) extractTypeLike(node *sitter.Node, kind model.SymbolKind, parentID, prefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)
	mods := modifiers(node, w.content)

	var extends string
	var implements []string
	if sc := node.ChildByFieldName("superclass"); sc != nil {
		if t := sc.NamedChild(0); t != nil {
			extends = parsetree.Text(t, w.content)
		}
	}
	if si := node.ChildByFieldName("interfaces"); si != nil {
		for _, t := range parsetree.NamedChildren(si) {
			implements = append(implements, parsetree.Text(t, w.content))
		}
	}
	if ext := node.ChildByFieldName("extends_interfaces"); ext != nil && kind == model.KindInterface {
		for _, t := range parsetree.NamedChildren(ext) {
			implements = append(implements, parsetree.Text(t, w.content))
		}
	}

	item := w.add(w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(javaVisibility(mods)).
		ParentID(parentID).
		Metadata(model.JavaMetadata{
			Modifiers:      mods,
			TypeParameters: extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
			Extends:        extends,
			Implements:     implements,
			Annotations:    annotations(node, w.content),
		}).
		Build())

	body := node.ChildByFieldName("body")
	if body != nil {
		w.walkBody(body, item.ID, qualified)
	}
}

func (w *walker) extractRecord(node *sitter.Node, parentID, prefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)
	mods := modifiers(node, w.content)

	var components []model.Field
	if params := node.ChildByFieldName("parameters"); params != nil {
		for _, p := range parsetree.NamedChildren(params) {
			if p.Type() != "formal_parameter" {
				continue
			}
			fname := fieldText(p, "name", w.content)
			ftype := ""
			if t := p.ChildByFieldName("type"); t != nil {
				ftype = parsetree.Text(t, w.content)
			}
			components = append(components, model.Field{Name: fname, Type: ftype})
		}
	}

	var implements []string
	if si := node.ChildByFieldName("interfaces"); si != nil {
		for _, t := range parsetree.NamedChildren(si) {
			implements = append(implements, parsetree.Text(t, w.content))
		}
	}

	item := w.add(w.builder().
		Kind(model.KindClass).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(javaVisibility(mods)).
		ParentID(parentID).
		Metadata(model.JavaMetadata{
			Modifiers:        mods,
			TypeParameters:   extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
			Implements:       implements,
			IsRecord:         true,
			RecordComponents: components,
			Annotations:      annotations(node, w.content),
		}).
		Build())

	body := node.ChildByFieldName("body")
	if body != nil {
		w.walkBody(body, item.ID, qualified)
	}
}

func (w *walker) extractEnum(node *sitter.Node, parentID, prefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)
	mods := modifiers(node, w.content)

	var implements []string
	if si := node.ChildByFieldName("interfaces"); si != nil {
		for _, t := range parsetree.NamedChildren(si) {
			implements = append(implements, parsetree.Text(t, w.content))
		}
	}

	item := w.add(w.builder().
		Kind(model.KindEnum).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(javaVisibility(mods)).
		ParentID(parentID).
		Metadata(model.JavaMetadata{Modifiers: mods, Implements: implements, Annotations: annotations(node, w.content)}).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, child := range parsetree.NamedChildren(body) {
		switch child.Type() {
		case "enum_constant":
			vname := fieldText(child, "name", w.content)
			w.add(w.builder().
				Kind(model.KindEnumVariant).
				Name(vname).
				QualifiedName(qualify(qualified, vname)).
				Range(parsetree.NodeRange(child)).
				Visibility(model.Public).
				ParentID(item.ID).
				Build())
		case "enum_body_declarations":
			w.walkBody(child, item.ID, qualified)
		}
	}
}

func (w *walker) extractMethod(node *sitter.Node, parentID, prefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("type")
	doc := collectDoc(node, w.content)
	mods := modifiers(node, w.content)

	kind := model.KindMethod
	if node.Type() == "constructor_declaration" {
		kind = model.KindConstructor
	}

	returnStr := ""
	if returnType != nil {
		returnStr = parsetree.Text(returnType, w.content)
	}

	return w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature(name + formatParams(params, w.content) + returnSuffix(returnStr)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(javaVisibility(mods)).
		ParentID(parentID).
		Metadata(model.JavaMetadata{
			Modifiers:      mods,
			TypeParameters: extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
			Parameters:     extractParameters(params, w.content),
			ReturnType:     returnStr,
			Annotations:    annotations(node, w.content),
		}).
		Build()
}

func (w *walker) extractField(node *sitter.Node, parentID, prefix string) {
	typeNode := node.ChildByFieldName("type")
	typeStr := ""
	if typeNode != nil {
		typeStr = parsetree.Text(typeNode, w.content)
	}
	doc := collectDoc(node, w.content)
	mods := modifiers(node, w.content)

	for _, declarator := range parsetree.NamedChildren(node) {
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := parsetree.Text(nameNode, w.content)
		w.add(w.builder().
			Kind(model.KindField).
			Name(name).
			QualifiedName(qualify(prefix, name)).
			Signature(typeStr).
			DocComment(doc.Text).
			Range(parsetree.NodeRange(node)).
			Visibility(javaVisibility(mods)).
			ParentID(parentID).
			Metadata(model.JavaMetadata{Modifiers: mods, Annotations: annotations(node, w.content)}).
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

func modifiers(node *sitter.Node, content []byte) []string {
	var mods []string
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() != "modifiers" {
			continue
		}
		// Modifier keywords (public, static, ...) are anonymous tokens, so
		// every child is walked, not only the named ones.
		for _, m := range parsetree.Children(child) {
			if m.Type() != "annotation" && m.Type() != "marker_annotation" {
				mods = append(mods, parsetree.Text(m, content))
			}
		}
	}
	return mods
}

func annotations(node *sitter.Node, content []byte) []string {
	var anns []string
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() != "modifiers" {
			continue
		}
		for _, m := range parsetree.NamedChildren(child) {
			if m.Type() == "annotation" || m.Type() == "marker_annotation" {
				anns = append(anns, parsetree.Text(m, content))
			}
		}
	}
	return anns
}

func hasModifier(mods []string, name string) bool {
	for _, m := range mods {
		if m == name {
			return true
		}
	}
	return false
}

// javaVisibility maps Java's three explicit access modifiers plus
// package-private default onto the shared visibility lattice.
func javaVisibility(mods []string) model.Visibility {
	switch {
	case hasModifier(mods, "public"):
		return model.Public
	case hasModifier(mods, "private"):
		return model.Private
	case hasModifier(mods, "protected"):
		return model.Protected
	default:
		return model.Package
	}
}

func extractTypeParams(node *sitter.Node, content []byte) []model.GenericParameter {
	if node == nil {
		return nil
	}
	var out []model.GenericParameter
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() != "type_parameter" {
			continue
		}
		name := fieldText(child, "name", content)
		var bounds []string
		if b := child.ChildByFieldName("bound"); b != nil {
			bounds = append(bounds, parsetree.Text(b, content))
		}
		out = append(out, model.GenericParameter{Name: name, Bounds: bounds})
	}
	return out
}

func extractParameters(params *sitter.Node, content []byte) []model.Parameter {
	if params == nil {
		return nil
	}
	var out []model.Parameter
	for _, child := range parsetree.NamedChildren(params) {
		p := model.Parameter{}
		switch child.Type() {
		case "formal_parameter":
			if n := child.ChildByFieldName("name"); n != nil {
				p.Name = parsetree.Text(n, content)
			}
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = parsetree.Text(t, content)
			}
		case "spread_parameter":
			p.IsVariadic = true
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
		return "()"
	}
	return parsetree.Text(params, content)
}

func returnSuffix(returnType string) string {
	if returnType == "" {
		return ""
	}
	return " " + returnType
}

// collectDoc recognizes Javadoc (/** */) blocks immediately preceding node,
// allowing intervening annotation lines between the comment and the
// declaration it documents.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "block_comment" && prev.Type() != "comment" {
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
