// Package csharp extracts ParsedItems from C# source, grounded on the
// tree-sitter C# grammar's declaration productions.
package csharp

import (
	"strings"

	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roveo/codextract/docparse"
	"github.com/roveo/codextract/extract"
	"github.com/roveo/codextract/model"
	"github.com/roveo/codextract/parsetree"
)

func init() {
	extract.Register(&Extractor{})
}

// Extractor implements extract.Extractor for C#.
type Extractor struct{}

func (Extractor) Language() string     { return "csharp" }
func (Extractor) Extensions() []string { return []string{".cs"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "csharp", content)
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
	return model.NewBuilder(w.path, "csharp")
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
	case "namespace_declaration", "file_scoped_namespace_declaration":
		w.extractNamespace(node, parentID, prefix)
	case "class_declaration":
		w.extractTypeLike(node, model.KindClass, parentID, prefix)
	case "interface_declaration":
		w.extractTypeLike(node, model.KindInterface, parentID, prefix)
	case "struct_declaration":
		w.extractTypeLike(node, model.KindStruct, parentID, prefix)
	case "record_declaration":
		w.extractTypeLike(node, model.KindClass, parentID, prefix)
	case "enum_declaration":
		w.extractEnum(node, parentID, prefix)
	case "method_declaration", "constructor_declaration":
		w.add(w.extractMethod(node, parentID, prefix))
	case "property_declaration":
		w.add(w.extractProperty(node, parentID, prefix))
	case "field_declaration":
		w.extractField(node, parentID, prefix)
	case "delegate_declaration":
		w.add(w.extractDelegate(node, parentID, prefix))
	}
}

func (w *walker) extractNamespace(node *sitter.Node, parentID, prefix string) {
	name := fieldText(node, "name", w.content)
	qualified := qualify(prefix, name)
	item := w.add(w.builder().
		Kind(model.KindNamespace).
		Name(name).
		QualifiedName(qualified).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Build())

	body := node.ChildByFieldName("body")
	if body != nil {
		w.walkBody(body, item.ID, qualified)
	} else {
		// file-scoped namespace: remaining siblings belong to it, but the
		// grammar still nests declarations as named children of the
		// compilation unit following the namespace node.
		w.walkBody(node, item.ID, qualified)
	}
}

func (w *walker) extractTypeLike(node *sitter.Node, kind model.SymbolKind, parentID, prefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)
	mods := modifiers(node, w.content)

	var bases []string
	if base := node.ChildByFieldName("bases"); base != nil {
		for _, t := range parsetree.NamedChildren(base) {
			bases = append(bases, parsetree.Text(t, w.content))
		}
	}

	item := w.add(w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(csharpVisibility(mods)).
		ParentID(parentID).
		Metadata(model.CSharpMetadata{
			Access:             accessFromModifiers(mods),
			Modifiers:          mods,
			GenericConstraints: extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
			Attributes:         attributes(node, w.content),
			IsPartial:          hasModifier(mods, "partial"),
		}).
		Build())
	_ = bases

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

	item := w.add(w.builder().
		Kind(model.KindEnum).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(csharpVisibility(mods)).
		ParentID(parentID).
		Metadata(model.CSharpMetadata{Modifiers: mods, Access: accessFromModifiers(mods)}).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, member := range parsetree.NamedChildren(body) {
		if member.Type() != "enum_member_declaration" {
			continue
		}
		vname := fieldText(member, "name", w.content)
		w.add(w.builder().
			Kind(model.KindEnumVariant).
			Name(vname).
			QualifiedName(qualify(qualified, vname)).
			Range(parsetree.NodeRange(member)).
			Visibility(model.Public).
			ParentID(item.ID).
			Build())
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

	var explicitTarget string
	if ei := node.ChildByFieldName("interface"); ei != nil {
		explicitTarget = parsetree.Text(ei, w.content)
	}

	return w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature(returnSuffix(returnStr) + name + formatParams(params, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(csharpVisibility(mods)).
		ParentID(parentID).
		Metadata(model.CSharpMetadata{
			Access:                  accessFromModifiers(mods),
			Modifiers:               mods,
			GenericConstraints:      extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
			Attributes:              attributes(node, w.content),
			ExplicitInterfaceTarget: explicitTarget,
			Parameters:              extractParameters(params, w.content),
			ReturnType:              returnStr,
			IsExpressionBody:        node.ChildByFieldName("body") == nil && hasChildOfType(node, "arrow_expression_clause"),
		}).
		Build()
}

func (w *walker) extractProperty(node *sitter.Node, parentID, prefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	typeNode := node.ChildByFieldName("type")
	doc := collectDoc(node, w.content)
	mods := modifiers(node, w.content)
	typeStr := ""
	if typeNode != nil {
		typeStr = parsetree.Text(typeNode, w.content)
	}

	return w.builder().
		Kind(model.KindProperty).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature(typeStr).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(csharpVisibility(mods)).
		ParentID(parentID).
		Metadata(model.CSharpMetadata{
			Access:           accessFromModifiers(mods),
			Modifiers:        mods,
			Attributes:       attributes(node, w.content),
			IsExpressionBody: hasChildOfType(node, "arrow_expression_clause"),
			ReturnType:       typeStr,
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

	for _, decl := range parsetree.NamedChildren(node) {
		if decl.Type() != "variable_declaration" {
			continue
		}
		for _, declarator := range parsetree.NamedChildren(decl) {
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
				Visibility(csharpVisibility(mods)).
				ParentID(parentID).
				Metadata(model.CSharpMetadata{Access: accessFromModifiers(mods), Modifiers: mods, Attributes: attributes(node, w.content)}).
				Build())
		}
	}
}

func (w *walker) extractDelegate(node *sitter.Node, parentID, prefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	mods := modifiers(node, w.content)
	text := parsetree.Text(node, w.content)

	return w.builder().
		Kind(model.KindTypeAlias).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature(text).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(csharpVisibility(mods)).
		ParentID(parentID).
		Metadata(model.CSharpMetadata{Modifiers: mods, DelegateSignature: text}).
		Build()
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
	for _, child := range parsetree.Children(node) {
		switch child.Type() {
		case "modifier":
			mods = append(mods, parsetree.Text(child, content))
		}
	}
	return mods
}

func attributes(node *sitter.Node, content []byte) []string {
	var attrs []string
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() != "attribute_list" {
			continue
		}
		for _, a := range parsetree.NamedChildren(child) {
			if a.Type() == "attribute" {
				attrs = append(attrs, parsetree.Text(a, content))
			}
		}
	}
	return attrs
}

func hasModifier(mods []string, name string) bool {
	for _, m := range mods {
		if m == name {
			return true
		}
	}
	return false
}

func accessFromModifiers(mods []string) string {
	switch {
	case hasModifier(mods, "public"):
		return "public"
	case hasModifier(mods, "private"):
		return "private"
	case hasModifier(mods, "protected") && hasModifier(mods, "internal"):
		return "protected internal"
	case hasModifier(mods, "protected"):
		return "protected"
	case hasModifier(mods, "internal"):
		return "internal"
	default:
		return ""
	}
}

// csharpVisibility maps C#'s access modifier combinations onto the shared
// lattice; the unmarked default is `internal` for top-level types and
// `private` for members, but this extractor treats unmarked members as
// internal to keep the mapping simple and stable.
func csharpVisibility(mods []string) model.Visibility {
	switch {
	case hasModifier(mods, "public"):
		return model.Public
	case hasModifier(mods, "private"):
		return model.Private
	case hasModifier(mods, "protected"):
		return model.Protected
	case hasModifier(mods, "internal"):
		return model.Internal
	default:
		return model.Internal
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
		out = append(out, model.GenericParameter{Name: name})
	}
	return out
}

func extractParameters(params *sitter.Node, content []byte) []model.Parameter {
	if params == nil {
		return nil
	}
	var out []model.Parameter
	for _, child := range parsetree.NamedChildren(params) {
		if child.Type() != "parameter" {
			continue
		}
		p := model.Parameter{}
		if n := child.ChildByFieldName("name"); n != nil {
			p.Name = parsetree.Text(n, content)
		}
		if t := child.ChildByFieldName("type"); t != nil {
			p.Type = parsetree.Text(t, content)
		}
		if v := child.ChildByFieldName("default_value"); v != nil {
			p.Default = parsetree.Text(v, content)
			p.IsOptional = true
		}
		if hasWord(parsetree.Text(child, content), "params") {
			p.IsVariadic = true
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
	return returnType + " "
}

func hasChildOfType(node *sitter.Node, typ string) bool {
	for _, c := range parsetree.NamedChildren(node) {
		if c.Type() == typ {
			return true
		}
	}
	return false
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

// collectDoc recognizes XML doc comments (`///`) immediately preceding
// node.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return docparse.Block{}
	}
	text := parsetree.Text(prev, content)
	if !strings.HasPrefix(text, "///") {
		return docparse.Block{}
	}
	if !docparse.Attaches(int(prev.EndPoint().Row), int(node.StartPoint().Row), 0) {
		return docparse.Block{}
	}

	var raw []*sitter.Node
	cur := prev
	for cur != nil && cur.Type() == "comment" && strings.HasPrefix(parsetree.Text(cur, content), "///") {
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
	return docparse.CollectLine(lines, "///")
}
