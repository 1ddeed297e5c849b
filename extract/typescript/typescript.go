// Package typescript extracts ParsedItems from TypeScript, TSX, and
// JavaScript source, grounded on the tree-sitter TypeScript/JavaScript
// grammars (which share most node kinds; TSX differs only in JSX and type
// syntax already covered by the TypeScript grammar).
package typescript

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
	extract.Register(&Extractor{dialect: "typescript", grammar: "typescript", exts: []string{".ts"}})
	extract.Register(&Extractor{dialect: "tsx", grammar: "tsx", exts: []string{".tsx"}})
	extract.Register(&Extractor{dialect: "javascript", grammar: "javascript", exts: []string{".js", ".mjs", ".cjs"}})
	extract.Register(&Extractor{dialect: "jsx", grammar: "javascript", exts: []string{".jsx"}})
}

// Extractor implements extract.Extractor for one of the four JS-family
// dialects; dialect is the discriminator stamped on every item's metadata,
// grammar is the tree-sitter grammar actually used to parse it.
type Extractor struct {
	dialect string
	grammar string
	exts    []string
}

func (e *Extractor) Language() string     { return e.dialect }
func (e *Extractor) Extensions() []string { return e.exts }

func (e *Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, e.grammar, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{path: path, content: content, dialect: e.dialect}
	w.walkBody(tree.RootNode(), "", "")
	return w.items, nil
}

type walker struct {
	path             string
	content          []byte
	dialect          string
	items            []model.ParsedItem
	pendingOverloads []model.TSOverload
}

// extractOverload captures an ambient `function_signature` declaration
// (a body-less overload head) for merging onto the next matching
// implementation.
func (w *walker) extractOverload(node *sitter.Node) model.TSOverload {
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")
	name := fieldText(node, "name", w.content)
	return model.TSOverload{
		Signature:  name + formatParams(params, w.content) + formatReturn(returnType, w.content),
		Parameters: extractParameters(params, w.content),
		ReturnType: textOrEmpty(returnType, w.content),
	}
}

func (w *walker) attachPendingOverloads(fn *model.ParsedItem) {
	if len(w.pendingOverloads) == 0 {
		return
	}
	if m, ok := fn.Metadata.(model.TSMetadata); ok {
		m.Overloads = w.pendingOverloads
		fn.Metadata = m
	}
	w.pendingOverloads = nil
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, w.dialect)
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
		w.dispatch(child, parentID, prefix, false, false)
	}
}

func (w *walker) dispatch(node *sitter.Node, parentID, prefix string, exported, isDefault bool) {
	switch node.Type() {
	case "export_statement":
		w.extractExport(node, parentID, prefix)
	case "function_signature":
		w.pendingOverloads = append(w.pendingOverloads, w.extractOverload(node))
	case "function_declaration", "generator_function_declaration":
		fn := w.extractFunction(node, parentID, prefix, exported, isDefault)
		w.attachPendingOverloads(&fn)
		w.add(fn)
	case "class_declaration":
		w.extractClass(node, parentID, prefix, exported, isDefault)
	case "interface_declaration":
		w.extractInterface(node, parentID, prefix, exported)
	case "type_alias_declaration":
		w.add(w.extractTypeAlias(node, parentID, prefix, exported))
	case "enum_declaration":
		w.extractEnum(node, parentID, prefix, exported)
	case "module", "internal_module":
		w.extractNamespace(node, parentID, prefix, exported)
	case "lexical_declaration", "variable_declaration":
		w.extractVariableStatement(node, parentID, prefix, exported, isDefault)
	case "ambient_declaration":
		w.dispatchAmbient(node, parentID, prefix, exported)
	default:
		// leave unrecognized top-level statements alone
	}
}

func (w *walker) dispatchAmbient(node *sitter.Node, parentID, prefix string, exported bool) {
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "function_declaration", "generator_function_declaration", "function_signature":
			fn := w.extractFunction(child, parentID, prefix, exported, false)
			if m, ok := fn.Metadata.(model.TSMetadata); ok {
				m.IsDeclaration = true
				fn.Metadata = m
			}
			w.add(fn)
		case "class_declaration":
			w.extractClass(child, parentID, prefix, exported, false)
		case "interface_declaration":
			w.extractInterface(child, parentID, prefix, exported)
		case "module", "internal_module":
			w.extractNamespace(child, parentID, prefix, exported)
		}
	}
}

func (w *walker) extractExport(node *sitter.Node, parentID, prefix string) {
	isDefault := false
	for _, c := range parsetree.Children(node) {
		if c.Type() == "default" {
			isDefault = true
		}
	}
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "function_declaration", "generator_function_declaration", "class_declaration",
			"interface_declaration", "type_alias_declaration", "enum_declaration",
			"module", "internal_module", "lexical_declaration", "variable_declaration":
			w.dispatch(child, parentID, prefix, true, isDefault)
		default:
			if isDefault {
				// `export default <expression>;` — an arrow function or
				// other anonymous expression exported directly.
				w.extractDefaultExpression(child, parentID, prefix)
			}
		}
	}
}

func (w *walker) extractDefaultExpression(node *sitter.Node, parentID, prefix string) {
	switch node.Type() {
	case "arrow_function":
		w.add(w.extractArrow(node, "default", parentID, prefix, true, true))
	case "function", "generator_function":
		name := "default"
		if n := node.ChildByFieldName("name"); n != nil {
			name = parsetree.Text(n, w.content)
		}
		fn := w.extractFunction(node, parentID, prefix, true, true)
		fn.Name = name
		w.add(fn)
	case "class":
		w.extractClass(node, parentID, prefix, true, true)
	}
}

func (w *walker) extractFunction(node *sitter.Node, parentID, prefix string, exported, isDefault bool) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	if name == "" && isDefault {
		name = "default"
	}
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")
	doc := collectDoc(node, w.content)

	return w.builder().
		Kind(model.KindFunction).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature(name + formatParams(params, w.content) + formatReturn(returnType, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(exportVisibility(exported)).
		ParentID(parentID).
		Metadata(model.TSMetadata{
			Dialect:         w.dialect,
			IsExported:      exported,
			IsDefaultExport: isDefault,
			IsAsync:         hasChildToken(node, "async"),
			IsGenerator:     node.Type() == "generator_function_declaration" || node.Type() == "generator_function",
			TypeParameters:  extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
			Parameters:      extractParameters(params, w.content),
			ReturnType:      textOrEmpty(returnType, w.content),
		}).
		Build()
}

func (w *walker) extractArrow(node *sitter.Node, name, parentID, prefix string, exported, isDefault bool) model.ParsedItem {
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")
	return w.builder().
		Kind(model.KindFunction).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature(name + formatParams(params, w.content) + formatReturn(returnType, w.content)).
		Range(parsetree.NodeRange(node)).
		Visibility(exportVisibility(exported)).
		ParentID(parentID).
		Metadata(model.TSMetadata{
			Dialect:         w.dialect,
			IsExported:      exported,
			IsDefaultExport: isDefault,
			IsAsync:         hasChildToken(node, "async"),
			IsArrow:         true,
			Parameters:      extractParameters(params, w.content),
			ReturnType:      textOrEmpty(returnType, w.content),
		}).
		Build()
}

func (w *walker) extractClass(node *sitter.Node, parentID, prefix string, exported, isDefault bool) {
	name := fieldText(node, "name", w.content)
	if name == "" && isDefault {
		name = "default"
	}
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)

	heritage := node.ChildByFieldName("heritage") // class_heritage clause in some grammar versions
	extends, implements := extractHeritage(heritage, node, w.content)

	item := w.add(w.builder().
		Kind(model.KindClass).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(exportVisibility(exported)).
		ParentID(parentID).
		Metadata(model.TSMetadata{
			Dialect:         w.dialect,
			IsExported:      exported,
			IsDefaultExport: isDefault,
			IsAbstract:      hasChildToken(node, "abstract"),
			TypeParameters:  extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
			Extends:         extends,
			Implements:      implements,
		}).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, member := range parsetree.NamedChildren(body) {
		w.extractClassMember(member, item.ID, qualified)
	}
}

func (w *walker) extractClassMember(node *sitter.Node, parentID, qualifiedPrefix string) {
	switch node.Type() {
	case "method_definition":
		w.add(w.extractMethod(node, parentID, qualifiedPrefix))
	case "public_field_definition", "field_definition":
		w.add(w.extractFieldDefinition(node, parentID, qualifiedPrefix))
	case "abstract_method_signature", "method_signature":
		w.add(w.extractMethodSignature(node, parentID, qualifiedPrefix))
	}
}

func (w *walker) extractMethod(node *sitter.Node, parentID, qualifiedPrefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")
	doc := collectDoc(node, w.content)

	kind := model.KindMethod
	switch name {
	case "constructor":
		kind = model.KindConstructor
	}
	access := accessModifier(node, w.content)

	return w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualify(qualifiedPrefix, name)).
		Signature(name + formatParams(params, w.content) + formatReturn(returnType, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(accessVisibility(access)).
		ParentID(parentID).
		Metadata(model.TSMetadata{
			Dialect:        w.dialect,
			IsAsync:        hasChildToken(node, "async"),
			IsGenerator:    hasChildOfType(node, "*"),
			IsStatic:       hasChildToken(node, "static"),
			IsAbstract:     hasChildToken(node, "abstract"),
			IsReadonly:     hasChildToken(node, "readonly"),
			IsOptional:     hasChildOfType(node, "?"),
			Access:         access,
			TypeParameters: extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
			Parameters:     extractParameters(params, w.content),
			ReturnType:     textOrEmpty(returnType, w.content),
		}).
		Build()
}

func (w *walker) extractMethodSignature(node *sitter.Node, parentID, qualifiedPrefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")
	access := accessModifier(node, w.content)

	return w.builder().
		Kind(model.KindMethod).
		Name(name).
		QualifiedName(qualify(qualifiedPrefix, name)).
		Signature(name + formatParams(params, w.content) + formatReturn(returnType, w.content)).
		Range(parsetree.NodeRange(node)).
		Visibility(accessVisibility(access)).
		ParentID(parentID).
		Metadata(model.TSMetadata{
			Dialect:        w.dialect,
			IsAbstract:     true,
			Access:         access,
			Parameters:     extractParameters(params, w.content),
			ReturnType:     textOrEmpty(returnType, w.content),
			IsOptional:     hasChildOfType(node, "?"),
		}).
		Build()
}

func (w *walker) extractFieldDefinition(node *sitter.Node, parentID, qualifiedPrefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	typeNode := node.ChildByFieldName("type")
	access := accessModifier(node, w.content)
	doc := collectDoc(node, w.content)

	return w.builder().
		Kind(model.KindField).
		Name(name).
		QualifiedName(qualify(qualifiedPrefix, name)).
		Signature(textOrEmpty(typeNode, w.content)).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(accessVisibility(access)).
		ParentID(parentID).
		Metadata(model.TSMetadata{
			Dialect:    w.dialect,
			Access:     access,
			IsStatic:   hasChildToken(node, "static"),
			IsReadonly: hasChildToken(node, "readonly"),
			IsOptional: hasChildOfType(node, "?"),
		}).
		Build()
}

func (w *walker) extractInterface(node *sitter.Node, parentID, prefix string, exported bool) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)

	extendsClause := node.ChildByFieldName("extends")
	var extends []string
	if extendsClause != nil {
		for _, t := range parsetree.NamedChildren(extendsClause) {
			extends = append(extends, parsetree.Text(t, w.content))
		}
	}

	item := w.add(w.builder().
		Kind(model.KindInterface).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(exportVisibility(exported)).
		ParentID(parentID).
		Metadata(model.TSMetadata{
			Dialect:        w.dialect,
			IsExported:     exported,
			TypeParameters: extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
			Implements:     extends,
		}).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, member := range parsetree.NamedChildren(body) {
		switch member.Type() {
		case "method_signature":
			w.add(w.extractMethodSignature(member, item.ID, qualified))
		case "property_signature":
			w.add(w.extractFieldDefinition(member, item.ID, qualified))
		}
	}
}

func (w *walker) extractTypeAlias(node *sitter.Node, parentID, prefix string, exported bool) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	value := node.ChildByFieldName("value")
	doc := collectDoc(node, w.content)

	return w.builder().
		Kind(model.KindTypeAlias).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature(textOrEmpty(value, w.content)).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(exportVisibility(exported)).
		ParentID(parentID).
		Metadata(model.TSMetadata{
			Dialect:        w.dialect,
			IsExported:     exported,
			TypeParameters: extractTypeParams(node.ChildByFieldName("type_parameters"), w.content),
		}).
		Build()
}

func (w *walker) extractEnum(node *sitter.Node, parentID, prefix string, exported bool) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(prefix, name)

	item := w.add(w.builder().
		Kind(model.KindEnum).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(exportVisibility(exported)).
		ParentID(parentID).
		Metadata(model.TSMetadata{Dialect: w.dialect, IsExported: exported}).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, member := range parsetree.NamedChildren(body) {
		if member.Type() != "enum_assignment" && member.Type() != "property_identifier" {
			continue
		}
		vname := parsetree.Text(member, w.content)
		if member.Type() == "enum_assignment" {
			if n := member.ChildByFieldName("name"); n != nil {
				vname = parsetree.Text(n, w.content)
			}
		}
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

func (w *walker) extractNamespace(node *sitter.Node, parentID, prefix string, exported bool) {
	name := fieldText(node, "name", w.content)
	if name == "" {
		if n := node.NamedChild(0); n != nil {
			name = parsetree.Text(n, w.content)
		}
	}
	qualified := qualify(prefix, name)
	item := w.add(w.builder().
		Kind(model.KindNamespace).
		Name(name).
		QualifiedName(qualified).
		Range(parsetree.NodeRange(node)).
		Visibility(exportVisibility(exported)).
		ParentID(parentID).
		Metadata(model.TSMetadata{Dialect: w.dialect, IsExported: exported}).
		Build())

	body := node.ChildByFieldName("body")
	if body != nil {
		w.walkBody(body, item.ID, qualified)
	}
}

// extractVariableStatement handles `const f = (...) => ...` and plain
// `export const x = 1` declarations.
func (w *walker) extractVariableStatement(node *sitter.Node, parentID, prefix string, exported, isDefault bool) {
	for _, decl := range parsetree.NamedChildren(node) {
		if decl.Type() != "variable_declarator" {
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := parsetree.Text(nameNode, w.content)
		value := decl.ChildByFieldName("value")
		if value != nil && (value.Type() == "arrow_function" || value.Type() == "function" || value.Type() == "generator_function") {
			if value.Type() == "arrow_function" {
				w.add(w.extractArrow(value, name, parentID, prefix, exported, isDefault))
			} else {
				fn := w.extractFunction(value, parentID, prefix, exported, isDefault)
				fn.Name = name
				fn.QualifiedName = qualify(prefix, name)
				w.add(fn)
			}
			continue
		}
		if !exported {
			continue
		}
		typeNode := decl.ChildByFieldName("type")
		doc := collectDoc(node, w.content)
		w.add(w.builder().
			Kind(model.KindGlobalVariable).
			Name(name).
			QualifiedName(qualify(prefix, name)).
			Signature(textOrEmpty(typeNode, w.content)).
			DocComment(doc.Text).
			Range(parsetree.NodeRange(decl)).
			Visibility(exportVisibility(exported)).
			ParentID(parentID).
			Metadata(model.TSMetadata{Dialect: w.dialect, IsExported: exported}).
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

// textOrEmpty returns node's source text; for a type_annotation the
// leading ':' is dropped so only the type itself remains.
func textOrEmpty(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	text := parsetree.Text(node, content)
	if node.Type() == "type_annotation" {
		text = strings.TrimSpace(strings.TrimPrefix(text, ":"))
	}
	return text
}

func hasChildToken(node *sitter.Node, tok string) bool {
	for _, c := range parsetree.Children(node) {
		if c.Type() == tok {
			return true
		}
	}
	return false
}

func hasChildOfType(node *sitter.Node, tok string) bool {
	return hasChildToken(node, tok)
}

func accessModifier(node *sitter.Node, content []byte) string {
	for _, c := range parsetree.Children(node) {
		switch c.Type() {
		case "accessibility_modifier":
			return parsetree.Text(c, content)
		}
	}
	return ""
}

func accessVisibility(access string) model.Visibility {
	switch access {
	case "public", "":
		return model.Public
	case "protected":
		return model.Protected
	case "private":
		return model.Private
	default:
		return model.Public
	}
}

func exportVisibility(exported bool) model.Visibility {
	if exported {
		return model.Public
	}
	return model.ModuleVis
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
		if c := child.ChildByFieldName("constraint"); c != nil {
			bounds = append(bounds, parsetree.Text(c, content))
		}
		out = append(out, model.GenericParameter{Name: name, Bounds: bounds})
	}
	return out
}

func extractHeritage(heritage, classNode *sitter.Node, content []byte) (extends string, implements []string) {
	for _, clause := range parsetree.NamedChildren(classNode) {
		switch clause.Type() {
		case "class_heritage":
			for _, c := range parsetree.NamedChildren(clause) {
				switch c.Type() {
				case "extends_clause":
					if t := c.NamedChild(0); t != nil {
						extends = parsetree.Text(t, content)
					}
				case "implements_clause":
					for _, impl := range parsetree.NamedChildren(c) {
						implements = append(implements, parsetree.Text(impl, content))
					}
				}
			}
		}
	}
	return
}

func extractParameters(params *sitter.Node, content []byte) []model.Parameter {
	if params == nil {
		return nil
	}
	var out []model.Parameter
	for _, child := range parsetree.NamedChildren(params) {
		p := model.Parameter{}
		switch child.Type() {
		case "required_parameter", "optional_parameter":
			if pat := child.ChildByFieldName("pattern"); pat != nil {
				p.Name = parsetree.Text(pat, content)
			}
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = textOrEmpty(t, content)
			}
			if v := child.ChildByFieldName("value"); v != nil {
				p.Default = parsetree.Text(v, content)
			}
			p.IsOptional = child.Type() == "optional_parameter" || hasChildOfType(child, "?")
		case "identifier":
			p.Name = parsetree.Text(child, content)
		case "assignment_pattern":
			if l := child.ChildByFieldName("left"); l != nil {
				p.Name = parsetree.Text(l, content)
			}
			if r := child.ChildByFieldName("right"); r != nil {
				p.Default = parsetree.Text(r, content)
			}
			p.IsOptional = true
		case "rest_pattern":
			p.Name = parsetree.Text(child, content)
			p.IsVariadic = true
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

func formatReturn(returnType *sitter.Node, content []byte) string {
	if returnType == nil {
		return ""
	}
	return ": " + strings.TrimPrefix(parsetree.Text(returnType, content), ": ")
}

// collectDoc recognizes /** */ JSDoc blocks and contiguous /// or leading
// // runs immediately preceding a declaration.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	prev := node.PrevNamedSibling()
	if prev == nil || (prev.Type() != "comment") {
		return docparse.Block{}
	}
	text := parsetree.Text(prev, content)
	if !docparse.Attaches(int(prev.EndPoint().Row), int(node.StartPoint().Row), 0) {
		return docparse.Block{}
	}
	if strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "/*!") {
		return docparse.CollectBlock(text, "/*", "*/")
	}

	var raw []*sitter.Node
	cur := prev
	for cur != nil && cur.Type() == "comment" && strings.HasPrefix(parsetree.Text(cur, content), "//") {
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
	return docparse.CollectLine(lines, "//")
}
