// Package c extracts ParsedItems from C source, grounded on the
// tree-sitter C grammar's declaration productions.
package c

import (
	"context"
	"strconv"
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

// Extractor implements extract.Extractor for C.
type Extractor struct{}

func (Extractor) Language() string     { return "c" }
func (Extractor) Extensions() []string { return []string{".c", ".h"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "c", content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{path: path, content: content}
	w.walk(tree.RootNode(), "")
	return w.items, nil
}

type walker struct {
	path    string
	content []byte
	items   []model.ParsedItem
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, "c")
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

func (w *walker) walk(node *sitter.Node, parentID string) {
	for _, child := range parsetree.NamedChildren(node) {
		w.dispatch(child, parentID)
	}
}

func (w *walker) dispatch(node *sitter.Node, parentID string) {
	switch node.Type() {
	case "function_definition":
		w.add(w.extractFunctionDef(node, parentID))
	case "declaration":
		w.extractDeclaration(node, parentID)
	case "struct_specifier":
		w.extractAggregate(node, model.KindStruct, parentID)
	case "union_specifier":
		w.extractAggregate(node, model.KindUnion, parentID)
	case "enum_specifier":
		w.extractEnum(node, parentID)
	case "type_definition":
		w.extractTypedef(node, parentID)
	case "preproc_def":
		w.extractPreprocDef(node, parentID, false)
	case "preproc_function_def":
		w.extractPreprocDef(node, parentID, true)
	case "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif":
		// recurse into conditional-compilation blocks to still surface
		// the declarations they guard.
		w.walk(node, parentID)
	case "linkage_specification":
		if body := node.ChildByFieldName("body"); body != nil {
			w.walk(body, parentID)
		} else {
			w.walk(node, parentID)
		}
	}
}

func (w *walker) extractFunctionDef(node *sitter.Node, parentID string) model.ParsedItem {
	declarator := node.ChildByFieldName("declarator")
	_, name, params := unwrapFunctionDeclarator(declarator, w.content)
	doc := collectDoc(node, w.content)
	text := parsetree.Text(node, w.content)

	returnType := ""
	if t := node.ChildByFieldName("type"); t != nil {
		returnType = parsetree.Text(t, w.content)
	}

	return w.builder().
		Kind(model.KindFunction).
		Name(name).
		QualifiedName(qualify("", name)).
		Signature(signature(returnType, name, params, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(cVisibility(text)).
		ParentID(parentID).
		Metadata(model.CMetadata{
			IsExtern:   hasWord(text, "extern"),
			IsStatic:   hasWord(text, "static"),
			ReturnType: returnType,
			Parameters: extractParameters(params, w.content),
		}).
		Build()
}

// extractDeclaration handles forward-declared function prototypes, plain
// variable declarations, and a struct/union/enum specifier that appears
// only as part of a declaration's type (e.g. `struct Foo { ... } g;`).
func (w *walker) extractDeclaration(node *sitter.Node, parentID string) {
	typeNode := node.ChildByFieldName("type")
	if typeNode != nil {
		switch typeNode.Type() {
		case "struct_specifier":
			w.extractAggregate(typeNode, model.KindStruct, parentID)
		case "union_specifier":
			w.extractAggregate(typeNode, model.KindUnion, parentID)
		case "enum_specifier":
			w.extractEnum(typeNode, parentID)
		}
	}

	for _, declNode := range parsetree.NamedChildren(node) {
		switch declNode.Type() {
		case "function_declarator":
			w.extractPrototype(node, declNode, typeNode, parentID)
		case "pointer_declarator", "array_declarator", "identifier", "init_declarator":
			if inner, name, params := unwrapFunctionDeclarator(declNode, w.content); inner != nil && inner.Type() == "function_declarator" {
				w.extractPrototype(node, inner, typeNode, parentID)
				_ = name
				_ = params
				continue
			}
			w.extractVariable(node, declNode, typeNode, parentID)
		}
	}
}

func (w *walker) extractPrototype(declNode, fnDeclarator, typeNode *sitter.Node, parentID string) {
	name := declaratorName(fnDeclarator, w.content)
	params := fnDeclarator.ChildByFieldName("parameters")
	returnType := ""
	if typeNode != nil {
		returnType = parsetree.Text(typeNode, w.content)
	}
	doc := collectDoc(declNode, w.content)
	text := parsetree.Text(declNode, w.content)

	w.add(w.builder().
		Kind(model.KindFunction).
		Name(name).
		QualifiedName(qualify("", name)).
		Signature(signature(returnType, name, params, w.content)).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(declNode)).
		Visibility(cVisibility(text)).
		ParentID(parentID).
		Metadata(model.CMetadata{
			IsExtern:          hasWord(text, "extern"),
			IsStatic:          hasWord(text, "static"),
			ReturnType:        returnType,
			Parameters:        extractParameters(params, w.content),
			IsDeclarationOnly: true,
		}).
		Build())
}

func (w *walker) extractVariable(declNode, varDeclarator, typeNode *sitter.Node, parentID string) {
	name := identifierName(varDeclarator, w.content)
	if name == "" {
		return
	}
	typeStr := ""
	if typeNode != nil {
		typeStr = parsetree.Text(typeNode, w.content)
	}
	text := parsetree.Text(declNode, w.content)
	doc := collectDoc(declNode, w.content)

	w.add(w.builder().
		Kind(model.KindGlobalVariable).
		Name(name).
		QualifiedName(qualify("", name)).
		Signature(typeStr).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(declNode)).
		Visibility(cVisibility(text)).
		ParentID(parentID).
		Metadata(model.CMetadata{
			IsExtern:   hasWord(text, "extern"),
			IsStatic:   hasWord(text, "static"),
			IsVolatile: hasWord(text, "volatile"),
			IsConst:    hasWord(text, "const"),
			IsRegister: hasWord(text, "register"),
		}).
		Build())
}

func (w *walker) extractAggregate(node *sitter.Node, kind model.SymbolKind, parentID string) {
	name := fieldText(node, "name", w.content)
	if name == "" {
		return
	}
	doc := collectDoc(node, w.content)
	item := w.add(w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualify("", name)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.CMetadata{Fields: structFields(node, w.content)}).
		Build())
	_ = item
}

func (w *walker) extractEnum(node *sitter.Node, parentID string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	item := w.add(w.builder().
		Kind(model.KindEnum).
		Name(name).
		QualifiedName(qualify("", name)).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, enumerator := range parsetree.NamedChildren(body) {
		if enumerator.Type() != "enumerator" {
			continue
		}
		vname := fieldText(enumerator, "name", w.content)
		w.add(w.builder().
			Kind(model.KindEnumVariant).
			Name(vname).
			QualifiedName(qualify(name, vname)).
			Range(parsetree.NodeRange(enumerator)).
			Visibility(model.Public).
			ParentID(item.ID).
			Build())
	}
}

func (w *walker) extractTypedef(node *sitter.Node, parentID string) {
	typeNode := node.ChildByFieldName("type")
	declarator := node.ChildByFieldName("declarator")
	name := identifierName(declarator, w.content)
	if name == "" {
		return
	}
	doc := collectDoc(node, w.content)

	switch {
	case typeNode != nil && typeNode.Type() == "struct_specifier":
		w.extractAggregate(typeNode, model.KindStruct, parentID)
	case typeNode != nil && typeNode.Type() == "union_specifier":
		w.extractAggregate(typeNode, model.KindUnion, parentID)
	case typeNode != nil && typeNode.Type() == "enum_specifier":
		w.extractEnum(typeNode, parentID)
	}

	typeStr := ""
	if typeNode != nil {
		typeStr = parsetree.Text(typeNode, w.content)
	}
	w.add(w.builder().
		Kind(model.KindTypeAlias).
		Name(name).
		QualifiedName(qualify("", name)).
		Signature(typeStr).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Build())
}

func (w *walker) extractPreprocDef(node *sitter.Node, parentID string, functionLike bool) {
	name := fieldText(node, "name", w.content)
	value := ""
	if v := node.ChildByFieldName("value"); v != nil {
		value = parsetree.Text(v, w.content)
	}
	doc := collectDoc(node, w.content)

	var macroParams []string
	if functionLike {
		if params := node.ChildByFieldName("parameters"); params != nil {
			for _, p := range parsetree.NamedChildren(params) {
				macroParams = append(macroParams, parsetree.Text(p, w.content))
			}
		}
	}

	w.add(w.builder().
		Kind(model.KindMacro).
		Name(name).
		QualifiedName(qualify("", name)).
		Signature(value).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.CMetadata{
			IsFunctionLikeMacro: functionLike,
			MacroParameters:     macroParams,
		}).
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

// unwrapFunctionDeclarator strips pointer_declarator/parenthesized wrappers
// to find the underlying function_declarator, returning its name and
// parameter list (mirrors the C++ extractor's declarator-unwrap rule).
func unwrapFunctionDeclarator(node *sitter.Node, content []byte) (fnDecl *sitter.Node, name string, params *sitter.Node) {
	cur := node
	for cur != nil {
		switch cur.Type() {
		case "function_declarator":
			return cur, declaratorName(cur, content), cur.ChildByFieldName("parameters")
		case "pointer_declarator", "parenthesized_declarator", "array_declarator":
			if d := cur.ChildByFieldName("declarator"); d != nil {
				cur = d
				continue
			}
			return nil, "", nil
		case "init_declarator":
			if d := cur.ChildByFieldName("declarator"); d != nil {
				cur = d
				continue
			}
			return nil, "", nil
		default:
			return nil, "", nil
		}
	}
	return nil, "", nil
}

func declaratorName(node *sitter.Node, content []byte) string {
	d := node.ChildByFieldName("declarator")
	if d == nil {
		return ""
	}
	return identifierName(d, content)
}

func identifierName(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier", "field_identifier", "type_identifier":
		return parsetree.Text(node, content)
	case "pointer_declarator", "array_declarator", "parenthesized_declarator":
		return identifierName(node.ChildByFieldName("declarator"), content)
	case "init_declarator":
		return identifierName(node.ChildByFieldName("declarator"), content)
	}
	for _, child := range parsetree.NamedChildren(node) {
		if n := identifierName(child, content); n != "" {
			return n
		}
	}
	return ""
}

func structFields(node *sitter.Node, content []byte) []model.Field {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var fields []model.Field
	for _, decl := range parsetree.NamedChildren(body) {
		if decl.Type() != "field_declaration" {
			continue
		}
		typeNode := decl.ChildByFieldName("type")
		typeStr := ""
		if typeNode != nil {
			typeStr = parsetree.Text(typeNode, content)
		}
		start := len(fields)
		for _, d := range parsetree.NamedChildren(decl) {
			switch d.Type() {
			case "field_identifier":
				fields = append(fields, model.Field{Name: parsetree.Text(d, content), Type: typeStr})
			case "bitfield_clause":
				// The clause is ": <width>" and follows the field_identifier
				// it sizes within the same field_declaration.
				width := parseInt(strings.TrimPrefix(strings.TrimSpace(parsetree.Text(d, content)), ":"))
				if len(fields) > start {
					fields[len(fields)-1].BitWidth = width
				}
			case "pointer_declarator", "array_declarator":
				if n := identifierName(d, content); n != "" {
					fields = append(fields, model.Field{Name: n, Type: typeStr})
				}
			}
		}
	}
	return fields
}

func extractParameters(params *sitter.Node, content []byte) []model.Parameter {
	if params == nil {
		return nil
	}
	var out []model.Parameter
	for _, child := range parsetree.NamedChildren(params) {
		switch child.Type() {
		case "parameter_declaration":
			p := model.Parameter{}
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = parsetree.Text(t, content)
			}
			if d := child.ChildByFieldName("declarator"); d != nil {
				p.Name = identifierName(d, content)
			}
			out = append(out, p)
		case "variadic_parameter":
			out = append(out, model.Parameter{Name: "...", IsVariadic: true})
		}
	}
	return out
}

func signature(returnType, name string, params *sitter.Node, content []byte) string {
	var sb strings.Builder
	if returnType != "" {
		sb.WriteString(returnType)
		sb.WriteString(" ")
	}
	sb.WriteString(name)
	if params != nil {
		sb.WriteString(parsetree.Text(params, content))
	} else {
		sb.WriteString("()")
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

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// cVisibility applies the spec's convention for C: `static` at file scope
// means internal linkage (private), everything else is part of the
// translation unit's external (public) surface.
func cVisibility(declText string) model.Visibility {
	if hasWord(declText, "static") {
		return model.Private
	}
	return model.Public
}

// collectDoc walks backward over contiguous `comment` siblings immediately
// preceding node, recognizing both line-comment runs and block comments.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return docparse.Block{}
	}
	text := parsetree.Text(prev, content)
	if !docparse.Attaches(int(prev.EndPoint().Row), int(node.StartPoint().Row), 0) {
		return docparse.Block{}
	}
	if strings.HasPrefix(text, "/*") {
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
