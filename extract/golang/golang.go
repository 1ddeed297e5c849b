// Package golang extracts ParsedItems from Go source, grounded on the
// tree-sitter Go grammar's declaration productions.
package golang

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

// Extractor implements extract.Extractor for Go.
type Extractor struct{}

func (Extractor) Language() string     { return "go" }
func (Extractor) Extensions() []string { return []string{".go"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "go", content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{path: path, content: content}
	w.walkFile(tree.RootNode())
	return w.items, nil
}

type walker struct {
	path    string
	content []byte
	items   []model.ParsedItem
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, "go")
}

func (w *walker) walkFile(root *sitter.Node) {
	for _, child := range parsetree.NamedChildren(root) {
		switch child.Type() {
		case "function_declaration":
			w.items = append(w.items, w.extractFunction(child))
		case "method_declaration":
			w.items = append(w.items, w.extractMethod(child))
		case "type_declaration":
			w.extractTypes(child)
		case "const_declaration":
			w.extractConstsOrVars(child, "const_spec", model.KindConstant)
		case "var_declaration":
			w.extractConstsOrVars(child, "var_spec", model.KindGlobalVariable)
		}
	}
}

func (w *walker) extractFunction(node *sitter.Node) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	result := node.ChildByFieldName("result")

	doc := collectDoc(node, w.content)

	return w.builder().
		Kind(model.KindFunction).
		Name(name).
		Signature(name + formatSignature(params, result, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.IdentifierVisibility(name)).
		Metadata(model.GoMetadata{
			IsVariadic:  hasVariadic(params),
			ReturnTypes: resultTypes(result, w.content),
			Parameters:  extractParameters(params, w.content),
		}).
		Build()
}

func (w *walker) extractMethod(node *sitter.Node) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	receiverNode := node.ChildByFieldName("receiver")
	recvName, recvType, isPointer := parseReceiver(receiverNode, w.content)
	params := node.ChildByFieldName("parameters")
	result := node.ChildByFieldName("result")

	doc := collectDoc(node, w.content)
	qualified := name
	if recvType != "" {
		qualified = recvType + "." + name
	}

	return w.builder().
		Kind(model.KindMethod).
		Name(name).
		QualifiedName(qualified).
		Signature(name + formatSignature(params, result, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.IdentifierVisibility(name)).
		Metadata(model.GoMetadata{
			Receiver:    &model.GoReceiver{Name: recvName, Type: recvType, IsPointer: isPointer},
			ReturnTypes: resultTypes(result, w.content),
			Parameters:  extractParameters(params, w.content),
		}).
		Build()
}

func (w *walker) extractTypes(node *sitter.Node) {
	doc := collectDoc(node, w.content)

	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() != "type_spec" && child.Type() != "type_alias" {
			continue
		}
		name := fieldText(child, "name", w.content)
		typeNode := child.ChildByFieldName("type")

		parent := w.builder().
			Kind(typeKind(typeNode)).
			Name(name).
			DocComment(doc.Text).
			DocSections(docparse.ParseSections(doc.Text)).
			Range(parsetree.NodeRange(child)).
			Visibility(model.IdentifierVisibility(name)).
			Metadata(model.GoMetadata{}).
			Build()

		if typeNode != nil {
			switch typeNode.Type() {
			case "struct_type":
				w.extractStructFields(typeNode, name, parent.ID)
			case "interface_type":
				w.extractInterfaceMethods(typeNode, name, parent.ID)
			}
		}

		w.items = append(w.items, parent)
	}
}

func (w *walker) extractStructFields(structType *sitter.Node, ownerName, parentID string) {
	// struct_type wraps its field_declarations in a field_declaration_list.
	body := structType
	for _, c := range parsetree.NamedChildren(structType) {
		if c.Type() == "field_declaration_list" {
			body = c
		}
	}
	for _, decl := range parsetree.NamedChildren(body) {
		if decl.Type() != "field_declaration" {
			continue
		}
		typeNode := decl.ChildByFieldName("type")
		typeStr := ""
		if typeNode != nil {
			typeStr = parsetree.Text(typeNode, w.content)
		}
		tagNode := decl.ChildByFieldName("tag")
		tag := ""
		if tagNode != nil {
			tag = strings.Trim(parsetree.Text(tagNode, w.content), "`")
		}

		names := fieldIdentifierNames(decl, w.content)
		if len(names) == 0 && typeNode != nil {
			// Embedded field: the field has no explicit name, the type is the name.
			embedded := parsetree.Text(typeNode, w.content)
			w.items = append(w.items, w.builder().
				Kind(model.KindField).
				Name(embedded).
				QualifiedName(ownerName+"."+embedded).
				Signature(typeStr).
				Range(parsetree.NodeRange(decl)).
				Visibility(model.IdentifierVisibility(embedded)).
				ParentID(parentID).
				Metadata(model.GoMetadata{EmbeddedFields: []string{embedded}, StructTag: tag}).
				Build())
			continue
		}

		for _, name := range names {
			w.items = append(w.items, w.builder().
				Kind(model.KindField).
				Name(name).
				QualifiedName(ownerName+"."+name).
				Signature(typeStr).
				Range(parsetree.NodeRange(decl)).
				Visibility(model.IdentifierVisibility(name)).
				ParentID(parentID).
				Metadata(model.GoMetadata{StructTag: tag}).
				Build())
		}
	}
}

func (w *walker) extractInterfaceMethods(ifaceType *sitter.Node, ownerName, parentID string) {
	for _, member := range parsetree.NamedChildren(ifaceType) {
		switch member.Type() {
		case "method_elem":
			name := fieldText(member, "name", w.content)
			params := member.ChildByFieldName("parameters")
			result := member.ChildByFieldName("result")
			w.items = append(w.items, w.builder().
				Kind(model.KindMethod).
				Name(name).
				QualifiedName(ownerName+"."+name).
				Signature(name + formatSignature(params, result, w.content)).
				Range(parsetree.NodeRange(member)).
				Visibility(model.IdentifierVisibility(name)).
				ParentID(parentID).
				Metadata(model.GoMetadata{
					ReturnTypes: resultTypes(result, w.content),
					Parameters:  extractParameters(params, w.content),
				}).
				Build())
		case "type_elem", "type_identifier", "qualified_type":
			embedded := parsetree.Text(member, w.content)
			if embedded == "" {
				continue
			}
			w.items = append(w.items, w.builder().
				Kind(model.KindMethod).
				Name(embedded).
				QualifiedName(ownerName+"."+embedded).
				Range(parsetree.NodeRange(member)).
				Visibility(model.IdentifierVisibility(embedded)).
				ParentID(parentID).
				Metadata(model.GoMetadata{IsInterfaceEmbedding: true}).
				Build())
		}
	}
}

func (w *walker) extractConstsOrVars(node *sitter.Node, specType string, kind model.SymbolKind) {
	doc := collectDoc(node, w.content)

	for _, spec := range parsetree.NamedChildren(node) {
		if spec.Type() != specType {
			continue
		}
		for _, name := range fieldNames(spec, w.content) {
			w.items = append(w.items, w.builder().
				Kind(kind).
				Name(name).
				DocComment(doc.Text).
				DocSections(docparse.ParseSections(doc.Text)).
				Range(parsetree.NodeRange(spec)).
				Visibility(model.IdentifierVisibility(name)).
				Build())
		}
	}
}

// collectDoc walks backward through a contiguous run of "comment" siblings
// immediately preceding node (no blank line between runs, and the run
// itself ends with no blank line before node), returning their joined,
// prefix-stripped text.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	var raw []*sitter.Node
	cur := node.PrevNamedSibling()
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
	if len(raw) == 0 {
		return docparse.Block{}
	}

	last := raw[len(raw)-1]
	if !docparse.Attaches(int(last.EndPoint().Row), int(node.StartPoint().Row), 0) {
		return docparse.Block{}
	}

	first := raw[0].Content(content)
	if strings.HasPrefix(first, "/*") {
		return docparse.CollectBlock(raw[0].Content(content), "/*", "*/")
	}

	lines := make([]string, len(raw))
	for i, c := range raw {
		lines[i] = c.Content(content)
	}
	return docparse.CollectLine(lines, "//")
}

func fieldText(node *sitter.Node, field string, content []byte) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		return ""
	}
	return n.Content(content)
}

func fieldNames(node *sitter.Node, content []byte) []string {
	var names []string
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() == "identifier" {
			names = append(names, child.Content(content))
		}
	}
	return names
}

// fieldIdentifierNames collects struct-field names. Tree-sitter-go gives
// declared field names the distinct node type field_identifier, separate
// from the type_identifier/type node that follows them, so an embedded
// field (which has no name, only a type) yields no matches here.
func fieldIdentifierNames(node *sitter.Node, content []byte) []string {
	var names []string
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() == "field_identifier" {
			names = append(names, child.Content(content))
		}
	}
	return names
}

func parseReceiver(node *sitter.Node, content []byte) (name, typ string, isPointer bool) {
	if node == nil {
		return "", "", false
	}
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() != "parameter_declaration" {
			continue
		}
		if id := fieldText(child, "name", content); id != "" {
			name = id
		}
		typeNode := child.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		if typeNode.Type() == "pointer_type" {
			isPointer = true
			if inner := typeNode.NamedChild(0); inner != nil {
				typ = inner.Content(content)
			}
		} else {
			typ = typeNode.Content(content)
		}
	}
	return name, typ, isPointer
}

func hasVariadic(params *sitter.Node) bool {
	if params == nil {
		return false
	}
	for _, child := range parsetree.NamedChildren(params) {
		if child.Type() == "variadic_parameter_declaration" {
			return true
		}
	}
	return false
}

func extractParameters(params *sitter.Node, content []byte) []model.Parameter {
	if params == nil {
		return nil
	}
	var out []model.Parameter
	for _, child := range parsetree.NamedChildren(params) {
		variadic := child.Type() == "variadic_parameter_declaration"
		if child.Type() != "parameter_declaration" && !variadic {
			continue
		}
		typeNode := child.ChildByFieldName("type")
		typeStr := ""
		if typeNode != nil {
			typeStr = parsetree.Text(typeNode, content)
		}
		names := fieldNames(child, content)
		if len(names) == 0 {
			out = append(out, model.Parameter{Type: typeStr, IsVariadic: variadic})
			continue
		}
		for _, name := range names {
			out = append(out, model.Parameter{Name: name, Type: typeStr, IsVariadic: variadic})
		}
	}
	return out
}

// formatSignature renders "(paramTypes) result" in the style the original
// codemap tool used, so existing consumers of the human-readable signature
// field see a familiar shape.
func formatSignature(params, result *sitter.Node, content []byte) string {
	var sb strings.Builder
	sb.WriteString("(")

	if params != nil {
		var paramTypes []string
		for _, child := range parsetree.NamedChildren(params) {
			if child.Type() != "parameter_declaration" && child.Type() != "variadic_parameter_declaration" {
				continue
			}
			typeNode := child.ChildByFieldName("type")
			if typeNode == nil {
				continue
			}
			typeStr := typeNode.Content(content)
			if child.Type() == "variadic_parameter_declaration" {
				typeStr = "..." + typeStr
			}
			nameCount := len(fieldNames(child, content))
			if nameCount == 0 {
				nameCount = 1
			}
			for k := 0; k < nameCount; k++ {
				paramTypes = append(paramTypes, typeStr)
			}
		}
		sb.WriteString(strings.Join(paramTypes, ", "))
	}
	sb.WriteString(")")

	if resultStr := formatResult(result, content); resultStr != "" {
		sb.WriteString(" ")
		sb.WriteString(resultStr)
	}
	return sb.String()
}

func formatResult(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	if node.Type() != "parameter_list" {
		return node.Content(content)
	}

	var types []string
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() == "parameter_declaration" {
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				types = append(types, typeNode.Content(content))
			}
		}
	}
	if len(types) == 1 {
		return types[0]
	}
	return "(" + strings.Join(types, ", ") + ")"
}

func resultTypes(node *sitter.Node, content []byte) []string {
	if node == nil {
		return nil
	}
	if node.Type() != "parameter_list" {
		return []string{node.Content(content)}
	}
	var types []string
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() == "parameter_declaration" {
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				types = append(types, typeNode.Content(content))
			}
		}
	}
	return types
}

func typeKind(node *sitter.Node) model.SymbolKind {
	if node == nil {
		return model.KindTypeAlias
	}
	switch node.Type() {
	case "struct_type":
		return model.KindStruct
	case "interface_type":
		return model.KindInterface
	default:
		return model.KindTypeAlias
	}
}
