// Package rust extracts ParsedItems from Rust source, grounded on the
// tree-sitter Rust grammar's item productions.
package rust

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

// Extractor implements extract.Extractor for Rust.
type Extractor struct{}

func (Extractor) Language() string     { return "rust" }
func (Extractor) Extensions() []string { return []string{".rs"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "rust", content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{path: path, content: content, byID: map[string]int{}}
	w.walkItems(tree.RootNode(), "", "")
	w.enrichImplMethods()
	return w.items, nil
}

type walker struct {
	path    string
	content []byte
	items   []model.ParsedItem
	byID    map[string]int

	// pendingImpls records, per impl body, the trait target (if any) so
	// enrichment can default method visibility from a public trait export.
	pendingImpls []implContext
}

type implContext struct {
	traitTarget string
	selfType    string
	methodIDs   []string
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, "rust")
}

func (w *walker) add(it model.ParsedItem) model.ParsedItem {
	w.items = append(w.items, it)
	idx := len(w.items) - 1
	w.byID[it.ID] = idx
	return it
}

// walkItems handles the top level of a file and the body of a mod_item,
// recursing for nested modules.
func (w *walker) walkItems(node *sitter.Node, parentID, qualifiedPrefix string) {
	var pendingAttrs []string
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "attribute_item", "inner_attribute_item":
			pendingAttrs = append(pendingAttrs, parsetree.Text(child, w.content))
			continue
		case "function_item":
			w.add(w.extractFunction(child, pendingAttrs, parentID, qualifiedPrefix, model.KindFunction))
		case "struct_item":
			w.extractStruct(child, pendingAttrs, parentID, qualifiedPrefix)
		case "union_item":
			w.extractUnion(child, pendingAttrs, parentID, qualifiedPrefix)
		case "enum_item":
			w.extractEnum(child, pendingAttrs, parentID, qualifiedPrefix)
		case "trait_item":
			w.extractTrait(child, pendingAttrs, parentID, qualifiedPrefix)
		case "impl_item":
			w.extractImpl(child, qualifiedPrefix)
		case "mod_item":
			w.extractMod(child, pendingAttrs, parentID, qualifiedPrefix)
		case "type_item":
			w.add(w.extractTypeAlias(child, parentID, qualifiedPrefix))
		case "const_item":
			w.add(w.extractConstOrStatic(child, parentID, qualifiedPrefix, model.KindConstant))
		case "static_item":
			w.add(w.extractConstOrStatic(child, parentID, qualifiedPrefix, model.KindStaticVariable))
		case "use_declaration":
			w.add(w.extractUse(child, parentID))
		case "macro_definition":
			w.add(w.extractMacroRules(child, parentID))
		case "foreign_mod_item":
			w.extractForeignMod(child, parentID, qualifiedPrefix)
		case "macro_invocation":
			w.add(w.extractMacroInvocation(child, parentID))
		default:
			continue
		}
		pendingAttrs = nil
	}
}

func (w *walker) extractFunction(node *sitter.Node, attrs []string, parentID, qualifiedPrefix string, kind model.SymbolKind) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	params := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")
	whereClause := node.ChildByFieldName("where_clause")

	doc := collectDoc(node, w.content)
	qualified := qualify(qualifiedPrefix, name)

	isAsync, isUnsafe, isConst, isExtern, abi := functionModifiers(node, w.content)

	meta := model.RustMetadata{
		IsAsync:     isAsync,
		IsUnsafe:    isUnsafe,
		IsConst:     isConst,
		IsExtern:    isExtern,
		ABI:         abi,
		Generics:    extractGenerics(node.ChildByFieldName("type_parameters"), w.content),
		Lifetimes:   extractLifetimes(node.ChildByFieldName("type_parameters"), w.content),
		Attributes:  attrs,
		Parameters:  extractParameters(params, w.content),
		IsPyO3:      hasPyO3Attribute(attrs),
	}
	if whereClause != nil {
		meta.WhereClause = parsetree.Text(whereClause, w.content)
	}
	if returnType != nil {
		meta.ReturnType = parsetree.Text(returnType, w.content)
	}

	return w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualified).
		Signature(name + signatureTail(params, returnType, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(rustVisibility(node, w.content)).
		ParentID(parentID).
		Metadata(meta).
		Build()
}

func (w *walker) extractStruct(node *sitter.Node, attrs []string, parentID, qualifiedPrefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(qualifiedPrefix, name)

	body := node.ChildByFieldName("body")
	fields := structFields(body, w.content)

	item := w.add(w.builder().
		Kind(model.KindStruct).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(rustVisibility(node, w.content)).
		ParentID(parentID).
		Metadata(model.RustMetadata{
			Generics:   extractGenerics(node.ChildByFieldName("type_parameters"), w.content),
			Attributes: attrs,
			Fields:     fields,
			IsPyO3:     hasPyO3Attribute(attrs),
		}).
		Build())

	for _, f := range fields {
		w.add(w.builder().
			Kind(model.KindField).
			Name(f.Name).
			QualifiedName(qualify(qualified, f.Name)).
			Signature(f.Type).
			ParentID(item.ID).
			Visibility(model.Public).
			Build())
	}
}

func (w *walker) extractUnion(node *sitter.Node, attrs []string, parentID, qualifiedPrefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(qualifiedPrefix, name)
	body := node.ChildByFieldName("body")
	fields := structFields(body, w.content)

	w.add(w.builder().
		Kind(model.KindUnion).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(rustVisibility(node, w.content)).
		ParentID(parentID).
		Metadata(model.RustMetadata{Attributes: attrs, Fields: fields}).
		Build())
}

func (w *walker) extractEnum(node *sitter.Node, attrs []string, parentID, qualifiedPrefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(qualifiedPrefix, name)

	body := node.ChildByFieldName("body")
	var variants []model.RustVariant
	if body != nil {
		for _, v := range parsetree.NamedChildren(body) {
			if v.Type() != "enum_variant" {
				continue
			}
			vname := fieldText(v, "name", w.content)
			vbody := v.ChildByFieldName("body")
			variants = append(variants, model.RustVariant{Name: vname, Fields: structFields(vbody, w.content)})
		}
	}

	item := w.add(w.builder().
		Kind(model.KindEnum).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(rustVisibility(node, w.content)).
		ParentID(parentID).
		Metadata(model.RustMetadata{
			Generics:   extractGenerics(node.ChildByFieldName("type_parameters"), w.content),
			Attributes: attrs,
			Variants:   variants,
		}).
		Build())

	if body != nil {
		for _, v := range parsetree.NamedChildren(body) {
			if v.Type() != "enum_variant" {
				continue
			}
			vname := fieldText(v, "name", w.content)
			w.add(w.builder().
				Kind(model.KindEnumVariant).
				Name(vname).
				QualifiedName(qualify(qualified, vname)).
				Range(parsetree.NodeRange(v)).
				Visibility(model.Public).
				ParentID(item.ID).
				Build())
		}
	}
}

func (w *walker) extractTrait(node *sitter.Node, attrs []string, parentID, qualifiedPrefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(qualifiedPrefix, name)
	vis := rustVisibility(node, w.content)

	item := w.add(w.builder().
		Kind(model.KindTrait).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(vis).
		ParentID(parentID).
		Metadata(model.RustMetadata{
			Generics:   extractGenerics(node.ChildByFieldName("type_parameters"), w.content),
			Attributes: attrs,
		}).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, member := range parsetree.NamedChildren(body) {
		switch member.Type() {
		case "function_item", "function_signature_item":
			fn := w.extractFunction(member, nil, item.ID, qualified, model.KindMethod)
			// Trait methods default to the trait's own visibility when the
			// trait itself is exported.
			if vis == model.Public {
				fn.Visibility = model.Public
			}
			w.add(fn)
		case "associated_type":
			atName := fieldText(member, "name", w.content)
			w.add(w.builder().
				Kind(model.KindAssociatedType).
				Name(atName).
				QualifiedName(qualify(qualified, atName)).
				Range(parsetree.NodeRange(member)).
				Visibility(vis).
				ParentID(item.ID).
				Build())
		case "const_item":
			w.add(w.extractConstOrStatic(member, item.ID, qualified, model.KindConstant))
		}
	}
}

func (w *walker) extractImpl(node *sitter.Node, qualifiedPrefix string) {
	typeNode := node.ChildByFieldName("type")
	traitNode := node.ChildByFieldName("trait")

	selfType := ""
	if typeNode != nil {
		selfType = parsetree.Text(typeNode, w.content)
	}
	traitTarget := ""
	if traitNode != nil {
		traitTarget = parsetree.Text(traitNode, w.content)
	}

	kind := model.KindImpl
	if traitTarget != "" {
		kind = model.KindImplTrait
	}

	item := w.add(w.builder().
		Kind(kind).
		Name(selfType).
		QualifiedName(qualify(qualifiedPrefix, selfType)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Unspecified).
		Metadata(model.RustMetadata{
			SelfType:    selfType,
			TraitTarget: traitTarget,
			Generics:    extractGenerics(node.ChildByFieldName("type_parameters"), w.content),
		}).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	ic := implContext{traitTarget: traitTarget, selfType: selfType}
	for _, member := range parsetree.NamedChildren(body) {
		switch member.Type() {
		case "function_item":
			fn := w.extractFunction(member, nil, item.ID, selfType, model.KindMethod)
			w.add(fn)
			ic.methodIDs = append(ic.methodIDs, fn.ID)
		case "type_item":
			w.add(w.extractTypeAlias(member, item.ID, selfType))
		case "const_item":
			w.add(w.extractConstOrStatic(member, item.ID, selfType, model.KindConstant))
		}
	}
	w.pendingImpls = append(w.pendingImpls, ic)
}

// enrichImplMethods promotes a trait-impl's methods to Public when the
// implemented trait is a re-exported/public trait the file also defines,
// matching the deterministic, idempotent enrichment pass 
// describes for Rust.
func (w *walker) enrichImplMethods() {
	pub := map[string]bool{}
	for i := range w.items {
		if w.items[i].Kind == model.KindTrait && w.items[i].Visibility == model.Public {
			pub[w.items[i].Name] = true
		}
	}
	for _, ic := range w.pendingImpls {
		if !pub[ic.traitTarget] {
			continue
		}
		for _, id := range ic.methodIDs {
			if idx, ok := w.byID[id]; ok {
				w.items[idx].Visibility = model.Public
			}
		}
	}
}

func (w *walker) extractMod(node *sitter.Node, attrs []string, parentID, qualifiedPrefix string) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(qualifiedPrefix, name)

	item := w.add(w.builder().
		Kind(model.KindModule).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(rustVisibility(node, w.content)).
		ParentID(parentID).
		Metadata(model.RustMetadata{Attributes: attrs}).
		Build())

	body := node.ChildByFieldName("body")
	if body != nil {
		w.walkItems(body, item.ID, qualified)
	}
}

func (w *walker) extractTypeAlias(node *sitter.Node, parentID, qualifiedPrefix string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	typeNode := node.ChildByFieldName("type")
	sig := ""
	if typeNode != nil {
		sig = parsetree.Text(typeNode, w.content)
	}
	return w.builder().
		Kind(model.KindTypeAlias).
		Name(name).
		QualifiedName(qualify(qualifiedPrefix, name)).
		Signature(sig).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(rustVisibility(node, w.content)).
		ParentID(parentID).
		Build()
}

func (w *walker) extractConstOrStatic(node *sitter.Node, parentID, qualifiedPrefix string, kind model.SymbolKind) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	typeNode := node.ChildByFieldName("type")
	sig := ""
	if typeNode != nil {
		sig = parsetree.Text(typeNode, w.content)
	}
	return w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualify(qualifiedPrefix, name)).
		Signature(sig).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(rustVisibility(node, w.content)).
		ParentID(parentID).
		Build()
}

func (w *walker) extractUse(node *sitter.Node, parentID string) model.ParsedItem {
	doc := collectDoc(node, w.content)
	vis := rustVisibility(node, w.content)
	kind := model.KindImport
	if vis == model.Public {
		kind = model.KindReExport
	}
	return w.builder().
		Kind(kind).
		Name(parsetree.Text(node, w.content)).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(vis).
		ParentID(parentID).
		Build()
}

func (w *walker) extractMacroRules(node *sitter.Node, parentID string) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	return w.builder().
		Kind(model.KindMacroRules).
		Name(name).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Build()
}

func (w *walker) extractMacroInvocation(node *sitter.Node, parentID string) model.ParsedItem {
	name := ""
	if mac := node.ChildByFieldName("macro"); mac != nil {
		name = parsetree.Text(mac, w.content)
	}
	return w.builder().
		Kind(model.KindMacroInvocation).
		Name(name).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Unspecified).
		ParentID(parentID).
		Build()
}

func (w *walker) extractForeignMod(node *sitter.Node, parentID, qualifiedPrefix string) {
	abi := ""
	for _, c := range parsetree.Children(node) {
		if c.Type() == "string_literal" {
			abi = strings.Trim(parsetree.Text(c, w.content), `"`)
		}
	}
	kind := model.KindExternBlock
	if abi == "C" || abi == "" {
		kind = model.KindCLinkageBlock
	}
	item := w.add(w.builder().
		Kind(kind).
		Name("extern \"" + abi + "\"").
		Range(parsetree.NodeRange(node)).
		Visibility(model.Unspecified).
		ParentID(parentID).
		Metadata(model.RustMetadata{IsExtern: true, ABI: abi}).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, member := range parsetree.NamedChildren(body) {
		switch member.Type() {
		case "function_signature_item":
			fn := w.extractFunction(member, nil, item.ID, qualifiedPrefix, model.KindFunction)
			if gm, ok := fn.Metadata.(model.RustMetadata); ok {
				gm.IsExtern = true
				gm.ABI = abi
				fn.Metadata = gm
			}
			w.add(fn)
		case "static_item":
			w.add(w.extractConstOrStatic(member, item.ID, qualifiedPrefix, model.KindStaticVariable))
		}
	}
}

// --- helpers ---

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "::" + name
}

func fieldText(node *sitter.Node, field string, content []byte) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		return ""
	}
	return parsetree.Text(n, content)
}

// functionModifiers scans function_item's non-field children for the
// async/unsafe/const/extern tokens the grammar emits as bare anonymous
// children rather than named fields.
func functionModifiers(node *sitter.Node, content []byte) (isAsync, isUnsafe, isConst, isExtern bool, abi string) {
	for _, c := range parsetree.Children(node) {
		switch c.Type() {
		case "async":
			isAsync = true
		case "unsafe":
			isUnsafe = true
		case "const":
			isConst = true
		case "extern_modifier":
			isExtern = true
			for _, cc := range parsetree.Children(c) {
				if cc.Type() == "string_literal" {
					abi = strings.Trim(parsetree.Text(cc, content), `"`)
				}
			}
		}
	}
	return
}

func hasPyO3Attribute(attrs []string) bool {
	for _, a := range attrs {
		if strings.Contains(a, "pyo3") || strings.Contains(a, "pymethods") || strings.Contains(a, "pyclass") || strings.Contains(a, "pyfunction") {
			return true
		}
	}
	return false
}

func rustVisibility(node *sitter.Node, content []byte) model.Visibility {
	for _, c := range parsetree.Children(node) {
		if c.Type() == "visibility_modifier" {
			text := parsetree.Text(c, content)
			switch {
			case text == "pub":
				return model.Public
			case strings.Contains(text, "crate"):
				return model.Crate
			case strings.Contains(text, "self") || strings.Contains(text, "super"):
				return model.ModuleVis
			default:
				return model.Public
			}
		}
	}
	return model.Private
}

func extractGenerics(node *sitter.Node, content []byte) []model.GenericParameter {
	if node == nil {
		return nil
	}
	var out []model.GenericParameter
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "type_parameter":
			name := fieldText(child, "name", content)
			if name == "" && child.NamedChildCount() > 0 {
				name = parsetree.Text(child.NamedChild(0), content)
			}
			var bounds []string
			if b := child.ChildByFieldName("bounds"); b != nil {
				bounds = append(bounds, parsetree.Text(b, content))
			}
			out = append(out, model.GenericParameter{Name: name, Bounds: bounds})
		case "const_parameter":
			out = append(out, model.GenericParameter{Name: fieldText(child, "name", content)})
		}
	}
	return out
}

func extractLifetimes(node *sitter.Node, content []byte) []string {
	if node == nil {
		return nil
	}
	var out []string
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() == "lifetime" {
			out = append(out, parsetree.Text(child, content))
		}
	}
	return out
}

func structFields(body *sitter.Node, content []byte) []model.Field {
	if body == nil {
		return nil
	}
	var fields []model.Field
	switch body.Type() {
	case "field_declaration_list":
		for _, f := range parsetree.NamedChildren(body) {
			if f.Type() != "field_declaration" {
				continue
			}
			name := fieldText(f, "name", content)
			typeNode := f.ChildByFieldName("type")
			typ := ""
			if typeNode != nil {
				typ = parsetree.Text(typeNode, content)
			}
			fields = append(fields, model.Field{Name: name, Type: typ})
		}
	case "ordered_field_declaration_list":
		for i, f := range parsetree.NamedChildren(body) {
			if f.Type() != "visibility_modifier" {
				fields = append(fields, model.Field{Name: strconv.Itoa(i), Type: parsetree.Text(f, content)})
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
		case "self_parameter":
			out = append(out, model.Parameter{Name: "self", Type: parsetree.Text(child, content)})
		case "parameter":
			p := model.Parameter{}
			if pat := child.ChildByFieldName("pattern"); pat != nil {
				p.Name = parsetree.Text(pat, content)
			}
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = parsetree.Text(t, content)
			}
			out = append(out, p)
		case "variadic_parameter":
			out = append(out, model.Parameter{Name: "...", IsVariadic: true})
		}
	}
	return out
}

func signatureTail(params, returnType *sitter.Node, content []byte) string {
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

// collectDoc mirrors the Go extractor's contiguous-comment-run rule,
// distinguishing /// and //! line doc comments from plain // comments:
// only doc-prefixed runs attach.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	var raw []*sitter.Node
	cur := node.PrevNamedSibling()
	for cur != nil && (cur.Type() == "line_comment" || cur.Type() == "block_comment") {
		text := parsetree.Text(cur, content)
		if !strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "//!") &&
			!strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/*!") {
			break
		}
		raw = append([]*sitter.Node{cur}, raw...)
		next := cur.PrevNamedSibling()
		if next == nil {
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

	first := parsetree.Text(raw[0], content)
	if strings.HasPrefix(first, "/*") {
		return docparse.CollectBlock(first, "/*", "*/")
	}

	lines := make([]string, len(raw))
	for i, c := range raw {
		lines[i] = parsetree.Text(c, content)
	}
	prefix := "///"
	if strings.HasPrefix(lines[0], "//!") {
		prefix = "//!"
	}
	return docparse.CollectLine(lines, prefix)
}
