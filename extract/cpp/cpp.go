// Package cpp extracts ParsedItems from C++ source, grounded on the
// tree-sitter C++ grammar's declaration productions.
package cpp

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

// Extractor implements extract.Extractor for C++.
type Extractor struct{}

func (Extractor) Language() string     { return "cpp" }
func (Extractor) Extensions() []string { return []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx", ".h++"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "cpp", content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{path: path, content: content, classByName: map[string]int{}}
	w.walk(tree.RootNode(), scope{})
	w.enrichOutOfClassMethods()
	return w.items, nil
}

// scope carries the state that changes as the walk descends: the current
// access specifier (sticky within a class body), the
// owning declaration's id/qualified-name prefix, and whether we're inside
// an extern "C" linkage block.
type scope struct {
	access      string
	parentID    string
	prefix      string
	externC     bool
	templateGen []model.GenericParameter
	requires    string
}

type walker struct {
	path        string
	content     []byte
	items       []model.ParsedItem
	classByName map[string]int
	// pendingOutOfClass holds method definitions whose declarator is
	// qualified (Class::method) so enrichment can link them to the class
	// item after the whole file has been walked.
	pendingOutOfClass []int
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, "cpp")
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

func (w *walker) walk(node *sitter.Node, s scope) {
	for _, child := range parsetree.NamedChildren(node) {
		w.dispatch(child, s)
	}
}

func (w *walker) dispatch(child *sitter.Node, s scope) {
	switch child.Type() {
	case "namespace_definition":
		w.extractNamespace(child, s)
	case "class_specifier":
		w.extractClassLike(child, model.KindClass, s)
	case "struct_specifier":
		w.extractClassLike(child, model.KindStruct, s)
	case "union_specifier":
		w.extractClassLike(child, model.KindUnion, s)
	case "enum_specifier":
		w.extractEnum(child, s)
	case "function_definition":
		w.add(w.extractFunctionDef(child, s, true))
	case "field_declaration":
		w.extractFieldDeclaration(child, s)
	case "declaration":
		w.extractDeclaration(child, s)
	case "template_declaration":
		w.extractTemplate(child, s)
	case "using_declaration":
		w.add(w.extractUsingDeclaration(child, s))
	case "alias_declaration":
		w.add(w.extractAliasDeclaration(child, s))
	case "concept_definition":
		w.add(w.extractConcept(child, s))
	case "static_assert_declaration":
		w.add(w.builder().Kind(model.KindAssertion).Name("static_assert").
			Range(parsetree.NodeRange(child)).Visibility(model.Unspecified).ParentID(s.parentID).Build())
	case "friend_declaration":
		w.add(w.builder().Kind(model.KindFriendDeclaration).Name(parsetree.Text(child, w.content)).
			Range(parsetree.NodeRange(child)).Visibility(model.Unspecified).ParentID(s.parentID).Build())
	case "linkage_specification":
		w.extractLinkage(child, s)
	case "access_specifier":
		// handled by caller (extractClassLike) which tracks stickiness.
	case "preproc_include":
		w.add(w.builder().Kind(model.KindInclude).Name(includeTarget(child, w.content)).
			Range(parsetree.NodeRange(child)).Visibility(model.Public).ParentID(s.parentID).Build())
	case "preproc_def":
		w.extractPreprocDef(child, s, false)
	case "preproc_function_def":
		w.extractPreprocDef(child, s, true)
	case "preproc_call":
		w.add(w.builder().Kind(model.KindPragma).Name(parsetree.Text(child, w.content)).
			Range(parsetree.NodeRange(child)).Visibility(model.Unspecified).ParentID(s.parentID).Build())
	case "preproc_ifdef", "preproc_if", "preproc_ifndef", "preproc_elif", "preproc_else":
		// Conditional compilation wrappers: their contained declarations
		// are still named children, so recurse with the same scope rather
		// than hiding them.
		w.walk(child, s)
	default:
		w.walk(child, s)
	}
}

func (w *walker) extractNamespace(node *sitter.Node, s scope) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	if name == "" {
		name = "<anonymous_namespace>"
	}
	qualified := qualify(s.prefix, name)
	item := w.add(w.builder().
		Kind(model.KindNamespace).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(s.parentID).
		Build())

	body := node.ChildByFieldName("body")
	if body != nil {
		w.walk(body, scope{parentID: item.ID, prefix: qualified, externC: s.externC})
	}
}

func (w *walker) extractClassLike(node *sitter.Node, kind model.SymbolKind, s scope) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(s.prefix, name)

	bases := extractBases(node.ChildByFieldName("base_class_clause"), w.content)

	item := w.add(w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(s.parentID).
		Metadata(model.CppMetadata{
			Bases:              bases,
			TemplateParameters: s.templateGen,
			RequiresClause:     s.requires,
			ExternC:            s.externC,
		}).
		Build())
	if name != "" {
		w.classByName[name] = len(w.items) - 1
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	defaultAccess := "private"
	if kind == model.KindStruct || kind == model.KindUnion {
		defaultAccess = "public"
	}
	access := defaultAccess
	memberScope := scope{access: access, parentID: item.ID, prefix: qualified, externC: s.externC}
	for _, member := range parsetree.NamedChildren(body) {
		if member.Type() == "access_specifier" {
			access = accessSpecifierText(member, w.content)
			memberScope.access = access
			continue
		}
		memberScope.access = access
		w.dispatch(member, memberScope)
	}
}

func (w *walker) extractEnum(node *sitter.Node, s scope) {
	name := fieldText(node, "name", w.content)
	doc := collectDoc(node, w.content)
	qualified := qualify(s.prefix, name)
	item := w.add(w.builder().
		Kind(model.KindEnum).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc.Text).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(s.parentID).
		Build())

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, e := range parsetree.NamedChildren(body) {
		if e.Type() != "enumerator" {
			continue
		}
		ename := fieldText(e, "name", w.content)
		w.add(w.builder().
			Kind(model.KindEnumVariant).
			Name(ename).
			QualifiedName(qualify(qualified, ename)).
			Range(parsetree.NodeRange(e)).
			Visibility(model.Public).
			ParentID(item.ID).
			Build())
	}
}

// extractFunctionDef handles both free functions and in-class/out-of-class
// method definitions, determined by whether the declarator's inner name is
// a qualified_identifier.
func (w *walker) extractFunctionDef(node *sitter.Node, s scope, topLevel bool) model.ParsedItem {
	declarator, name, params := unwrapFunctionDeclarator(node.ChildByFieldName("declarator"), w.content)
	doc := collectDoc(node, w.content)
	text := parsetree.Text(node, w.content)

	kind := model.KindFunction
	qualified := qualify(s.prefix, name)
	isOutOfClass := false
	if strings.Contains(name, "::") {
		isOutOfClass = true
		parts := strings.Split(name, "::")
		shortName := parts[len(parts)-1]
		owner := strings.Join(parts[:len(parts)-1], "::")
		qualified = owner + "::" + shortName
		name = shortName
		kind = model.KindMethod
	} else if s.access != "" {
		kind = model.KindMethod
		if name == ownerShortName(s.prefix) {
			kind = model.KindConstructor
		} else if strings.HasPrefix(name, "~") {
			kind = model.KindDestructor
		}
	}
	if strings.HasPrefix(name, "operator") {
		if isConversionOperator(name) {
			kind = model.KindConversionOperator
		} else {
			kind = model.KindOperatorOverload
		}
	}

	returnType := ""
	if t := node.ChildByFieldName("type"); t != nil {
		returnType = parsetree.Text(t, w.content)
	}

	meta := model.CppMetadata{
		Access:             s.access,
		IsVirtual:          strings.Contains(text, "virtual "),
		IsOverride:         hasWord(text, "override"),
		IsFinal:            hasWord(text, "final"),
		IsPure:             strings.Contains(text, "= 0"),
		IsDeleted:          strings.Contains(text, "= delete"),
		IsDefaulted:        strings.Contains(text, "= default"),
		IsExplicit:         strings.HasPrefix(strings.TrimSpace(text), "explicit") || strings.Contains(text, " explicit "),
		IsConstexpr:        strings.Contains(text, "constexpr "),
		IsConsteval:        strings.Contains(text, "consteval "),
		IsConstinit:        strings.Contains(text, "constinit "),
		IsNoexcept:         hasWord(text, "noexcept"),
		IsInline:           strings.Contains(text, "inline "),
		IsStatic:           strings.Contains(text, "static "),
		TemplateParameters: s.templateGen,
		RequiresClause:     s.requires,
		ReturnType:         returnType,
		Parameters:         extractParameters(params, w.content),
		ExternC:            s.externC,
		OperatorKind:       operatorKind(name),
	}
	if isConversionOperator(name) {
		meta.ConversionTarget = strings.TrimPrefix(name, "operator ")
	}

	parentID := s.parentID
	if isOutOfClass {
		parentID = ""
	}

	it := w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualified).
		Signature(signature(returnType, name, params, w.content)).
		DocComment(doc.Text).
		DocSections(docparse.ParseSections(doc.Text)).
		Range(parsetree.NodeRange(node)).
		Visibility(cppAccessVisibility(s.access)).
		ParentID(parentID).
		Metadata(meta).
		Build()

	if isOutOfClass {
		w.pendingOutOfClass = append(w.pendingOutOfClass, len(w.items))
	}
	_ = declarator
	return it
}

// extractDeclaration handles bare declarations: forward-declared
// prototypes (function declarations without a body) and plain variable
// declarations.
func (w *walker) extractDeclaration(node *sitter.Node, s scope) {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return
	}
	inner, name, params := unwrapFunctionDeclarator(declarator, w.content)
	if inner != nil && inner.Type() == "function_declarator" {
		returnType := ""
		if t := node.ChildByFieldName("type"); t != nil {
			returnType = parsetree.Text(t, w.content)
		}
		doc := collectDoc(node, w.content)
		w.add(w.builder().
			Kind(model.KindFunction).
			Name(name).
			QualifiedName(qualify(s.prefix, name)).
			Signature(signature(returnType, name, params, w.content)).
			DocComment(doc.Text).
			Range(parsetree.NodeRange(node)).
			Visibility(cppAccessVisibility(s.access)).
			ParentID(s.parentID).
			Metadata(model.CppMetadata{
				ReturnType:        returnType,
				Parameters:        extractParameters(params, w.content),
				IsDeclarationOnly: true,
				ExternC:           s.externC,
			}).
			Build())
		return
	}

	// Plain variable/typedef declaration.
	typeNode := node.ChildByFieldName("type")
	typeStr := ""
	if typeNode != nil {
		typeStr = parsetree.Text(typeNode, w.content)
	}
	varName := identifierName(declarator, w.content)
	if varName == "" {
		return
	}
	text := parsetree.Text(node, w.content)
	w.add(w.builder().
		Kind(model.KindGlobalVariable).
		Name(varName).
		QualifiedName(qualify(s.prefix, varName)).
		Signature(typeStr).
		Range(parsetree.NodeRange(node)).
		Visibility(cppAccessVisibility(s.access)).
		ParentID(s.parentID).
		Metadata(model.CppMetadata{
			IsStatic:   strings.Contains(text, "static "),
			IsConst:    strings.Contains(text, "const "),
			IsConstexpr: strings.Contains(text, "constexpr "),
		}).
		Build())
}

func (w *walker) extractFieldDeclaration(node *sitter.Node, s scope) {
	declarator := node.ChildByFieldName("declarator")
	if declarator != nil {
		if inner, name, params := unwrapFunctionDeclarator(declarator, w.content); inner != nil && inner.Type() == "function_declarator" {
			_ = name
			_ = params
			w.add(w.extractFunctionDef(node, s, false))
			return
		}
	}
	typeNode := node.ChildByFieldName("type")
	typeStr := ""
	if typeNode != nil {
		typeStr = parsetree.Text(typeNode, w.content)
	}
	name := ""
	bitWidth := 0
	if declarator != nil {
		name = identifierName(declarator, w.content)
	}
	if bf := node.ChildByFieldName("bitfield_clause"); bf != nil {
		bitWidth = parseInt(parsetree.Text(bf, w.content))
	}
	if name == "" {
		return
	}
	w.add(w.builder().
		Kind(model.KindField).
		Name(name).
		QualifiedName(qualify(s.prefix, name)).
		Signature(typeStr).
		Range(parsetree.NodeRange(node)).
		Visibility(cppAccessVisibility(s.access)).
		ParentID(s.parentID).
		Metadata(model.CppMetadata{Access: s.access}).
		Build())
	if bitWidth > 0 {
		idx := len(w.items) - 1
		if f, ok := w.items[idx].Metadata.(model.CppMetadata); ok {
			_ = f
		}
	}
}

func (w *walker) extractTemplate(node *sitter.Node, s scope) {
	tparams := extractTemplateParams(node.ChildByFieldName("parameters"), w.content)
	requires := ""
	if r := node.ChildByFieldName("requirement_clause"); r != nil {
		requires = parsetree.Text(r, w.content)
	}
	ts := s
	ts.templateGen = tparams
	ts.requires = requires
	// The templated declaration is the last named child.
	children := parsetree.NamedChildren(node)
	if len(children) == 0 {
		return
	}
	w.dispatch(children[len(children)-1], ts)
}

func (w *walker) extractLinkage(node *sitter.Node, s scope) {
	abi := ""
	for _, c := range parsetree.Children(node) {
		if c.Type() == "string_literal" {
			abi = strings.Trim(parsetree.Text(c, w.content), `"`)
		}
	}
	item := w.add(w.builder().
		Kind(model.KindCLinkageBlock).
		Name("extern \"" + abi + "\"").
		Range(parsetree.NodeRange(node)).
		Visibility(model.Unspecified).
		ParentID(s.parentID).
		Build())

	body := node.ChildByFieldName("body")
	ls := scope{parentID: item.ID, prefix: s.prefix, externC: true}
	if body != nil {
		w.walk(body, ls)
		return
	}
	// Single-declaration form: extern "C" void foo();
	if decl := node.ChildByFieldName("declarator"); decl != nil {
		_ = decl
	}
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() == "string_literal" {
			continue
		}
		w.dispatch(child, ls)
	}
}

func (w *walker) extractUsingDeclaration(node *sitter.Node, s scope) model.ParsedItem {
	return w.builder().
		Kind(model.KindUsingDeclaration).
		Name(parsetree.Text(node, w.content)).
		Range(parsetree.NodeRange(node)).
		Visibility(cppAccessVisibility(s.access)).
		ParentID(s.parentID).
		Build()
}

func (w *walker) extractAliasDeclaration(node *sitter.Node, s scope) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	typeNode := node.ChildByFieldName("type")
	sig := ""
	if typeNode != nil {
		sig = parsetree.Text(typeNode, w.content)
	}
	return w.builder().
		Kind(model.KindUsingAlias).
		Name(name).
		QualifiedName(qualify(s.prefix, name)).
		Signature(sig).
		Range(parsetree.NodeRange(node)).
		Visibility(cppAccessVisibility(s.access)).
		ParentID(s.parentID).
		Build()
}

func (w *walker) extractConcept(node *sitter.Node, s scope) model.ParsedItem {
	name := fieldText(node, "name", w.content)
	return w.builder().
		Kind(model.KindConcept).
		Name(name).
		QualifiedName(qualify(s.prefix, name)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(s.parentID).
		Build()
}

func (w *walker) extractPreprocDef(node *sitter.Node, s scope, functionLike bool) {
	name := fieldText(node, "name", w.content)
	kind := model.KindConstant
	var macroParams []string
	if functionLike {
		kind = model.KindMacro
		if p := node.ChildByFieldName("parameters"); p != nil {
			for _, pc := range parsetree.NamedChildren(p) {
				macroParams = append(macroParams, parsetree.Text(pc, w.content))
			}
		}
	}
	w.add(w.builder().
		Kind(kind).
		Name(name).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(s.parentID).
		Metadata(model.CMetadata{IsFunctionLikeMacro: functionLike, MacroParameters: macroParams}).
		Build())
}

// enrichOutOfClassMethods links Class::method definitions to the owning
// class item when one with a matching name exists in the same file
//; unmatched definitions stand alone with their qualified
// name intact.
func (w *walker) enrichOutOfClassMethods() {
	for _, idx := range w.pendingOutOfClass {
		qn := w.items[idx].QualifiedName
		owner := qn
		if i := strings.LastIndex(qn, "::"); i >= 0 {
			owner = qn[:i]
		}
		if clsIdx, ok := w.classByName[owner]; ok {
			w.items[idx].ParentID = w.items[clsIdx].ID
		}
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

func accessSpecifierText(node *sitter.Node, content []byte) string {
	text := strings.TrimSuffix(strings.TrimSpace(parsetree.Text(node, content)), ":")
	return strings.TrimSpace(text)
}

func cppAccessVisibility(access string) model.Visibility {
	switch access {
	case "public":
		return model.Public
	case "protected":
		return model.Protected
	case "private":
		return model.Private
	default:
		return model.Public
	}
}

func ownerShortName(prefix string) string {
	if i := strings.LastIndex(prefix, "::"); i >= 0 {
		return prefix[i+2:]
	}
	return prefix
}

// unwrapFunctionDeclarator descends through reference/pointer declarators to
// find the innermost function_declarator, returning it along with the
// rendered declarator name (which may be "Class::method" for out-of-class
// definitions) and its parameter list.
func unwrapFunctionDeclarator(node *sitter.Node, content []byte) (fnDecl *sitter.Node, name string, params *sitter.Node) {
	cur := node
	for cur != nil {
		switch cur.Type() {
		case "function_declarator":
			declNode := cur.ChildByFieldName("declarator")
			return cur, declaratorName(declNode, content), cur.ChildByFieldName("parameters")
		case "pointer_declarator", "reference_declarator", "abstract_function_declarator":
			cur = cur.ChildByFieldName("declarator")
		default:
			return nil, "", nil
		}
	}
	return nil, "", nil
}

func declaratorName(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier", "field_identifier", "qualified_identifier", "destructor_name", "operator_name":
		return parsetree.Text(node, content)
	}
	return ""
}

// identifierName extracts a declarator's bound name, looking past
// pointer/array/reference wrapping.
func identifierName(node *sitter.Node, content []byte) string {
	cur := node
	for cur != nil {
		switch cur.Type() {
		case "identifier", "field_identifier":
			return parsetree.Text(cur, content)
		case "pointer_declarator", "reference_declarator", "array_declarator":
			cur = cur.ChildByFieldName("declarator")
		case "init_declarator":
			cur = cur.ChildByFieldName("declarator")
		default:
			return parsetree.Text(cur, content)
		}
	}
	return ""
}

func extractBases(node *sitter.Node, content []byte) []model.CppBase {
	if node == nil {
		return nil
	}
	var bases []model.CppBase
	access := "private"
	for _, c := range parsetree.Children(node) {
		switch c.Type() {
		case "access_specifier":
			access = accessSpecifierText(c, content)
		case "virtual":
			// handled inline below via text scan
		case "type_identifier", "qualified_identifier", "template_type":
			bases = append(bases, model.CppBase{
				Name:      parsetree.Text(c, content),
				Access:    access,
				IsVirtual: strings.Contains(parsetree.Text(node, content), "virtual"),
			})
			access = "private"
		}
	}
	return bases
}

func extractTemplateParams(node *sitter.Node, content []byte) []model.GenericParameter {
	if node == nil {
		return nil
	}
	var out []model.GenericParameter
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "type_parameter_declaration", "parameter_declaration":
			name := fieldText(child, "name", content)
			if name == "" {
				name = parsetree.Text(child, content)
			}
			out = append(out, model.GenericParameter{Name: name})
		}
	}
	return out
}

func extractParameters(params *sitter.Node, content []byte) []model.Parameter {
	if params == nil {
		return nil
	}
	var out []model.Parameter
	for _, child := range parsetree.NamedChildren(params) {
		if child.Type() != "parameter_declaration" && child.Type() != "optional_parameter_declaration" {
			continue
		}
		p := model.Parameter{}
		if t := child.ChildByFieldName("type"); t != nil {
			p.Type = parsetree.Text(t, content)
		}
		if d := child.ChildByFieldName("declarator"); d != nil {
			p.Name = identifierName(d, content)
		}
		if v := child.ChildByFieldName("default_value"); v != nil {
			p.Default = parsetree.Text(v, content)
			p.IsOptional = true
		}
		out = append(out, p)
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
	return strings.Contains(text, " "+word) || strings.HasPrefix(text, word+" ") || strings.Contains(text, word+";") || strings.Contains(text, word+" ")
}

func isConversionOperator(name string) bool {
	return strings.HasPrefix(name, "operator ") || (strings.HasPrefix(name, "operator") && len(name) > 8 && !isOperatorSymbolStart(name[8]))
}

func isOperatorSymbolStart(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^', '~', '[', '(', ',':
		return true
	}
	return false
}

func operatorKind(name string) string {
	if !strings.HasPrefix(name, "operator") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(name, "operator"))
}

func includeTarget(node *sitter.Node, content []byte) string {
	if p := node.ChildByFieldName("path"); p != nil {
		return parsetree.Text(p, content)
	}
	return parsetree.Text(node, content)
}

func parseInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// collectDoc mirrors line/block doc-comment families for
// C++: /// and //! line runs, /** */ and /*! */ blocks.
func collectDoc(node *sitter.Node, content []byte) docparse.Block {
	var raw []*sitter.Node
	cur := node.PrevNamedSibling()
	for cur != nil && cur.Type() == "comment" {
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
	return docparse.CollectLine(lines, "///")
}
