// Package elixir extracts ParsedItems from Elixir source, grounded on the
// tree-sitter Elixir grammar's uniform `call` representation of module
// and function definitions (defmodule/def/defp/defmacro/... all parse as
// a `call` node whose target identifier names the construct).
package elixir

import (
	"strconv"
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

// Extractor implements extract.Extractor for Elixir.
type Extractor struct{}

func (Extractor) Language() string     { return "elixir" }
func (Extractor) Extensions() []string { return []string{".ex", ".exs"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "elixir", content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{path: path, content: content}
	w.walk(tree.RootNode(), "", "")
	return w.items, nil
}

type walker struct {
	path    string
	content []byte
	items   []model.ParsedItem
	// defIndex maps "kind:qualified_name/arity" to the index of the first
	// def/defp/... item emitted for that function, so every later
	// pattern-matched clause of it merges onto that item.
	defIndex map[string]int
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, "elixir")
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

func (w *walker) walk(node *sitter.Node, parentID, prefix string) {
	for _, child := range parsetree.NamedChildren(node) {
		w.dispatch(child, parentID, prefix)
	}
}

func (w *walker) dispatch(node *sitter.Node, parentID, prefix string) {
	if node.Type() != "call" {
		w.walk(node, parentID, prefix)
		return
	}
	target := callTarget(node, w.content)
	switch target {
	case "defmodule":
		w.extractModule(node, parentID, prefix)
	case "def", "defp", "defmacro", "defmacrop", "defguard", "defguardp":
		w.extractDef(node, target, parentID, prefix)
	case "defstruct":
		w.extractStruct(node, parentID, prefix)
	case "defprotocol":
		w.extractModule(node, parentID, prefix)
	case "defimpl":
		w.extractImpl(node, parentID, prefix)
	case "use", "import", "alias", "require":
		w.extractDirective(node, target, parentID, prefix)
	case "@":
		// handled below via attribute detection; callTarget returns "@"
		// only for unary attribute calls, which fall through to spec
		// handling in extractAttribute.
		w.extractAttribute(node, parentID, prefix)
	default:
		w.walk(node, parentID, prefix)
	}
}

func (w *walker) extractModule(node *sitter.Node, parentID, prefix string) {
	name := firstArgText(node, w.content)
	doc := precedingModuledoc(node, w.content)
	qualified := qualify(prefix, name)

	item := w.add(w.builder().
		Kind(model.KindModule).
		Name(name).
		QualifiedName(qualified).
		DocComment(doc).
		DocSections(docparse.ParseSections(doc)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.ElixirMetadata{DefKind: "defmodule"}).
		Build())

	if body := doBlock(node); body != nil {
		w.walk(body, item.ID, qualified)
	}
}

func (w *walker) extractImpl(node *sitter.Node, parentID, prefix string) {
	name := firstArgText(node, w.content)
	qualified := qualify(prefix, name)
	item := w.add(w.builder().
		Kind(model.KindModule).
		Name(name).
		QualifiedName(qualified).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.ElixirMetadata{DefKind: "defimpl", IsImplementation: true}).
		Build())
	if body := doBlock(node); body != nil {
		w.walk(body, item.ID, qualified)
	}
}

func (w *walker) extractDef(node *sitter.Node, defKind, parentID, prefix string) {
	head := firstArg(node)
	name, pattern, guard, arity := splitHead(head, w.content)
	if name == "" {
		return
	}
	doc := precedingDoc(node, w.content)
	kind := model.KindFunction
	if defKind == "defmacro" || defKind == "defmacrop" {
		kind = model.KindMacro
	}

	key := defKind + ":" + qualify(prefix, name) + "/" + arity
	if idx, ok := w.defIndex[key]; ok {
		w.appendClause(idx, pattern, guard)
		return
	}

	it := w.builder().
		Kind(kind).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Signature(name + "(" + arity + " args)").
		DocComment(doc).
		DocSections(docparse.ParseSections(doc)).
		Range(parsetree.NodeRange(node)).
		Visibility(defVisibility(defKind)).
		ParentID(parentID).
		Metadata(model.ElixirMetadata{
			DefKind: defKind,
			Clauses: []model.ElixirClause{{Pattern: pattern, Guard: guard}},
		}).
		Build()
	w.add(it)
	if w.defIndex == nil {
		w.defIndex = map[string]int{}
	}
	w.defIndex[key] = len(w.items) - 1
}

// appendClause merges an additional pattern-matched clause onto an
// already-emitted def item.
func (w *walker) appendClause(idx int, pattern, guard string) {
	if m, ok := w.items[idx].Metadata.(model.ElixirMetadata); ok {
		m.Clauses = append(m.Clauses, model.ElixirClause{Pattern: pattern, Guard: guard})
		w.items[idx].Metadata = m
	}
}

func (w *walker) extractStruct(node *sitter.Node, parentID, prefix string) {
	args := node.ChildByFieldName("arguments")
	var fields []model.Field
	if args != nil {
		for _, a := range parsetree.NamedChildren(args) {
			collectKeywordFieldNames(a, w.content, &fields)
		}
	}
	w.add(w.builder().
		Kind(model.KindStruct).
		Name("__struct__").
		QualifiedName(qualify(prefix, "__struct__")).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Public).
		ParentID(parentID).
		Metadata(model.ElixirMetadata{DefKind: "defstruct", StructFields: fields}).
		Build())
}

func (w *walker) extractDirective(node *sitter.Node, kind, parentID, prefix string) {
	target := firstArgText(node, w.content)
	if target == "" {
		return
	}
	w.add(w.builder().
		Kind(model.KindImport).
		Name(target).
		QualifiedName(qualify(prefix, target)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Unspecified).
		ParentID(parentID).
		Metadata(directiveMetadata(kind, target)).
		Build())
}

func (w *walker) extractAttribute(node *sitter.Node, parentID, prefix string) {
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return
	}
	name := strings.TrimPrefix(parsetree.Text(node, w.content), "@")
	if idx := strings.IndexAny(name, " ("); idx != -1 {
		name = name[:idx]
	}
	switch name {
	case "spec", "callback", "moduledoc", "doc":
		return
	}
	w.add(w.builder().
		Kind(model.KindAttribute).
		Name(name).
		QualifiedName(qualify(prefix, name)).
		Range(parsetree.NodeRange(node)).
		Visibility(model.ModuleVis).
		ParentID(parentID).
		Build())
}

func directiveMetadata(kind, target string) model.ElixirMetadata {
	m := model.ElixirMetadata{DefKind: kind}
	switch kind {
	case "use":
		m.Uses = []string{target}
	case "import":
		m.Imports = []string{target}
	case "alias":
		m.Aliases = []string{target}
	}
	return m
}

// --- helpers ---

func callTarget(node *sitter.Node, content []byte) string {
	target := node.ChildByFieldName("target")
	if target == nil {
		if node.NamedChildCount() == 0 {
			return ""
		}
		target = node.NamedChild(0)
	}
	return parsetree.Text(target, content)
}

func firstArg(node *sitter.Node) *sitter.Node {
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return nil
	}
	return args.NamedChild(0)
}

func firstArgText(node *sitter.Node, content []byte) string {
	a := firstArg(node)
	if a == nil {
		return ""
	}
	return parsetree.Text(a, content)
}

func doBlock(node *sitter.Node) *sitter.Node {
	for _, child := range parsetree.NamedChildren(node) {
		if child.Type() == "do_block" {
			return child
		}
	}
	return nil
}

// splitHead decomposes a def's head expression (e.g. `add(a, b)` or
// `add(a, b) when is_integer(a)`) into the function name, the rendered
// argument pattern, an optional guard clause text, and an arity string
// used as part of the clause-merge key.
func splitHead(head *sitter.Node, content []byte) (name, pattern, guard, arity string) {
	if head == nil {
		return "", "", "", "0"
	}
	call := head
	if head.Type() == "binary_operator" {
		left := head.ChildByFieldName("left")
		right := head.ChildByFieldName("right")
		if left != nil {
			call = left
		}
		if right != nil {
			guard = parsetree.Text(right, content)
		}
	}
	switch call.Type() {
	case "call":
		target := call.ChildByFieldName("target")
		if target != nil {
			name = parsetree.Text(target, content)
		} else if call.NamedChildCount() > 0 {
			name = parsetree.Text(call.NamedChild(0), content)
		}
		args := call.ChildByFieldName("arguments")
		if args != nil {
			pattern = parsetree.Text(args, content)
			arity = strconv.Itoa(int(args.NamedChildCount()))
		} else {
			arity = "0"
		}
	case "identifier":
		name = parsetree.Text(call, content)
		arity = "0"
	}
	return name, pattern, guard, arity
}

func collectKeywordFieldNames(node *sitter.Node, content []byte, fields *[]model.Field) {
	switch node.Type() {
	case "list":
		for _, c := range parsetree.NamedChildren(node) {
			collectKeywordFieldNames(c, content, fields)
		}
	case "keywords", "keyword_list":
		for _, c := range parsetree.NamedChildren(node) {
			collectKeywordFieldNames(c, content, fields)
		}
	case "pair", "keyword":
		if k := node.ChildByFieldName("key"); k != nil {
			*fields = append(*fields, model.Field{Name: strings.TrimSuffix(parsetree.Text(k, content), ":")})
		}
	case "atom":
		*fields = append(*fields, model.Field{Name: strings.TrimPrefix(parsetree.Text(node, content), ":")})
	}
}

// precedingDoc reads an immediately preceding `@doc "..."` attribute call
// as the function's documentation.
func precedingDoc(node *sitter.Node, content []byte) string {
	return precedingAttributeString(node, content, "doc")
}

func precedingModuledoc(node *sitter.Node, content []byte) string {
	body := doBlock(node)
	if body == nil {
		return ""
	}
	for _, child := range parsetree.NamedChildren(body) {
		if child.Type() != "call" {
			continue
		}
		name := strings.TrimPrefix(parsetree.Text(child, content), "@")
		if strings.HasPrefix(name, "moduledoc") {
			return attributeStringValue(child, content)
		}
	}
	return ""
}

func precedingAttributeString(node *sitter.Node, content []byte, attr string) string {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "call" {
		return ""
	}
	name := strings.TrimPrefix(parsetree.Text(prev, content), "@")
	if !strings.HasPrefix(name, attr) {
		return ""
	}
	if !docparse.Attaches(int(prev.EndPoint().Row), int(node.StartPoint().Row), 0) {
		return ""
	}
	return attributeStringValue(prev, content)
}

func attributeStringValue(call *sitter.Node, content []byte) string {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	first := args.NamedChild(0)
	if first.Type() != "string" {
		return ""
	}
	text := parsetree.Text(first, content)
	return strings.Trim(text, "\"")
}

func defVisibility(defKind string) model.Visibility {
	switch defKind {
	case "defp", "defmacrop", "defguardp":
		return model.Private
	default:
		return model.Public
	}
}

