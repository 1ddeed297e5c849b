// Package svelte extracts ParsedItems from Svelte single-file components.
// The tree-sitter Svelte grammar treats <script>/<style> bodies as opaque
// raw text, so this extractor locates those segments, emits one KindSegment
// item per segment, and dispatches the script bodies into the registered
// TypeScript/JavaScript extractor for their contained declarations.
package svelte

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roveo/codextract/extract"
	"github.com/roveo/codextract/model"
	"github.com/roveo/codextract/parsetree"
)

func init() {
	extract.Register(&Extractor{})
}

// Extractor implements extract.Extractor for Svelte components.
type Extractor struct{}

func (Extractor) Language() string     { return "svelte" }
func (Extractor) Extensions() []string { return []string{".svelte"} }

func (Extractor) Extract(ctx context.Context, path string, content []byte) ([]model.ParsedItem, error) {
	tree, err := parsetree.Parse(ctx, "svelte", content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{ctx: ctx, path: path, content: content}
	w.walk(tree.RootNode())
	return w.items, nil
}

type walker struct {
	ctx     context.Context
	path    string
	content []byte
	items   []model.ParsedItem
}

func (w *walker) builder() *model.Builder {
	return model.NewBuilder(w.path, "svelte")
}

func (w *walker) add(it model.ParsedItem) model.ParsedItem {
	w.items = append(w.items, it)
	return it
}

func (w *walker) walk(node *sitter.Node) {
	for _, child := range parsetree.NamedChildren(node) {
		switch child.Type() {
		case "script_element":
			w.extractScript(child)
		case "style_element":
			w.extractStyle(child)
		default:
			w.walk(child)
		}
	}
}

func (w *walker) extractScript(node *sitter.Node) {
	attrs := elementAttributes(node, w.content)
	segment := "script_instance"
	if attrs["context"] == "module" {
		segment = "script_module"
	}
	lang := attrs["lang"]
	dialect := "javascript"
	if lang == "ts" || lang == "typescript" {
		dialect = "typescript"
	}

	raw := rawTextChild(node)
	seg := w.add(w.builder().
		Kind(model.KindSegment).
		Name(segment).
		QualifiedName(segment).
		Range(parsetree.NodeRange(node)).
		Visibility(model.Unspecified).
		Metadata(model.SvelteMetadata{Segment: segment, Lang: lang}).
		Build())
	if raw == nil {
		return
	}

	scriptSrc := parsetree.Text(raw, w.content)
	baseLine := int(raw.StartPoint().Row)
	baseByte := raw.StartByte()

	ex, ok := extract.ForLanguage(dialect)
	if !ok {
		return
	}
	nested, err := ex.Extract(w.ctx, w.path, []byte(scriptSrc))
	if err != nil {
		return
	}
	for _, it := range nested {
		it.Range = offsetRange(it.Range, baseLine, baseByte)
		if it.ParentID == "" {
			it.ParentID = seg.ID
		}
		w.add(it)
	}
}

func (w *walker) extractStyle(node *sitter.Node) {
	attrs := elementAttributes(node, w.content)
	w.add(w.builder().
		Kind(model.KindSegment).
		Name("style").
		QualifiedName("style").
		Range(parsetree.NodeRange(node)).
		Visibility(model.Unspecified).
		Metadata(model.SvelteMetadata{Segment: "style", Lang: attrs["lang"]}).
		Build())
}

// --- helpers ---

func elementAttributes(node *sitter.Node, content []byte) map[string]string {
	out := map[string]string{}
	var startTag *sitter.Node
	for _, c := range parsetree.NamedChildren(node) {
		if c.Type() == "start_tag" {
			startTag = c
			break
		}
	}
	if startTag == nil {
		return out
	}
	for _, attr := range parsetree.NamedChildren(startTag) {
		if attr.Type() != "attribute" {
			continue
		}
		text := parsetree.Text(attr, content)
		name, value := splitAttribute(text)
		out[name] = value
	}
	return out
}

func splitAttribute(text string) (name, value string) {
	idx := strings.Index(text, "=")
	if idx == -1 {
		return strings.TrimSpace(text), ""
	}
	name = strings.TrimSpace(text[:idx])
	value = strings.Trim(strings.TrimSpace(text[idx+1:]), "\"'{}")
	return
}

func rawTextChild(node *sitter.Node) *sitter.Node {
	for _, c := range parsetree.Children(node) {
		if c.Type() == "raw_text" {
			return c
		}
	}
	return nil
}

func offsetRange(r model.Range, baseLine int, baseByte uint32) model.Range {
	r.Start.Line += baseLine
	r.End.Line += baseLine
	r.StartByte += baseByte
	r.EndByte += baseByte
	return r
}
