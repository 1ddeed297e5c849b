package model

// ParsedItem is the universal output record: every symbol any extractor
// emits is one ParsedItem.
type ParsedItem struct {
	ID            string
	Kind          SymbolKind
	Name          string
	QualifiedName string
	Signature     string
	DocComment    string
	DocSections   DocSections
	Range         Range
	Visibility    Visibility
	Language      string
	ParentID      string
	Metadata      Metadata
}

// Builder constructs ParsedItems: it guarantees a non-empty name and a
// deterministic ID derived from the item's own fields rather than assigned
// by the caller. It does not check the range; Validate does.
type Builder struct {
	item ParsedItem
	path string
}

// NewBuilder starts a ParsedItem for the given file path (used only for ID
// derivation, never stored on the item itself) and language.
func NewBuilder(path, language string) *Builder {
	return &Builder{path: path, item: ParsedItem{Language: language, Visibility: Unspecified}}
}

func (b *Builder) Kind(k SymbolKind) *Builder           { b.item.Kind = k; return b }
func (b *Builder) Name(name string) *Builder            { b.item.Name = name; return b }
func (b *Builder) QualifiedName(qn string) *Builder     { b.item.QualifiedName = qn; return b }
func (b *Builder) Signature(sig string) *Builder        { b.item.Signature = sig; return b }
func (b *Builder) DocComment(doc string) *Builder       { b.item.DocComment = doc; return b }
func (b *Builder) DocSections(ds DocSections) *Builder  { b.item.DocSections = ds; return b }
func (b *Builder) Range(r Range) *Builder               { b.item.Range = r; return b }
func (b *Builder) Visibility(v Visibility) *Builder     { b.item.Visibility = v; return b }
func (b *Builder) ParentID(id string) *Builder          { b.item.ParentID = id; return b }
func (b *Builder) Metadata(m Metadata) *Builder         { b.item.Metadata = m; return b }

// Build finalizes the item: it synthesizes an anonymous name if one was
// never set, derives the deterministic ID, and returns the value. It never
// fails — range/name invariant violations are the caller's responsibility
// to avoid by construction; Validate can be used to check them after the
// fact.
func (b *Builder) Build() ParsedItem {
	it := b.item
	if it.Name == "" {
		it.Name = anonymousName(it.Kind)
	}
	it.ID = deriveID(it.Language, b.path, it.Kind, it.QualifiedName, it.Name, it.Range.StartByte)
	return it
}

func anonymousName(k SymbolKind) string {
	if k == "" {
		return "<anonymous>"
	}
	return "<anonymous_" + string(k) + ">"
}
