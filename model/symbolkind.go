package model

// SymbolKind is the closed, cross-language taxonomy every ParsedItem.Kind
// takes. It unifies the grammar productions of all seventeen extractors
// into one stable, snake_case-serializing enumeration.
type SymbolKind string

// String returns the stable snake_case serialization of the kind.
func (k SymbolKind) String() string { return string(k) }

const (
	KindFunction           SymbolKind = "function"
	KindMethod             SymbolKind = "method"
	KindConstructor        SymbolKind = "constructor"
	KindDestructor         SymbolKind = "destructor"
	KindProperty           SymbolKind = "property"
	KindAccessor           SymbolKind = "accessor"
	KindField              SymbolKind = "field"
	KindParameter          SymbolKind = "parameter"
	KindLocalVariable      SymbolKind = "local_variable"
	KindGlobalVariable     SymbolKind = "global_variable"
	KindConstant           SymbolKind = "constant"
	KindStaticVariable     SymbolKind = "static_variable"
	KindTypeAlias          SymbolKind = "type_alias"
	KindStruct             SymbolKind = "struct"
	KindUnion              SymbolKind = "union"
	KindEnum               SymbolKind = "enum"
	KindEnumVariant        SymbolKind = "enum_variant"
	KindTrait              SymbolKind = "trait"
	KindInterface          SymbolKind = "interface"
	KindClass              SymbolKind = "class"
	KindImpl               SymbolKind = "impl"
	KindImplTrait          SymbolKind = "impl_trait"
	KindModule             SymbolKind = "module"
	KindNamespace          SymbolKind = "namespace"
	KindMacro              SymbolKind = "macro"
	KindMacroRules         SymbolKind = "macro_rules"
	KindTemplate           SymbolKind = "template"
	KindAttribute          SymbolKind = "attribute"
	KindDecorator          SymbolKind = "decorator"
	KindAnnotation         SymbolKind = "annotation"
	KindLabel              SymbolKind = "label"
	KindLifetime           SymbolKind = "lifetime"
	KindConcept            SymbolKind = "concept"
	KindOperatorOverload   SymbolKind = "operator_overload"
	KindConversionOperator SymbolKind = "conversion_operator"
	KindUsingDeclaration   SymbolKind = "using_declaration"
	KindUsingAlias         SymbolKind = "using_alias"
	KindUsingDirective     SymbolKind = "using_directive"
	KindFriendDeclaration  SymbolKind = "friend_declaration"
	KindExternBlock        SymbolKind = "extern_block"
	KindCLinkageBlock      SymbolKind = "c_linkage_block"
	KindTypeParameter      SymbolKind = "type_parameter"
	KindConstParameter     SymbolKind = "const_parameter"
	KindAssociatedType     SymbolKind = "associated_type"
	KindCallback           SymbolKind = "callback"
	KindDelegate           SymbolKind = "delegate"
	KindEvent              SymbolKind = "event"
	KindSignal             SymbolKind = "signal"
	KindHook               SymbolKind = "hook"
	KindTest               SymbolKind = "test"
	KindTask               SymbolKind = "task"
	KindProcess            SymbolKind = "process"
	KindAssertion          SymbolKind = "assertion"
	KindInclude            SymbolKind = "include"
	KindImport             SymbolKind = "import"
	KindExport             SymbolKind = "export"
	KindReExport           SymbolKind = "re_export"
	KindPragma             SymbolKind = "pragma"
	KindMacroInvocation    SymbolKind = "macro_invocation"
	KindHeredoc            SymbolKind = "heredoc"
	KindBlockCommentBanner SymbolKind = "block_comment_banner"
	KindSection            SymbolKind = "section"
	KindFootnote           SymbolKind = "footnote"
	KindCitation           SymbolKind = "citation"
	KindSubstitution       SymbolKind = "substitution"
	KindDirective          SymbolKind = "directive"
	KindRSTTarget          SymbolKind = "rst_target"
	KindRole               SymbolKind = "role"
	KindRecord             SymbolKind = "record"
	KindSegment            SymbolKind = "segment"
)
