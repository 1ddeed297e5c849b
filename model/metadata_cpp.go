package model

import "encoding/json"

func init() { registerMetadata("cpp", decodeCppMetadata) }

// CppBase is one base class in a class/struct's inheritance list.
type CppBase struct {
	Name      string `json:"name"`
	Access    string `json:"access,omitempty"`
	IsVirtual bool   `json:"is_virtual,omitempty"`
}

// CppMetadata is the C++-specific metadata arm.
type CppMetadata struct {
	Access             string             `json:"access,omitempty"`
	IsVirtual          bool               `json:"is_virtual,omitempty"`
	IsOverride         bool               `json:"is_override,omitempty"`
	IsFinal            bool               `json:"is_final,omitempty"`
	IsPure             bool               `json:"is_pure,omitempty"`
	IsDeleted          bool               `json:"is_deleted,omitempty"`
	IsDefaulted        bool               `json:"is_defaulted,omitempty"`
	IsExplicit         bool               `json:"is_explicit,omitempty"`
	IsConstexpr        bool               `json:"is_constexpr,omitempty"`
	IsConsteval        bool               `json:"is_consteval,omitempty"`
	IsConstinit        bool               `json:"is_constinit,omitempty"`
	IsNoexcept         bool               `json:"is_noexcept,omitempty"`
	IsInline           bool               `json:"is_inline,omitempty"`
	IsStatic           bool               `json:"is_static,omitempty"`
	StorageClass       string             `json:"storage_class,omitempty"`
	CVQualifiers       []string           `json:"cv_qualifiers,omitempty"`
	RefQualifier       string             `json:"ref_qualifier,omitempty"`
	TemplateParameters []GenericParameter `json:"template_parameters,omitempty"`
	RequiresClause     string             `json:"requires_clause,omitempty"`
	Bases              []CppBase          `json:"bases,omitempty"`
	Attributes         []string           `json:"attributes,omitempty"`
	ExternC            bool               `json:"extern_c,omitempty"`
	ReturnType         string             `json:"return_type,omitempty"`
	Parameters         []Parameter        `json:"parameters,omitempty"`
	TrailingReturn     string             `json:"trailing_return,omitempty"`
	OperatorKind       string             `json:"operator_kind,omitempty"`
	ConversionTarget    string            `json:"conversion_target,omitempty"`
	IsDeclarationOnly  bool               `json:"is_declaration_only,omitempty"`
}

func (CppMetadata) Language() string { return "cpp" }

func decodeCppMetadata(raw json.RawMessage) (Metadata, error) {
	var m CppMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
