package model

import "encoding/json"

func init() {
	registerMetadata("typescript", decodeTSMetadata)
	registerMetadata("tsx", decodeTSMetadata)
	registerMetadata("javascript", decodeTSMetadata)
	registerMetadata("jsx", decodeTSMetadata)
}

// TSOverload is an alternative signature merged onto an implementing
// declaration during the overload-merge enrichment pass.
type TSOverload struct {
	Signature  string      `json:"signature"`
	Parameters []Parameter `json:"parameters,omitempty"`
	ReturnType string      `json:"return_type,omitempty"`
}

// TSMetadata is the shared TypeScript/TSX/JavaScript/JSX metadata arm. The
// discriminator on the enclosing ParsedItem (one of "typescript", "tsx",
// "javascript", "jsx") distinguishes the concrete dialect.
type TSMetadata struct {
	Dialect          string             `json:"dialect"`
	IsExported       bool               `json:"is_exported,omitempty"`
	IsDefaultExport  bool               `json:"is_default_export,omitempty"`
	IsAsync          bool               `json:"is_async,omitempty"`
	IsGenerator      bool               `json:"is_generator,omitempty"`
	IsAbstract       bool               `json:"is_abstract,omitempty"`
	IsReadonly       bool               `json:"is_readonly,omitempty"`
	IsStatic         bool               `json:"is_static,omitempty"`
	IsOptional       bool               `json:"is_optional,omitempty"`
	Access           string             `json:"access,omitempty"`
	TypeParameters   []GenericParameter `json:"type_parameters,omitempty"`
	Extends          string             `json:"extends,omitempty"`
	Implements       []string           `json:"implements,omitempty"`
	Parameters       []Parameter        `json:"parameters,omitempty"`
	ReturnType       string             `json:"return_type,omitempty"`
	IsArrow          bool               `json:"is_arrow,omitempty"`
	IsDeclaration    bool               `json:"is_declaration,omitempty"`
	Overloads        []TSOverload       `json:"overloads,omitempty"`
}

func (m TSMetadata) Language() string {
	if m.Dialect != "" {
		return m.Dialect
	}
	return "typescript"
}

func decodeTSMetadata(raw json.RawMessage) (Metadata, error) {
	var m TSMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
