package model

import "encoding/json"

func init() { registerMetadata("csharp", decodeCSharpMetadata) }

// CSharpMetadata is the C#-specific metadata arm.
type CSharpMetadata struct {
	Access                     string             `json:"access,omitempty"`
	Modifiers                  []string           `json:"modifiers,omitempty"`
	GenericConstraints         []GenericParameter `json:"generic_constraints,omitempty"`
	Attributes                 []string           `json:"attributes,omitempty"`
	ExplicitInterfaceTarget    string             `json:"explicit_interface_target,omitempty"`
	IsExpressionBody           bool               `json:"expression_body,omitempty"`
	DelegateSignature          string             `json:"delegate_signature,omitempty"`
	IsPartial                  bool               `json:"is_partial,omitempty"`
	Parameters                 []Parameter        `json:"parameters,omitempty"`
	ReturnType                 string             `json:"return_type,omitempty"`
}

func (CSharpMetadata) Language() string { return "csharp" }

func decodeCSharpMetadata(raw json.RawMessage) (Metadata, error) {
	var m CSharpMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
