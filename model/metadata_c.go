package model

import "encoding/json"

func init() { registerMetadata("c", decodeCMetadata) }

// CMetadata is the C-specific metadata arm.
type CMetadata struct {
	IsExtern          bool        `json:"is_extern,omitempty"`
	IsStatic          bool        `json:"is_static,omitempty"`
	IsVolatile        bool        `json:"is_volatile,omitempty"`
	IsConst           bool        `json:"is_const,omitempty"`
	IsRegister        bool        `json:"is_register,omitempty"`
	ReturnType        string      `json:"return_type,omitempty"`
	Parameters        []Parameter `json:"parameters,omitempty"`
	Fields            []Field     `json:"fields,omitempty"`
	Attributes        []string    `json:"attributes,omitempty"`
	IsDeclarationOnly bool        `json:"is_declaration_only,omitempty"`
	IsFunctionLikeMacro bool      `json:"is_function_like_macro,omitempty"`
	MacroParameters   []string    `json:"macro_parameters,omitempty"`
}

func (CMetadata) Language() string { return "c" }

func decodeCMetadata(raw json.RawMessage) (Metadata, error) {
	var m CMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
