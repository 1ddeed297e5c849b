package model

import "encoding/json"

func init() { registerMetadata("haskell", decodeHaskellMetadata) }

// HaskellMetadata is the Haskell-specific metadata arm.
type HaskellMetadata struct {
	DeclKind     string   `json:"decl_kind"` // signature, data, newtype, type, class, instance, foreign_import, foreign_export
	TypeSig      string   `json:"type_sig,omitempty"`
	Constructors []string `json:"constructors,omitempty"`
	Equations    int      `json:"equations,omitempty"`
	ForeignCConv string   `json:"foreign_c_conv,omitempty"`
	Fixity       string   `json:"fixity,omitempty"`
}

func (HaskellMetadata) Language() string { return "haskell" }

func decodeHaskellMetadata(raw json.RawMessage) (Metadata, error) {
	var m HaskellMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
