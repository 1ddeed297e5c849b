package model

import "encoding/json"

func init() { registerMetadata("bash", decodeBashMetadata) }

// BashMetadata is the Bash-specific metadata arm.
type BashMetadata struct {
	IsExported bool   `json:"is_exported,omitempty"`
	IsReadonly bool   `json:"is_readonly,omitempty"`
	IsAlias    bool   `json:"is_alias,omitempty"`
	IsTrap     bool   `json:"is_trap,omitempty"`
	HeredocTag string `json:"heredoc_tag,omitempty"`
	LoopKind   string `json:"loop_kind,omitempty"` // for, while, until, select, c_style
}

func (BashMetadata) Language() string { return "bash" }

func decodeBashMetadata(raw json.RawMessage) (Metadata, error) {
	var m BashMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
