package model

import "encoding/json"

func init() { registerMetadata("rst", decodeRSTMetadata) }

// RSTMetadata is the reStructuredText-specific metadata arm.
type RSTMetadata struct {
	Level             int    `json:"level,omitempty"` // section nesting depth
	DirectiveName     string `json:"directive_name,omitempty"`
	RoleName          string `json:"role_name,omitempty"`
	TargetName        string `json:"target_name,omitempty"`
	IsBrokenReference bool   `json:"is_broken_reference,omitempty"`
}

func (RSTMetadata) Language() string { return "rst" }

func decodeRSTMetadata(raw json.RawMessage) (Metadata, error) {
	var m RSTMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
