package model

import "encoding/json"

func init() { registerMetadata("ruby", decodeRubyMetadata) }

// RubyMetadata is the Ruby-specific metadata arm.
type RubyMetadata struct {
	IsClassMethod bool        `json:"is_class_method,omitempty"`
	IsSingleton   bool        `json:"is_singleton,omitempty"`
	AccessorKind  string      `json:"accessor_kind,omitempty"` // reader, writer, accessor
	Parameters    []Parameter `json:"parameters,omitempty"`
	Mixins        []string    `json:"mixins,omitempty"` // include/extend/prepend targets
}

func (RubyMetadata) Language() string { return "ruby" }

func decodeRubyMetadata(raw json.RawMessage) (Metadata, error) {
	var m RubyMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
