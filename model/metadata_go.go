package model

import "encoding/json"

func init() { registerMetadata("go", decodeGoMetadata) }

// GoReceiver describes a method's receiver.
type GoReceiver struct {
	Name      string `json:"name,omitempty"`
	Type      string `json:"type"`
	IsPointer bool   `json:"is_pointer"`
}

// GoMetadata is the Go-specific metadata arm.
type GoMetadata struct {
	Receiver             *GoReceiver        `json:"receiver,omitempty"`
	IsVariadic           bool               `json:"is_variadic,omitempty"`
	ReturnTypes          []string           `json:"return_types,omitempty"`
	Parameters           []Parameter        `json:"parameters,omitempty"`
	EmbeddedFields       []string           `json:"embedded_fields,omitempty"`
	Constraints          []GenericParameter `json:"constraints,omitempty"`
	IsInterfaceEmbedding bool               `json:"is_interface_embedding,omitempty"`
	StructTag            string             `json:"struct_tag,omitempty"`
}

func (GoMetadata) Language() string { return "go" }

func decodeGoMetadata(raw json.RawMessage) (Metadata, error) {
	var m GoMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
