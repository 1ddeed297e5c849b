package model

import "encoding/json"

func init() { registerMetadata("python", decodePythonMetadata) }

// PythonMetadata is the Python-specific metadata arm.
type PythonMetadata struct {
	IsAsync        bool        `json:"is_async,omitempty"`
	IsGenerator    bool        `json:"is_generator,omitempty"`
	IsProperty     bool        `json:"is_property,omitempty"`
	IsStaticmethod bool        `json:"is_staticmethod,omitempty"`
	IsClassmethod  bool        `json:"is_classmethod,omitempty"`
	IsAbstract     bool        `json:"is_abstract,omitempty"`
	IsDataclass    bool        `json:"is_dataclass,omitempty"`
	IsPydantic     bool        `json:"is_pydantic,omitempty"`
	IsProtocol     bool        `json:"is_protocol,omitempty"`
	IsOverload     bool        `json:"is_overload,omitempty"`
	BaseClasses    []string    `json:"base_classes,omitempty"`
	Decorators     []string    `json:"decorators,omitempty"`
	Parameters     []Parameter `json:"parameters,omitempty"`
	ReturnType     string      `json:"return_type,omitempty"`
}

func (PythonMetadata) Language() string { return "python" }

func decodePythonMetadata(raw json.RawMessage) (Metadata, error) {
	var m PythonMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
