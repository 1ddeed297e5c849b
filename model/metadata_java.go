package model

import "encoding/json"

func init() { registerMetadata("java", decodeJavaMetadata) }

// JavaMetadata is the Java-specific metadata arm.
type JavaMetadata struct {
	Modifiers      []string           `json:"modifiers,omitempty"`
	TypeParameters []GenericParameter `json:"type_parameters,omitempty"`
	Extends        string             `json:"extends,omitempty"`
	Implements     []string           `json:"implements,omitempty"`
	Annotations    []string           `json:"annotations,omitempty"`
	Parameters     []Parameter        `json:"parameters,omitempty"`
	ReturnType     string             `json:"return_type,omitempty"`
	IsRecord       bool               `json:"is_record,omitempty"`
	RecordComponents []Field          `json:"record_components,omitempty"`
}

func (JavaMetadata) Language() string { return "java" }

func decodeJavaMetadata(raw json.RawMessage) (Metadata, error) {
	var m JavaMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
