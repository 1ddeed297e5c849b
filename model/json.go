package model

import "encoding/json"

// Range, DocSections, etc. all marshal structurally; ParsedItem needs a
// custom shape because its Metadata field is an interface and the wire
// format flattens the metadata discriminator into the
// metadata object itself rather than nesting it, and serializes every
// optional scalar as an explicit null instead of omitting the key.
func (it ParsedItem) MarshalJSON() ([]byte, error) {
	base := map[string]any{
		"id":             it.ID,
		"kind":           string(it.Kind),
		"name":           it.Name,
		"qualified_name": optional(it.QualifiedName),
		"signature":      optional(it.Signature),
		"doc_comment":    optional(it.DocComment),
		"doc_sections":   it.DocSections,
		"range":          it.Range,
		"visibility":     string(it.Visibility),
		"language":       it.Language,
		"parent_id":      optional(it.ParentID),
		"metadata":       nil,
	}

	if it.Metadata != nil {
		encoded, err := json.Marshal(it.Metadata)
		if err != nil {
			return nil, err
		}
		var flat map[string]any
		if err := json.Unmarshal(encoded, &flat); err != nil {
			return nil, err
		}
		if flat == nil {
			flat = map[string]any{}
		}
		flat["language"] = it.Metadata.Language()
		base["metadata"] = flat
	}

	return json.Marshal(base)
}

// UnmarshalJSON implements canonical wire shape, tolerating
// unknown fields (forward compatibility) and decoding the metadata
// discriminator via the per-language registry in metadata.go.
func (it *ParsedItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            string          `json:"id"`
		Kind          string          `json:"kind"`
		Name          string          `json:"name"`
		QualifiedName string          `json:"qualified_name"`
		Signature     string          `json:"signature"`
		DocComment    string          `json:"doc_comment"`
		DocSections   DocSections     `json:"doc_sections"`
		Range         Range           `json:"range"`
		Visibility    string          `json:"visibility"`
		Language      string          `json:"language"`
		ParentID      string          `json:"parent_id"`
		Metadata      json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	it.ID = raw.ID
	it.Kind = SymbolKind(raw.Kind)
	it.Name = raw.Name
	it.QualifiedName = raw.QualifiedName
	it.Signature = raw.Signature
	it.DocComment = raw.DocComment
	it.DocSections = raw.DocSections
	it.Range = raw.Range
	it.Visibility = Visibility(raw.Visibility)
	it.Language = raw.Language
	it.ParentID = raw.ParentID

	if len(raw.Metadata) > 0 && string(raw.Metadata) != "null" {
		var disc struct {
			Language string `json:"language"`
		}
		if err := json.Unmarshal(raw.Metadata, &disc); err != nil {
			return err
		}
		md, err := decodeMetadata(disc.Language, raw.Metadata)
		if err != nil {
			return err
		}
		it.Metadata = md
	}
	return nil
}

// optional returns nil (serializing to JSON null) for an unset optional
// scalar: items without a natural signature, doc comment, or qualified
// name should serialize that field as explicit null, not an empty string.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
