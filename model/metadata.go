package model

import "encoding/json"

// Metadata is the tagged-variant arm carried by a ParsedItem. Each source
// language implements its own concrete type; Language() is the explicit
// discriminator needed for unambiguous pattern matching on the decoded
// side.
type Metadata interface {
	// Language names the discriminator arm, matching ParsedItem.Language.
	Language() string
}

// decoders maps a language discriminator to the function that rebuilds its
// concrete Metadata type from the raw JSON object the encoder produced.
// Each metadata_<lang>.go file registers itself in an init().
var decoders = map[string]func(json.RawMessage) (Metadata, error){}

// registerMetadata installs a decoder for a language discriminator.
func registerMetadata(lang string, fn func(json.RawMessage) (Metadata, error)) {
	decoders[lang] = fn
}

// decodeMetadata dispatches to the registered decoder for lang, falling
// back to OtherMetadata when none is registered.
func decodeMetadata(lang string, raw json.RawMessage) (Metadata, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if fn, ok := decoders[lang]; ok {
		return fn(raw)
	}
	return OtherMetadata{Lang: lang, Raw: raw}, nil
}

// OtherMetadata is the fallback arm for an unrecognized language
// discriminator. The raw JSON object is preserved verbatim so forward
// compatibility is never lossy.
type OtherMetadata struct {
	Lang string          `json:"-"`
	Raw  json.RawMessage `json:"-"`
}

func (o OtherMetadata) Language() string { return o.Lang }

// Parameter is the shared shape for a function/method parameter across the
// languages whose grammars expose one.
type Parameter struct {
	Name             string `json:"name"`
	Type             string `json:"type,omitempty"`
	Default          string `json:"default,omitempty"`
	IsVariadic       bool   `json:"is_variadic,omitempty"`
	IsOptional       bool   `json:"is_optional,omitempty"`
	IsKeywordOnly    bool   `json:"is_keyword_only,omitempty"`
	IsPositionalOnly bool   `json:"is_positional_only,omitempty"`
}

// GenericParameter captures a single generic/type parameter with its bounds.
type GenericParameter struct {
	Name   string   `json:"name"`
	Bounds []string `json:"bounds,omitempty"`
}
