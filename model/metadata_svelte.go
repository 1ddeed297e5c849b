package model

import "encoding/json"

func init() { registerMetadata("svelte", decodeSvelteMetadata) }

// SvelteMetadata is the Svelte-specific metadata arm. Segment identifies
// which part of the single-file component the item came from.
type SvelteMetadata struct {
	Segment          string   `json:"segment"` // script_module, script_instance, style, template
	Lang             string   `json:"lang,omitempty"`
	Directive        string   `json:"directive,omitempty"` // on:, bind:, class:, use:, let:
	BlockKind        string   `json:"block_kind,omitempty"` // if, each, await, key, snippet
	ComponentRef     string   `json:"component_ref,omitempty"`
	PropName         string   `json:"prop_name,omitempty"`
}

func (SvelteMetadata) Language() string { return "svelte" }

func decodeSvelteMetadata(raw json.RawMessage) (Metadata, error) {
	var m SvelteMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
