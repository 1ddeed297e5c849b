package model

import "encoding/json"

func init() { registerMetadata("lua", decodeLuaMetadata) }

// LuaMetadata is the Lua-specific metadata arm.
type LuaMetadata struct {
	IsLocal     bool   `json:"is_local,omitempty"`
	IsReceiver  bool   `json:"is_receiver,omitempty"` // function M:f()
	Parent      string `json:"parent,omitempty"`      // function M.f()
	IsConst     bool   `json:"is_const,omitempty"`    // <const>
	IsClose     bool   `json:"is_close,omitempty"`    // <close>
}

func (LuaMetadata) Language() string { return "lua" }

func decodeLuaMetadata(raw json.RawMessage) (Metadata, error) {
	var m LuaMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
