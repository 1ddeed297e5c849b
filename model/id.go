package model

import (
	"hash/fnv"
	"strconv"
)

// deriveID computes a deterministic identifier from
// (language, file_path, kind, qualified_name, start_byte), giving
// deterministic ids without any uniqueness coordination. start_byte
// is unique within a file, so no counter or random component is needed;
// hashing keeps the id short and stable across re-extractions of unchanged
// bytes.
//
// A random generator (e.g. google/uuid, present elsewhere in the pack) is
// deliberately not used here: it would make re-extraction non-deterministic,
// which breaks byte-identity across repeated runs. hash/fnv is the standard
// library's idiomatic non-cryptographic hash and needs no external
// dependency.
func deriveID(language, path string, kind SymbolKind, qualifiedName, name string, startByte uint32) string {
	h := fnv.New64a()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	write(language)
	write(path)
	write(string(kind))
	key := qualifiedName
	if key == "" {
		key = name
	}
	write(key)
	write(strconv.FormatUint(uint64(startByte), 10))
	return strconv.FormatUint(h.Sum64(), 16)
}
