package model

import "fmt"

// Validate checks a single ParsedItem's own invariants: a non-empty name,
// a byte range with Start strictly before End, and a populated ID. It does
// not check cross-item invariants (parent existence, no parent cycles) —
// those require the full result set and are checked by ValidateAll.
// Item ordering is checked by neither.
func Validate(item ParsedItem) error {
	if item.Name == "" {
		return fmt.Errorf("item has empty name (kind=%s)", item.Kind)
	}
	if item.ID == "" {
		return fmt.Errorf("item %q has empty id", item.Name)
	}
	if item.Range.StartByte >= item.Range.EndByte {
		return fmt.Errorf("item %q has invalid range [%d,%d)", item.Name, item.Range.StartByte, item.Range.EndByte)
	}
	return nil
}

// ValidateAll checks the full-result invariants: every parent_id resolves
// within the same result set, and there is no cycle in the parent/child
// forest.
func ValidateAll(items []ParsedItem) error {
	byID := make(map[string]ParsedItem, len(items))
	for _, it := range items {
		if err := Validate(it); err != nil {
			return err
		}
		byID[it.ID] = it
	}
	for _, it := range items {
		if it.ParentID == "" {
			continue
		}
		if _, ok := byID[it.ParentID]; !ok {
			return fmt.Errorf("item %q has dangling parent_id %q", it.Name, it.ParentID)
		}
	}
	for _, it := range items {
		if err := checkNoCycle(it, byID, make(map[string]bool)); err != nil {
			return err
		}
	}
	return nil
}

func checkNoCycle(it ParsedItem, byID map[string]ParsedItem, seen map[string]bool) error {
	id := it.ID
	for {
		if seen[id] {
			return fmt.Errorf("cycle detected in parent/child forest at item %q", it.Name)
		}
		seen[id] = true
		cur, ok := byID[id]
		if !ok || cur.ParentID == "" {
			return nil
		}
		id = cur.ParentID
	}
}
