package table

import (
	"fmt"
	"strconv"
	"strings"
)

// ItemRef addresses one item inside a loot table document.
type ItemRef struct {
	Category string
	Type     string
	Rarity   string
	Index    int
}

// Path renders the reference as a location string, the same form the
// validator uses in error paths: $.<category>.<type>.<rarity>[<index>].
func (r ItemRef) Path() string {
	return fmt.Sprintf("$.%s.%s.%s[%d]", r.Category, r.Type, r.Rarity, r.Index)
}

// ParseItemPath parses a location string back into an item reference.
// Field suffixes such as ".drop.weight" after the index are ignored, so
// error paths pointing at a field still resolve to their item.
func ParseItemPath(path string) (ItemRef, error) {
	rest, ok := strings.CutPrefix(path, "$.")
	if !ok {
		return ItemRef{}, fmt.Errorf("path %q does not start at the table root", path)
	}
	parts := strings.Split(rest, ".")
	if len(parts) < 3 {
		return ItemRef{}, fmt.Errorf("path %q is too short to address an item", path)
	}
	cat, typ, tail := parts[0], parts[1], parts[2]

	open := strings.IndexByte(tail, '[')
	end := strings.IndexByte(tail, ']')
	if open < 0 || end < open+1 {
		return ItemRef{}, fmt.Errorf("path %q has no item index", path)
	}
	idx, err := strconv.Atoi(tail[open+1 : end])
	if err != nil {
		return ItemRef{}, fmt.Errorf("path %q has a bad item index: %w", path, err)
	}
	if idx < 0 {
		return ItemRef{}, fmt.Errorf("path %q has a negative item index", path)
	}

	return ItemRef{Category: cat, Type: typ, Rarity: tail[:open], Index: idx}, nil
}

// LookupRawItem resolves a reference against a raw document. The second
// return value is false when any level is missing or mis-shaped.
func LookupRawItem(doc any, ref ItemRef) (map[string]any, bool) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, false
	}
	catNode, ok := root[ref.Category].(map[string]any)
	if !ok {
		return nil, false
	}
	typNode, ok := catNode[ref.Type].(map[string]any)
	if !ok {
		return nil, false
	}
	items, ok := typNode[ref.Rarity].([]any)
	if !ok || ref.Index >= len(items) {
		return nil, false
	}
	item, ok := items[ref.Index].(map[string]any)
	return item, ok
}
