package table

import (
	"encoding/json"
	"io"
	"os"
)

// DecodeJSON decodes one JSON document into its raw tree form. Numbers
// are kept as json.Number so validation can tell 2 apart from 2.0.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFile reads a loot-table document from disk in raw form. The result
// still has to pass Validate or Parse before anything trusts it.
func LoadFile(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeJSON(f)
}

// CloneRaw deep-copies a raw document tree. Scalars are shared; maps and
// slices are rebuilt, so mutating the copy never touches the original.
func CloneRaw(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = CloneRaw(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = CloneRaw(val)
		}
		return out
	default:
		return v
	}
}

// AsInt reports v as an integer. JSON-decoded trees carry json.Number;
// hand-built trees carry int. Floats never qualify, even integral ones,
// because the document said 2.0 and meant a float.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// AsNumber reports v as a float, accepting any numeric representation.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// WalkItems visits every item-shaped node in a raw document, skipping
// malformed branches the way the validator reports them. Keys are
// visited in sorted order so output built during a walk is stable.
func WalkItems(doc any, fn func(ref ItemRef, item map[string]any)) {
	root, ok := doc.(map[string]any)
	if !ok {
		return
	}
	for _, cat := range sortedKeys(root) {
		catNode, ok := root[cat].(map[string]any)
		if !ok {
			continue
		}
		for _, typ := range sortedKeys(catNode) {
			typNode, ok := catNode[typ].(map[string]any)
			if !ok {
				continue
			}
			for _, rarity := range sortedKeys(typNode) {
				items, ok := typNode[rarity].([]any)
				if !ok {
					continue
				}
				for i, raw := range items {
					item, ok := raw.(map[string]any)
					if !ok {
						continue
					}
					fn(ItemRef{Category: cat, Type: typ, Rarity: rarity, Index: i}, item)
				}
			}
		}
	}
}

// WalkTypes visits every well-shaped item-type node, handing the
// callback the rarity keys it declares.
func WalkTypes(doc any, fn func(category, itemType string, rarities map[string]any)) {
	root, ok := doc.(map[string]any)
	if !ok {
		return
	}
	for _, cat := range sortedKeys(root) {
		catNode, ok := root[cat].(map[string]any)
		if !ok {
			continue
		}
		for _, typ := range sortedKeys(catNode) {
			typNode, ok := catNode[typ].(map[string]any)
			if !ok {
				continue
			}
			fn(cat, typ, typNode)
		}
	}
}

// RawWeight extracts the integer drop weight of a raw item, if present.
func RawWeight(item map[string]any) (int64, bool) {
	drop, ok := item["drop"].(map[string]any)
	if !ok {
		return 0, false
	}
	return AsInt(drop["weight"])
}

// RawTags extracts the string tags of a raw item. Non-string elements
// are dropped rather than failing the whole list.
func RawTags(item map[string]any) []string {
	list, ok := item["tags"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// RawStats extracts the numeric stats of a raw item. Non-numeric values
// are dropped.
func RawStats(item map[string]any) map[string]float64 {
	m, ok := item["stats"].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if f, ok := AsNumber(v); ok {
			out[k] = f
		}
	}
	return out
}
