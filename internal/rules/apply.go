package rules

import (
	"github.com/HadleysDad/loot-api/internal/table"
)

// ApplySafe applies the safe-tier fixes of a preview to a deep copy of
// the document and returns the copy. The input is never mutated, and
// apply never fails: a fix whose path no longer resolves is skipped,
// and fixes above the safe tier are ignored even if a preview smuggled
// them in.
func ApplySafe(doc any, p Preview) any {
	out := table.CloneRaw(doc)
	for _, fix := range p.Fixes {
		if fix.Severity != SeveritySafe {
			continue
		}
		switch fix.Kind {
		case KindClampWeight:
			applyWeightClamp(out, fix.Path)
		case KindAddTags:
			applyMissingTags(out, fix.Path)
		}
	}
	return out
}

// applyWeightClamp sets drop.weight to 1 when it is missing, not an
// integer, or below 1. Re-applying to a corrected item is a no-op. A
// drop field of the wrong shape is left alone rather than overwritten.
func applyWeightClamp(doc any, path string) {
	item, ok := lookupFixTarget(doc, path)
	if !ok {
		return
	}
	drop, ok := item["drop"].(map[string]any)
	if !ok {
		if _, exists := item["drop"]; exists {
			return
		}
		drop = map[string]any{}
		item["drop"] = drop
	}
	if w, ok := table.AsInt(drop["weight"]); !ok || w < 1 {
		drop["weight"] = 1
	}
}

// applyMissingTags adds an empty tags list to an item that has none.
func applyMissingTags(doc any, path string) {
	item, ok := lookupFixTarget(doc, path)
	if !ok {
		return
	}
	if _, exists := item["tags"]; !exists {
		item["tags"] = []any{}
	}
}

func lookupFixTarget(doc any, path string) (map[string]any, bool) {
	ref, err := table.ParseItemPath(path)
	if err != nil {
		return nil, false
	}
	return table.LookupRawItem(doc, ref)
}
