package table

import (
	"fmt"
	"strings"
)

// IssueCode classifies a validation finding so downstream rule analyzers
// can dispatch on the kind of problem instead of sniffing message text.
// Codes are internal routing; the wire shape of an Issue stays
// {path, message}.
type IssueCode string

const (
	CodeTopLevelShape  IssueCode = "top_level_shape"
	CodeCategoryShape  IssueCode = "category_shape"
	CodeTypeShape      IssueCode = "type_shape"
	CodeRarityShape    IssueCode = "rarity_shape"
	CodeItemShape      IssueCode = "item_shape"
	CodeMissingFields  IssueCode = "missing_fields"
	CodeItemName       IssueCode = "item_name"
	CodeRarityType     IssueCode = "rarity_type"
	CodeRarityMismatch IssueCode = "rarity_mismatch"
	CodeDropShape      IssueCode = "drop_shape"
	CodeDropFields     IssueCode = "drop_fields"
	CodeWeightNotInt   IssueCode = "weight_not_integer"
	CodeWeightRange    IssueCode = "weight_range"

	CodeUnknownRarity IssueCode = "unknown_rarity"
	CodeMissingTags   IssueCode = "missing_tags"
	CodeTagsShape     IssueCode = "tags_shape"
	CodeStatsShape    IssueCode = "stats_shape"
)

// Issue is one validation error or warning, located by path.
type Issue struct {
	Path    string    `json:"path"`
	Message string    `json:"message"`
	Code    IssueCode `json:"-"`
}

// Summary aggregates counts gathered during a validation walk.
type Summary struct {
	TotalItems          int            `json:"total_items"`
	Categories          int            `json:"categories"`
	ItemTypes           int            `json:"item_types"`
	RarityCounts        map[string]int `json:"rarity_counts"`
	UnknownRarityCounts map[string]int `json:"unknown_rarity_counts"`
}

// Compatibility flags tell downstream tools which operations the table
// can support. Any validation error revokes all of them; the policy is
// full trust or none.
type Compatibility struct {
	CanOverview bool `json:"can_overview"`
	CanSimulate bool `json:"can_simulate"`
	CanReweight bool `json:"can_reweight"`
	CanExport   bool `json:"can_export"`
}

// Result is the full outcome of validating a loot-table document.
type Result struct {
	Valid         bool          `json:"valid"`
	Errors        []Issue       `json:"errors"`
	Warnings      []Issue       `json:"warnings"`
	Summary       Summary       `json:"summary"`
	Compatibility Compatibility `json:"compatibility"`
}

// requiredItemFields must all be present before an item is inspected
// further. Checked in this order.
var requiredItemFields = []string{"name", "rarity", "type", "drop"}

// Validate walks a raw loot-table document and reports every structural
// error and soft warning it finds. Malformed input is the reported
// condition, never a panic or a Go error. Categories, types and rarity
// keys are visited in sorted order, so the same document always yields
// the same report.
func Validate(doc any) Result {
	res := Result{
		Errors:   []Issue{},
		Warnings: []Issue{},
		Summary: Summary{
			RarityCounts:        make(map[string]int, len(Rarities)),
			UnknownRarityCounts: map[string]int{},
		},
		Compatibility: Compatibility{
			CanOverview: true,
			CanSimulate: true,
			CanReweight: true,
			CanExport:   true,
		},
	}
	for _, r := range Rarities {
		res.Summary.RarityCounts[r] = 0
	}

	root, ok := doc.(map[string]any)
	if !ok {
		res.Errors = append(res.Errors, Issue{
			Path:    "$",
			Message: "Top-level loot_table must be an object of categories.",
			Code:    CodeTopLevelShape,
		})
		res.Compatibility = Compatibility{}
		return res
	}

	res.Summary.Categories = len(root)

	for _, catName := range sortedKeys(root) {
		catNode, ok := root[catName].(map[string]any)
		if !ok {
			res.Errors = append(res.Errors, Issue{
				Path:    "$." + catName,
				Message: "Category must be an object of item types.",
				Code:    CodeCategoryShape,
			})
			continue
		}

		for _, typeName := range sortedKeys(catNode) {
			res.Summary.ItemTypes++

			typeNode, ok := catNode[typeName].(map[string]any)
			if !ok {
				res.Errors = append(res.Errors, Issue{
					Path:    fmt.Sprintf("$.%s.%s", catName, typeName),
					Message: "Item type must be an object of rarities.",
					Code:    CodeTypeShape,
				})
				continue
			}

			for _, rarityKey := range sortedKeys(typeNode) {
				items, ok := typeNode[rarityKey].([]any)
				if !ok {
					res.Errors = append(res.Errors, Issue{
						Path:    fmt.Sprintf("$.%s.%s.%s", catName, typeName, rarityKey),
						Message: "Rarity entry must be a list of item objects.",
						Code:    CodeRarityShape,
					})
					continue
				}

				// Unknown tiers are tracked, not rejected. Their items
				// still go through full validation below.
				if !IsCanonicalRarity(rarityKey) {
					res.Summary.UnknownRarityCounts[rarityKey] += len(items)
					res.Warnings = append(res.Warnings, Issue{
						Path: fmt.Sprintf("$.%s.%s.%s", catName, typeName, rarityKey),
						Message: fmt.Sprintf("Unknown rarity key %q. Allowed: %s",
							rarityKey, strings.Join(Rarities, ", ")),
						Code: CodeUnknownRarity,
					})
				}

				for i, raw := range items {
					ref := ItemRef{Category: catName, Type: typeName, Rarity: rarityKey, Index: i}
					validateItem(&res, ref, raw)
				}
			}
		}
	}

	res.Valid = len(res.Errors) == 0
	if !res.Valid {
		res.Compatibility = Compatibility{}
	}
	return res
}

// validateItem runs the per-item checks in their fixed order, stopping
// at the first fatal finding for this item. Siblings are unaffected.
func validateItem(res *Result, ref ItemRef, raw any) {
	path := ref.Path()

	item, ok := raw.(map[string]any)
	if !ok {
		res.Errors = append(res.Errors, Issue{
			Path:    path,
			Message: "Item must be an object.",
			Code:    CodeItemShape,
		})
		return
	}

	var missing []string
	for _, f := range requiredItemFields {
		if _, ok := item[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		res.Errors = append(res.Errors, Issue{
			Path:    path,
			Message: "Missing required fields: " + strings.Join(missing, ", "),
			Code:    CodeMissingFields,
		})
		return
	}

	name, ok := item["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		res.Errors = append(res.Errors, Issue{
			Path:    path + ".name",
			Message: "Item name must be a non-empty string.",
			Code:    CodeItemName,
		})
		return
	}

	rarity, ok := item["rarity"].(string)
	if !ok {
		res.Errors = append(res.Errors, Issue{
			Path:    path + ".rarity",
			Message: "Item rarity must be a string.",
			Code:    CodeRarityType,
		})
		return
	}
	if rarity != ref.Rarity {
		res.Errors = append(res.Errors, Issue{
			Path:    path + ".rarity",
			Message: fmt.Sprintf("Item rarity %q must match container rarity %q.", rarity, ref.Rarity),
			Code:    CodeRarityMismatch,
		})
		return
	}

	drop, ok := item["drop"].(map[string]any)
	if !ok {
		res.Errors = append(res.Errors, Issue{
			Path:    path + ".drop",
			Message: "drop must be an object.",
			Code:    CodeDropShape,
		})
		return
	}
	if _, ok := drop["weight"]; !ok {
		res.Errors = append(res.Errors, Issue{
			Path:    path + ".drop",
			Message: "Missing required drop fields: weight",
			Code:    CodeDropFields,
		})
		return
	}

	weight, ok := AsInt(drop["weight"])
	if !ok {
		res.Errors = append(res.Errors, Issue{
			Path:    path + ".drop.weight",
			Message: "drop.weight must be an integer >= 1.",
			Code:    CodeWeightNotInt,
		})
		return
	}
	if weight < 1 {
		res.Errors = append(res.Errors, Issue{
			Path:    path + ".drop.weight",
			Message: "drop.weight must be >= 1.",
			Code:    CodeWeightRange,
		})
		return
	}

	// Soft findings. The item already passed every fatal check, so it
	// counts either way.
	if _, ok := item["tags"]; !ok {
		res.Warnings = append(res.Warnings, Issue{
			Path:    path,
			Message: "Missing optional field 'tags' (recommended).",
			Code:    CodeMissingTags,
		})
	} else if !tagsWellFormed(item["tags"]) {
		res.Warnings = append(res.Warnings, Issue{
			Path:    path + ".tags",
			Message: "tags should be a list of strings.",
			Code:    CodeTagsShape,
		})
	}

	if stats, ok := item["stats"]; ok {
		if _, isMap := stats.(map[string]any); !isMap {
			res.Warnings = append(res.Warnings, Issue{
				Path:    path + ".stats",
				Message: "stats should be an object of numeric values.",
				Code:    CodeStatsShape,
			})
		}
	}

	res.Summary.TotalItems++
	if IsCanonicalRarity(ref.Rarity) {
		res.Summary.RarityCounts[ref.Rarity]++
	}
}

func tagsWellFormed(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, t := range list {
		if _, ok := t.(string); !ok {
			return false
		}
	}
	return true
}

// Parse validates a raw document and, when it is clean, builds the typed
// table. This is the single boundary between untrusted trees and typed
// code; a nil Table means the Result explains why.
func Parse(doc any) (Table, Result) {
	res := Validate(doc)
	if !res.Valid {
		return nil, res
	}

	out := Table{}
	WalkItems(doc, func(ref ItemRef, raw map[string]any) {
		item := itemFromRaw(raw)
		cat, ok := out[ref.Category]
		if !ok {
			cat = Category{}
			out[ref.Category] = cat
		}
		rm, ok := cat[ref.Type]
		if !ok {
			rm = RarityMap{}
			cat[ref.Type] = rm
		}
		rm[ref.Rarity] = append(rm[ref.Rarity], item)
	})
	return out, res
}

// itemFromRaw converts a validated raw item. Malformed optional fields
// were already reported as warnings; here they degrade to empty values.
func itemFromRaw(raw map[string]any) Item {
	it := Item{}
	it.Name, _ = raw["name"].(string)
	it.Rarity, _ = raw["rarity"].(string)
	it.Type, _ = raw["type"].(string)
	if w, ok := RawWeight(raw); ok {
		it.Drop.Weight = int(w)
	}
	it.Tags = RawTags(raw)
	it.Stats = RawStats(raw)
	return it
}
