// Package table defines the loot-table data model and the validation
// boundary that turns untrusted JSON documents into typed tables.
//
// A loot table is a three-level mapping: category name to item-type name
// to rarity key to a list of items. The table is otherwise schemaless;
// categories and item types are whatever the document declares.
package table

import "sort"

// Rarities lists the canonical rarity tiers in ascending order.
var Rarities = []string{"Common", "Uncommon", "Rare", "Epic", "Legendary"}

// IsCanonicalRarity reports whether key is one of the five known tiers.
func IsCanonicalRarity(key string) bool {
	for _, r := range Rarities {
		if r == key {
			return true
		}
	}
	return false
}

// Drop holds the weighting block of an item.
type Drop struct {
	Weight int `json:"weight"`
}

// Item is a single loot entry. Name, Rarity, Type and Drop are required
// by validation; Tags and Stats are optional.
type Item struct {
	Name   string             `json:"name"`
	Rarity string             `json:"rarity"`
	Type   string             `json:"type"`
	Drop   Drop               `json:"drop"`
	Tags   []string           `json:"tags,omitempty"`
	Stats  map[string]float64 `json:"stats,omitempty"`
}

// HasTag reports whether the item carries the given tag.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAllTags reports whether the item carries every tag in tags.
func (it Item) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if !it.HasTag(t) {
			return false
		}
	}
	return true
}

// RarityMap groups items by rarity key within one item type.
type RarityMap map[string][]Item

// Category groups item types within one category.
type Category map[string]RarityMap

// Table is a fully validated loot table. Values of this type only exist
// on the far side of Parse; code holding a Table may assume every item
// satisfies the invariants the validator enforces.
type Table map[string]Category

// Flatten returns every item in the table. Keys are visited in sorted
// order so the result is stable across calls.
func (t Table) Flatten() []Item {
	var out []Item
	for _, cat := range sortedKeys(t) {
		category := t[cat]
		for _, typ := range sortedKeys(category) {
			rarities := category[typ]
			for _, rarity := range sortedKeys(rarities) {
				out = append(out, rarities[rarity]...)
			}
		}
	}
	return out
}

// ItemsByTag returns all items carrying the given tag.
func (t Table) ItemsByTag(tag string) []Item {
	var out []Item
	for _, it := range t.Flatten() {
		if it.HasTag(tag) {
			out = append(out, it)
		}
	}
	return out
}

// ItemsByTags returns all items carrying every tag in tags.
func (t Table) ItemsByTags(tags []string) []Item {
	var out []Item
	for _, it := range t.Flatten() {
		if it.HasAllTags(tags) {
			out = append(out, it)
		}
	}
	return out
}

// ItemsByCategory returns the items of one category. The second return
// value is false when the category does not exist.
func (t Table) ItemsByCategory(name string) ([]Item, bool) {
	category, ok := t[name]
	if !ok {
		return nil, false
	}
	var out []Item
	for _, typ := range sortedKeys(category) {
		rarities := category[typ]
		for _, rarity := range sortedKeys(rarities) {
			out = append(out, rarities[rarity]...)
		}
	}
	return out, true
}

// ItemsByRarity returns all items stored under the given rarity key.
func (t Table) ItemsByRarity(rarity string) []Item {
	var out []Item
	for _, it := range t.Flatten() {
		if it.Rarity == rarity {
			out = append(out, it)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
