// SPDX-License-Identifier: MPL-2.0

package chisel

import (
	"encoding/json"
	"strings"
)

// RecipeType is the recipe type identifier consumed by the Rechiseled mod.
const RecipeType = "rechiseled:chiseling"

type (
	// RecipeEntry is one block variant inside a chiseling recipe.
	RecipeEntry struct {
		Item string `json:"item"`
	}

	// Recipe is the chiseling recipe document written per block family.
	Recipe struct {
		Type      string        `json:"type"`
		Overwrite bool          `json:"overwrite"`
		Entries   []RecipeEntry `json:"entries"`
	}
)

// NewRecipe builds a chiseling recipe from an upstream variant list,
// preserving variant order.
func NewRecipe(variants []string) Recipe {
	entries := make([]RecipeEntry, 0, len(variants))
	for _, v := range variants {
		entries = append(entries, RecipeEntry{Item: v})
	}
	return Recipe{
		Type:      RecipeType,
		Overwrite: false,
		Entries:   entries,
	}
}

// Marshal renders the recipe as two-space-indented JSON with a trailing
// newline, matching the datapack's existing recipe files.
func (r Recipe) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// PlankName derives the output recipe name from an upstream definition
// filename. Frame families map to their plank block ("acacia_frame.json"
// -> "acacia_planks"), log families keep their name, and anything else
// gets a "_planks" suffix unless it already carries one.
func PlankName(filename string) string {
	base := strings.TrimSuffix(filename, ".json")

	switch {
	case strings.Contains(base, "_frame"):
		return strings.ReplaceAll(base, "_frame", "_planks")
	case strings.HasSuffix(base, "_log"):
		return base
	case strings.HasSuffix(base, "_planks"):
		return base
	default:
		return base + "_planks"
	}
}
