// SPDX-License-Identifier: MPL-2.0

// Package chisel generates Rechiseled chiseling recipes from the upstream
// Builder's Delight chisel definitions.
//
// The upstream repository publishes one chisel definition per block family
// under data/buildersdelight/chisel. Each definition lists the block
// variants that the Builder's Delight chisel cycles through. This package
// downloads those definitions via the GitHub contents API and rewrites each
// one into a rechiseled:chiseling recipe, named after the family's plank
// block, for consumption by the Rechiseled mod.
package chisel
