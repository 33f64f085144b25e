// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for rbd, the Rechiseled ×
// Builder's Delight pack tool.
package cmd
