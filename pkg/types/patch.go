// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the shared data types for the scenepatch library:
// patch hunks and results, node definitions, and scene graphs.
package types

import "fmt"

// Hunk is a single search/replace pair extracted from a patch document.
// Hunks are ordered; application order is document order, and each hunk
// is matched against the document as mutated by the hunks before it.
type Hunk struct {
	Search  string // Text to locate in the document
	Replace string // Text spliced in over the located window
}

// MatchCandidate is the best window found for one hunk's search chunk.
type MatchCandidate struct {
	Score       float64 // Similarity of the window to the search chunk (0.0-1.0)
	StartLine   int     // First line of the window (0-based); -1 if no window fits
	HeightLines int     // Window height in lines
}

// PatchResult is the outcome of applying an entire patch document.
// Application is all-or-nothing: on failure Content is empty and no
// partially patched document is surfaced.
type PatchResult struct {
	Success bool   `json:"success"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Diagnostic describes why a hunk could not be located, with enough
// detail for the agent retry loop to format a useful follow-up prompt.
type Diagnostic struct {
	SearchText       string  // What the hunk searched for
	ClosestMatch     string  // Best window found (empty if none)
	Similarity       float64 // Similarity score of the closest window
	ClosestLineStart int     // Starting line of the closest window (1-based)
	ClosestLineEnd   int     // Ending line of the closest window (1-based)
}

func (d Diagnostic) Error() string {
	if d.ClosestMatch == "" {
		return "no match found"
	}
	return fmt.Sprintf("no match (closest at lines %d-%d, similarity %.2f)",
		d.ClosestLineStart, d.ClosestLineEnd, d.Similarity)
}
