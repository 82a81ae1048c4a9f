// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package diffapply

import (
	"fmt"
	"strings"

	"github.com/nodecanvas/scenepatch/pkg/types"
)

// DefaultFuzzyThreshold is the minimum similarity required to accept a
// located match when the caller does not configure one.
const DefaultFuzzyThreshold = 0.8

// ApplyDiff applies a whole patch document to originalContent and returns
// the patched text. Hunks are applied in document order against the buffer
// as mutated by earlier hunks. Application is all-or-nothing: the first
// hunk that cannot be located above fuzzyThreshold fails the entire patch
// and no partial content is returned.
func ApplyDiff(originalContent, diffContent string, fuzzyThreshold float64) types.PatchResult {
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = DefaultFuzzyThreshold
	}

	hunks := ParseHunks(diffContent)
	if len(hunks) == 0 {
		return types.PatchResult{
			Success: false,
			Error:   "invalid diff format: no SEARCH/REPLACE blocks found",
		}
	}

	// The line ending used to reassemble the result comes from the
	// original input, not from the patch text.
	eol := "\n"
	if strings.Contains(originalContent, "\r\n") {
		eol = "\r\n"
	}
	lines := strings.Split(strings.ReplaceAll(originalContent, "\r\n", "\n"), "\n")

	for _, hunk := range hunks {
		// Normalize-equal hunks are a legitimate no-edit signal from the
		// generator, not an error.
		if strings.TrimSpace(hunk.Search) == strings.TrimSpace(hunk.Replace) {
			continue
		}

		candidate := locate(lines, hunk.Search, 0, len(lines))
		if candidate.StartLine == -1 || candidate.Score < fuzzyThreshold {
			return types.PatchResult{
				Success: false,
				Error: fmt.Sprintf("No sufficiently similar match found (%d%% similar, needs %d%%)",
					int(candidate.Score*100), int(fuzzyThreshold*100)),
			}
		}

		// An empty replacement is a pure deletion: the matched window is
		// removed rather than replaced with a blank line.
		var replacement []string
		if hunk.Replace != "" {
			replacement = strings.Split(hunk.Replace, "\n")
			searchFirst, _, _ := strings.Cut(hunk.Search, "\n")
			replacement = reindent(replacement, searchFirst, lines[candidate.StartLine])
		}
		lines = splice(lines, candidate.StartLine, candidate.HeightLines, replacement)
	}

	return types.PatchResult{
		Success: true,
		Content: strings.Join(lines, eol),
	}
}

// reindent shifts replacement lines by the indentation difference between
// the search chunk's first line and the matched window's first line.
// Models frequently emit hunks without the document's leading indentation;
// the fuzzy scorer tolerates that, and this keeps the spliced text aligned
// with where it actually landed.
func reindent(replacement []string, searchFirst, matchedFirst string) []string {
	sIndent := leadingWhitespace(searchFirst)
	mIndent := leadingWhitespace(matchedFirst)
	if mIndent == sIndent {
		return replacement
	}

	out := make([]string, len(replacement))
	switch {
	case strings.HasPrefix(mIndent, sIndent):
		extra := mIndent[len(sIndent):]
		for i, line := range replacement {
			if line == "" {
				continue
			}
			out[i] = extra + line
		}
	case strings.HasPrefix(sIndent, mIndent):
		drop := sIndent[len(mIndent):]
		for i, line := range replacement {
			out[i] = strings.TrimPrefix(line, drop)
		}
	default:
		return replacement
	}
	return out
}

// leadingWhitespace returns the run of spaces and tabs at the start of s.
func leadingWhitespace(s string) string {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return s[:i]
		}
	}
	return s
}

// splice removes count lines at start and inserts replacement in their place.
func splice(lines []string, start, count int, replacement []string) []string {
	result := make([]string, 0, len(lines)-count+len(replacement))
	result = append(result, lines[:start]...)
	result = append(result, replacement...)
	result = append(result, lines[start+count:]...)
	return result
}
