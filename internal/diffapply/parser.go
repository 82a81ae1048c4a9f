// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package diffapply implements the fuzzy patch engine: it parses
// SEARCH/REPLACE hunks out of model-generated patch text and applies them
// to a document using similarity-based matching.
package diffapply

import (
	"strings"

	"github.com/nodecanvas/scenepatch/pkg/types"
)

const (
	markerSearch  = "<<<<<<< SEARCH"
	markerDivider = "======="
	markerReplace = ">>>>>>> REPLACE"
)

// ParseHunks extracts SEARCH/REPLACE hunks from a patch document, in
// document order. Interior formatting of both fields is preserved; only
// the newlines adjacent to the markers are dropped. Blocks missing a
// divider or a closing marker are skipped. An empty result means the
// document contains no recognizable hunks.
func ParseHunks(diffText string) []types.Hunk {
	var hunks []types.Hunk
	// A CRLF-formatted patch must not leak \r into the hunk fields; the
	// document's own line ending is detected separately by the applier.
	lines := strings.Split(strings.ReplaceAll(diffText, "\r\n", "\n"), "\n")
	i := 0

	for i < len(lines) {
		// Advance to the next SEARCH marker.
		for i < len(lines) && !isMarker(lines[i], markerSearch) {
			i++
		}
		if i >= len(lines) {
			break
		}
		i++

		// Collect search text until the ======= divider.
		var searchText strings.Builder
		foundDivider := false
		for i < len(lines) {
			if isMarker(lines[i], markerDivider) {
				foundDivider = true
				i++
				break
			}
			if searchText.Len() > 0 {
				searchText.WriteByte('\n')
			}
			searchText.WriteString(lines[i])
			i++
		}
		if !foundDivider {
			break
		}

		// Collect replacement text until the REPLACE marker.
		var replaceText strings.Builder
		foundReplace := false
		for i < len(lines) {
			if isMarker(lines[i], markerReplace) {
				foundReplace = true
				i++
				break
			}
			if replaceText.Len() > 0 {
				replaceText.WriteByte('\n')
			}
			replaceText.WriteString(lines[i])
			i++
		}
		if !foundReplace {
			break
		}

		hunks = append(hunks, types.Hunk{
			Search:  searchText.String(),
			Replace: replaceText.String(),
		})
	}

	return hunks
}

// CreateDiffTemplate formats a single well-formed hunk block. Callers use
// it to build patch documents programmatically and in example prompts.
func CreateDiffTemplate(searchContent, replaceContent string) string {
	return markerSearch + "\n" +
		searchContent + "\n" +
		markerDivider + "\n" +
		replaceContent + "\n" +
		markerReplace
}

// isMarker checks if a line matches a marker, allowing leading/trailing whitespace.
func isMarker(line, marker string) bool {
	return strings.TrimSpace(line) == marker
}
