// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package diffapply

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/nodecanvas/scenepatch/pkg/types"
)

// Diagnose finds the closest window in content for a search chunk that
// failed to match. The agent retry loop feeds the result back to the
// model so it can regenerate the hunk against what is actually there.
func Diagnose(content, search string) types.Diagnostic {
	d := types.Diagnostic{SearchText: search}
	if search == "" || content == "" {
		return d
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	h := len(strings.Split(search, "\n"))
	if h > len(lines) {
		h = len(lines)
	}

	bestStart := -1
	for i := 0; i <= len(lines)-h; i++ {
		window := strings.Join(lines[i:i+h], "\n")
		if score := similarity(window, search); score > d.Similarity {
			d.Similarity = score
			bestStart = i
		}
	}

	if bestStart >= 0 {
		d.ClosestMatch = strings.Join(lines[bestStart:bestStart+h], "\n")
		d.ClosestLineStart = bestStart + 1
		d.ClosestLineEnd = bestStart + h
	}

	return d
}

// FormatDelta renders the difference between a diagnostic's closest match
// and its search text as inline [-removed-]/[+added+] spans, a form the
// model handles better than ANSI-colored output.
func FormatDelta(d types.Diagnostic) string {
	if d.ClosestMatch == "" {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(d.SearchText, d.ClosestMatch, false)
	dmp.DiffCleanupSemantic(diffs)

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("Closest match at lines %d-%d (%.0f%% similar):\n",
		d.ClosestLineStart, d.ClosestLineEnd, d.Similarity*100))
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			buf.WriteString("[-" + diff.Text + "-]")
		case diffmatchpatch.DiffInsert:
			buf.WriteString("[+" + diff.Text + "+]")
		default:
			buf.WriteString(diff.Text)
		}
	}
	return buf.String()
}
