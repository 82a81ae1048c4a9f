// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package agent

import (
	"strings"

	"github.com/nodecanvas/scenepatch/internal/diffapply"
)

// formatRetryPrompt builds the follow-up message sent to the model after
// a patch failed to apply. It names the failure, shows where the closest
// match was for each hunk that could not be located, and repeats the
// current document so the model regenerates against what is actually
// there.
func formatRetryPrompt(document, diffText, applyErr string, threshold float64) string {
	var buf strings.Builder

	buf.WriteString("The previous patch could not be applied: ")
	buf.WriteString(applyErr)
	buf.WriteString("\nRegenerate the SEARCH/REPLACE blocks using the same format.\n")

	for _, hunk := range diffapply.ParseHunks(diffText) {
		if strings.TrimSpace(hunk.Search) == strings.TrimSpace(hunk.Replace) {
			continue
		}
		d := diffapply.Diagnose(document, hunk.Search)
		if d.Similarity >= threshold {
			continue
		}
		if delta := diffapply.FormatDelta(d); delta != "" {
			buf.WriteString("\n")
			buf.WriteString(delta)
			buf.WriteString("\n")
		}
	}

	buf.WriteString("\n## Current document\n")
	buf.WriteString(document)

	return buf.String()
}
