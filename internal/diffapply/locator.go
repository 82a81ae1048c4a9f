// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package diffapply

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/nodecanvas/scenepatch/pkg/types"
)

// similarity computes a normalized similarity in [0,1] between two text
// fragments. An empty search fragment can never anchor a real match, so
// an empty b scores 0. Case and outer whitespace are ignored.
func similarity(a, b string) float64 {
	if b == "" {
		return 0
	}

	na := strings.TrimSpace(strings.ToLower(a))
	nb := strings.TrimSpace(strings.ToLower(b))
	if na == nb {
		return 1
	}

	maxLen := utf8.RuneCountInString(na)
	if l := utf8.RuneCountInString(nb); l > maxLen {
		maxLen = l
	}

	dist := levenshtein.ComputeDistance(na, nb)
	return 1 - float64(dist)/float64(maxLen)
}

// locate finds the best-scoring window of matching height for searchChunk
// within lines[rangeStart:rangeEnd). The scan expands outward from the
// center of the range: as earlier hunks consume the head or tail of the
// buffer the target region tends to sit near the middle, so the correct
// match is usually found with fewer comparisons, and ties break toward
// positions nearer the center.
//
// StartLine is -1 when the range is smaller than the chunk height.
func locate(lines []string, searchChunk string, rangeStart, rangeEnd int) types.MatchCandidate {
	h := len(strings.Split(searchChunk, "\n"))

	best := types.MatchCandidate{StartLine: -1, HeightLines: h}
	if rangeEnd-rangeStart < h {
		return best
	}

	mid := (rangeStart + rangeEnd) / 2
	left, right := mid, mid+1

	for left >= rangeStart || right <= rangeEnd-h {
		if left >= rangeStart {
			if left+h <= rangeEnd {
				window := strings.Join(lines[left:left+h], "\n")
				if score := similarity(window, searchChunk); score > best.Score {
					best.Score = score
					best.StartLine = left
				}
			}
			left--
		}
		if right <= rangeEnd-h {
			window := strings.Join(lines[right:right+h], "\n")
			if score := similarity(window, searchChunk); score > best.Score {
				best.Score = score
				best.StartLine = right
			}
			right++
		}
	}

	return best
}
