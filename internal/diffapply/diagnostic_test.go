// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package diffapply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodecanvas/scenepatch/pkg/types"
)

func TestDiagnose(t *testing.T) {
	content := "{\n  \"width\": 10,\n  \"height\": 20\n}"

	d := Diagnose(content, "\"width\": 12,")
	require.NotEmpty(t, d.ClosestMatch)
	assert.Equal(t, "  \"width\": 10,", d.ClosestMatch)
	assert.Equal(t, 2, d.ClosestLineStart)
	assert.Equal(t, 2, d.ClosestLineEnd)
	assert.Greater(t, d.Similarity, 0.5)
	assert.Less(t, d.Similarity, 1.0)
}

func TestDiagnose_EmptyInputs(t *testing.T) {
	assert.Empty(t, Diagnose("", "search").ClosestMatch)
	assert.Empty(t, Diagnose("content", "").ClosestMatch)
	assert.Zero(t, Diagnose("content", "").Similarity)
}

func TestDiagnose_ChunkTallerThanDocument(t *testing.T) {
	d := Diagnose("alpha beta", "alpha\nbeta\ngamma\ndelta")
	assert.Equal(t, 1, d.ClosestLineStart)
	assert.Equal(t, 1, d.ClosestLineEnd)
}

func TestFormatDelta(t *testing.T) {
	d := types.Diagnostic{
		SearchText:       "\"width\": 12,",
		ClosestMatch:     "\"width\": 10,",
		Similarity:       0.85,
		ClosestLineStart: 2,
		ClosestLineEnd:   2,
	}

	out := FormatDelta(d)
	assert.Contains(t, out, "lines 2-2")
	assert.Contains(t, out, "85% similar")
	assert.Contains(t, out, "[-")
	assert.Contains(t, out, "[+")
}

func TestFormatDelta_NoClosestMatch(t *testing.T) {
	assert.Empty(t, FormatDelta(types.Diagnostic{SearchText: "x"}))
}
