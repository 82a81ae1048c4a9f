// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package diffapply

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDiff_RoundTrip(t *testing.T) {
	original := "{\n  \"size\": 1\n}"
	diff := "<<<<<<< SEARCH\n\"size\": 1\n=======\n\"size\": 2\n>>>>>>> REPLACE"

	result := ApplyDiff(original, diff, 0)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "{\n  \"size\": 2\n}", result.Content)
}

func TestApplyDiff_ExactMatchReplacesBlock(t *testing.T) {
	original := "line one\nline two\nline three\n"
	diff := CreateDiffTemplate("line two", "line 2")

	result := ApplyDiff(original, diff, 0)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "line one\nline 2\nline three\n", result.Content)
}

func TestApplyDiff_NoConfidentMatch(t *testing.T) {
	original := "{\n  \"size\": 1\n}"
	diff := CreateDiffTemplate("totally unrelated text that does not appear", "whatever")

	result := ApplyDiff(original, diff, 0)
	require.False(t, result.Success)
	assert.Contains(t, result.Error, "No sufficiently similar match found")
	assert.Contains(t, result.Error, "needs 80%")
}

func TestApplyDiff_InvalidFormat(t *testing.T) {
	tests := []struct {
		name string
		diff string
	}{
		{"plain text", "not a diff"},
		{"empty", ""},
		{"missing divider", "<<<<<<< SEARCH\nfoo\n>>>>>>> REPLACE"},
		{"missing close", "<<<<<<< SEARCH\nfoo\n=======\nbar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyDiff("any document\n", tt.diff, 0)
			require.False(t, result.Success)
			assert.Contains(t, result.Error, "invalid diff format")
			assert.Empty(t, result.Content)
		})
	}
}

func TestApplyDiff_NoOpHunk(t *testing.T) {
	original := "alpha\nbeta\n"

	// Trim-equal search/replace is a no-edit signal, even when the text
	// cannot be located at all.
	diff := CreateDiffTemplate("text that exists nowhere", "  text that exists nowhere  ")
	result := ApplyDiff(original, diff, 0)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, original, result.Content)
}

func TestApplyDiff_MultiHunk(t *testing.T) {
	lines := []string{
		"name: demo",
		"version: 1",
		"author: someone",
		"license: mit",
		"homepage: example.com",
		"keywords: none",
		"private: false",
		"main: index",
		"scripts: {}",
		"engines: any",
	}
	original := strings.Join(lines, "\n")

	diff := CreateDiffTemplate("version: 1", "version: 2") + "\n" +
		CreateDiffTemplate("license: mit", "license: apache-2.0")

	result := ApplyDiff(original, diff, 0)
	require.True(t, result.Success, result.Error)
	assert.Contains(t, result.Content, "version: 2")
	assert.Contains(t, result.Content, "license: apache-2.0")
	assert.NotContains(t, result.Content, "version: 1")
	assert.NotContains(t, result.Content, "license: mit")
}

func TestApplyDiff_SequentialDependency(t *testing.T) {
	original := "package config\n\nconst retries = 3\nconst mode = \"draft\"\nconst timeout = 30\n"

	h1 := CreateDiffTemplate("const mode = \"draft\"", "const mode = \"final\"")
	h2 := CreateDiffTemplate("const mode = \"final\"", "const mode = \"published\"")

	// H2's search text only exists after H1 is applied.
	ordered := ApplyDiff(original, h1+"\n"+h2, 0)
	require.True(t, ordered.Success, ordered.Error)
	assert.Contains(t, ordered.Content, "const mode = \"published\"")

	reversed := ApplyDiff(original, h2+"\n"+h1, 0)
	require.False(t, reversed.Success)
	assert.Contains(t, reversed.Error, "No sufficiently similar match found")
}

func TestApplyDiff_ThresholdBoundary(t *testing.T) {
	// The only plausible window scores exactly 0.8 against the search
	// chunk (2 edits over 10 runes). Acceptance must be monotonic in the
	// threshold around that score.
	original := "abcdefghij\n"
	diff := CreateDiffTemplate("abcdefghXY", "replaced")

	accepted := ApplyDiff(original, diff, 0.75)
	require.True(t, accepted.Success, accepted.Error)
	assert.Contains(t, accepted.Content, "replaced")

	rejected := ApplyDiff(original, diff, 0.85)
	require.False(t, rejected.Success)
	assert.Contains(t, rejected.Error, "needs 85%")
}

func TestApplyDiff_PureDeletion(t *testing.T) {
	original := "keep one\ndrop this\nkeep two\n"
	diff := "<<<<<<< SEARCH\ndrop this\n=======\n>>>>>>> REPLACE"

	result := ApplyDiff(original, diff, 0)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "keep one\nkeep two\n", result.Content)
}

func TestApplyDiff_WholeDocumentSearch(t *testing.T) {
	original := "first\nsecond\nthird"
	diff := CreateDiffTemplate("first\nsecond\nthird", "entirely\nnew")

	result := ApplyDiff(original, diff, 0)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "entirely\nnew", result.Content)
}

func TestApplyDiff_PreservesCRLF(t *testing.T) {
	original := "{\r\n  \"size\": 1\r\n}"
	diff := CreateDiffTemplate("\"size\": 1", "\"size\": 2")

	result := ApplyDiff(original, diff, 0)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "{\r\n  \"size\": 2\r\n}", result.Content)
}

func TestApplyDiff_CRLFDiffAgainstLFDocument(t *testing.T) {
	original := "{\n  \"width\": 10,\n  \"height\": 20\n}"
	diff := "<<<<<<< SEARCH\r\n  \"width\": 10,\r\n  \"height\": 20\r\n=======\r\n  \"width\": 15,\r\n  \"height\": 25\r\n>>>>>>> REPLACE\r\n"

	result := ApplyDiff(original, diff, 0)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "{\n  \"width\": 15,\n  \"height\": 25\n}", result.Content)
}

func TestApplyDiff_CaseInsensitiveMatch(t *testing.T) {
	original := "Timeout: 30\n"
	diff := CreateDiffTemplate("timeout: 30", "timeout: 60")

	result := ApplyDiff(original, diff, 0)
	require.True(t, result.Success, result.Error)
	assert.Contains(t, result.Content, "timeout: 60")
}

func TestSplice(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}

	assert.Equal(t, []string{"a", "x", "y", "d"}, splice(lines, 1, 2, []string{"x", "y"}))
	assert.Equal(t, []string{"a", "b", "c"}, splice(lines, 3, 1, nil))
	assert.Equal(t, []string{"z", "a", "b", "c", "d"}, splice(lines, 0, 0, []string{"z"}))
}

func TestReindent(t *testing.T) {
	tests := []struct {
		name         string
		replacement  []string
		searchFirst  string
		matchedFirst string
		want         []string
	}{
		{
			name:         "adds missing indentation",
			replacement:  []string{"\"size\": 2"},
			searchFirst:  "\"size\": 1",
			matchedFirst: "  \"size\": 1",
			want:         []string{"  \"size\": 2"},
		},
		{
			name:         "drops surplus indentation",
			replacement:  []string{"    x = 2"},
			searchFirst:  "    x = 1",
			matchedFirst: "  x = 1",
			want:         []string{"  x = 2"},
		},
		{
			name:         "unchanged when indents agree",
			replacement:  []string{"  a", "  b"},
			searchFirst:  "  a",
			matchedFirst: "  a",
			want:         []string{"  a", "  b"},
		},
		{
			name:         "blank lines stay blank",
			replacement:  []string{"a", "", "b"},
			searchFirst:  "a",
			matchedFirst: "\ta",
			want:         []string{"\ta", "", "\tb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reindent(tt.replacement, tt.searchFirst, tt.matchedFirst))
		})
	}
}
