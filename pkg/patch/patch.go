// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package patch is the public interface to the fuzzy patch engine. It
// applies model-generated SEARCH/REPLACE patches to text documents and to
// JSON node definitions and scene graphs, validating the result shape.
package patch

import (
	"context"
	"encoding/json"

	"github.com/nodecanvas/scenepatch/internal/diffapply"
	"github.com/nodecanvas/scenepatch/internal/schema"
	"github.com/nodecanvas/scenepatch/pkg/types"
)

// DefaultFuzzyThreshold is the minimum similarity accepted for a hunk
// match when the caller passes a zero threshold.
const DefaultFuzzyThreshold = diffapply.DefaultFuzzyThreshold

// NodeDiffResult is the outcome of patching a node definition.
type NodeDiffResult struct {
	Success bool                  `json:"success"`
	Node    *types.NodeDefinition `json:"node,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// SceneDiffResult is the outcome of patching a scene graph.
type SceneDiffResult struct {
	Success bool         `json:"success"`
	Scene   *types.Scene `json:"scene,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ApplyDiff applies a patch document to arbitrary text. A fuzzyThreshold
// of 0 selects the default. The call is pure and stateless; concurrent
// invocations are safe.
func ApplyDiff(originalContent, diffContent string, fuzzyThreshold float64) types.PatchResult {
	return diffapply.ApplyDiff(originalContent, diffContent, fuzzyThreshold)
}

// ApplyNodeDiff serializes a node definition to pretty-printed JSON,
// applies the patch, and validates that the result parses back into a
// well-formed node definition.
func ApplyNodeDiff(original types.NodeDefinition, diffContent string) NodeDiffResult {
	// Nil slices serialize as null, which the shape check rejects. The
	// check must not fail on fields the patch never touched.
	if original.Inputs == nil {
		original.Inputs = []types.NodePort{}
	}
	if original.Outputs == nil {
		original.Outputs = []types.NodePort{}
	}
	if original.Parameters == nil {
		original.Parameters = []types.NodeParameter{}
	}

	content, err := json.MarshalIndent(original, "", "  ")
	if err != nil {
		return NodeDiffResult{Error: "serializing node: " + err.Error()}
	}

	result := diffapply.ApplyDiff(string(content), diffContent, DefaultFuzzyThreshold)
	if !result.Success {
		return NodeDiffResult{Error: result.Error}
	}

	var parsed any
	if err := json.Unmarshal([]byte(result.Content), &parsed); err != nil {
		return NodeDiffResult{Error: "parsing error: patched content is not valid JSON: " + err.Error()}
	}
	if !schema.ValidateNodeStructure(parsed) {
		return NodeDiffResult{Error: "structure error: patched JSON is not a valid node definition"}
	}

	var node types.NodeDefinition
	if err := json.Unmarshal([]byte(result.Content), &node); err != nil {
		return NodeDiffResult{Error: "parsing error: " + err.Error()}
	}

	return NodeDiffResult{Success: true, Node: &node}
}

// ApplySceneDiff serializes a scene to pretty-printed JSON, applies the
// patch, and validates that the result parses back into a well-formed
// scene graph.
func ApplySceneDiff(original types.Scene, diffContent string) SceneDiffResult {
	if original.Nodes == nil {
		original.Nodes = []types.SceneNode{}
	}
	if original.Edges == nil {
		original.Edges = []types.SceneEdge{}
	}

	content, err := json.MarshalIndent(original, "", "  ")
	if err != nil {
		return SceneDiffResult{Error: "serializing scene: " + err.Error()}
	}

	result := diffapply.ApplyDiff(string(content), diffContent, DefaultFuzzyThreshold)
	if !result.Success {
		return SceneDiffResult{Error: result.Error}
	}

	var parsed any
	if err := json.Unmarshal([]byte(result.Content), &parsed); err != nil {
		return SceneDiffResult{Error: "parsing error: patched content is not valid JSON: " + err.Error()}
	}
	if !schema.ValidateSceneStructure(parsed) {
		return SceneDiffResult{Error: "structure error: patched JSON is not a valid scene"}
	}

	var scene types.Scene
	if err := json.Unmarshal([]byte(result.Content), &scene); err != nil {
		return SceneDiffResult{Error: "parsing error: " + err.Error()}
	}

	return SceneDiffResult{Success: true, Scene: &scene}
}

// CreateDiffTemplate formats a single well-formed SEARCH/REPLACE block.
func CreateDiffTemplate(searchContent, replaceContent string) string {
	return diffapply.CreateDiffTemplate(searchContent, replaceContent)
}

// CheckNodeCode parses a node's executeCode as JavaScript and reports the
// first syntax error. The structural check accepts any string; callers
// that want runnable nodes use this as an additional gate.
func CheckNodeCode(ctx context.Context, node types.NodeDefinition) error {
	return schema.CheckExecuteCode(ctx, node.ExecuteCode)
}
