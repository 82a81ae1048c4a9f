// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIntentPrompt(t *testing.T) {
	out, err := RenderIntentPrompt(IntentData{UserQuery: "make the cube red"})
	require.NoError(t, err)

	assert.Contains(t, out, `user_query: "make the cube red"`)
	assert.Contains(t, out, "modify_scene")
	assert.Contains(t, out, "next_action")
}

func TestRenderModifyNodePrompt(t *testing.T) {
	out, err := RenderModifyNodePrompt(ModifyNodeData{
		Description: "rename the node",
		NodeJSON:    `{"type": "math-add"}`,
	})
	require.NoError(t, err)

	assert.Contains(t, out, "rename the node")
	assert.Contains(t, out, `{"type": "math-add"}`)
	assert.Contains(t, out, "<<<<<<< SEARCH")
	assert.Contains(t, out, ">>>>>>> REPLACE")
}

func TestRenderModifyScenePrompt(t *testing.T) {
	out, err := RenderModifyScenePrompt(ModifySceneData{
		Description: "add a sphere",
		SceneJSON:   `{"nodes": [], "edges": []}`,
		Catalog:     "sphere-geometry: a sphere",
		Guidelines:  "end with an output node",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "add a sphere")
	assert.Contains(t, out, "sphere-geometry: a sphere")
	assert.Contains(t, out, "end with an output node")
	assert.Contains(t, out, "<<<<<<< SEARCH")
}

func TestRenderChatPrompt(t *testing.T) {
	out, err := RenderChatPrompt(ChatData{UserQuery: "what can you do?"})
	require.NoError(t, err)
	assert.Contains(t, out, `user_query: "what can you do?"`)
}
