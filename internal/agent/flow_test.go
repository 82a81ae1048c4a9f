// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodecanvas/scenepatch/pkg/patch"
	"github.com/nodecanvas/scenepatch/pkg/types"
)

// fakePrompter returns scripted responses in order and records the
// conversations it was sent.
type fakePrompter struct {
	responses     []string
	calls         int
	conversations [][]types.Message
}

func (f *fakePrompter) Generate(ctx context.Context, messages []types.Message) (<-chan string, <-chan *types.StreamResponse) {
	f.conversations = append(f.conversations, messages)

	response := ""
	if f.calls < len(f.responses) {
		response = f.responses[f.calls]
	}
	f.calls++

	tokenCh := make(chan string, 1)
	resultCh := make(chan *types.StreamResponse, 1)
	if response != "" {
		tokenCh <- response
	}
	close(tokenCh)
	resultCh <- &types.StreamResponse{
		FullText: response,
		Usage:    types.TokenUsage{InputTokens: 10, OutputTokens: 5},
	}
	return tokenCh, resultCh
}

func testNode() *types.NodeDefinition {
	return &types.NodeDefinition{
		Type:        "math-add",
		Name:        "Add",
		Description: "Adds two numbers",
		Inputs:      []types.NodePort{{ID: "a-in", Name: "A", Type: "number"}},
		Outputs:     []types.NodePort{{ID: "sum-out", Name: "Sum", Type: "number"}},
		Parameters:  []types.NodeParameter{},
		ExecuteCode: "return inputs.a + inputs.b;",
	}
}

const modifyNodeIntent = "next_action: modify_node\nreason: |\n  the user wants a node change"

func TestAgent_ModifyNode(t *testing.T) {
	prompter := &fakePrompter{responses: []string{
		modifyNodeIntent,
		patch.CreateDiffTemplate(`"name": "Add",`, `"name": "Sum",`),
	}}

	agent := New(prompter, Config{})
	var steps []types.StepEvent
	result, err := agent.Run(context.Background(), Request{
		UserQuery: "rename the node to Sum",
		Node:      testNode(),
	}, func(e types.StepEvent) { steps = append(steps, e) })

	require.NoError(t, err)
	assert.Equal(t, ActionModifyNode, result.Action)
	require.NotNil(t, result.Node)
	assert.Equal(t, "Sum", result.Node.Name)
	assert.Equal(t, 0, result.Retries)
	assert.Equal(t, 30, result.Usage.Total())

	// The emitter saw the intent step and the applied step.
	var stepNames []string
	for _, s := range steps {
		stepNames = append(stepNames, s.Step)
	}
	assert.Contains(t, stepNames, "intent_recognition")
	assert.Contains(t, stepNames, "modify_node")
}

func TestAgent_ModifyNode_RetriesWithDiagnostics(t *testing.T) {
	badDiff := patch.CreateDiffTemplate("this search text matches nothing in the node", "x")
	goodDiff := patch.CreateDiffTemplate(`"name": "Add",`, `"name": "Renamed",`)

	prompter := &fakePrompter{responses: []string{modifyNodeIntent, badDiff, goodDiff}}

	agent := New(prompter, Config{})
	result, err := agent.Run(context.Background(), Request{
		UserQuery: "rename it",
		Node:      testNode(),
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Retries)
	assert.Equal(t, "Renamed", result.Node.Name)

	// The retry conversation carries the failure and the document.
	require.Len(t, prompter.conversations, 3)
	retryConv := prompter.conversations[2]
	require.Len(t, retryConv, 3)
	assert.Equal(t, types.RoleAssistant, retryConv[1].Role)
	assert.Contains(t, retryConv[2].Content, "could not be applied")
	assert.Contains(t, retryConv[2].Content, "## Current document")
}

func TestAgent_ModifyNode_ExhaustsRetries(t *testing.T) {
	badDiff := patch.CreateDiffTemplate("matches nothing at all in the document", "x")

	prompter := &fakePrompter{responses: []string{
		modifyNodeIntent, badDiff, badDiff, badDiff,
	}}

	agent := New(prompter, Config{MaxRetries: 2})
	result, err := agent.Run(context.Background(), Request{
		UserQuery: "rename it",
		Node:      testNode(),
	}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Nil(t, result.Node)
}

func TestAgent_ModifyNode_RequiresNode(t *testing.T) {
	prompter := &fakePrompter{responses: []string{modifyNodeIntent}}

	agent := New(prompter, Config{})
	_, err := agent.Run(context.Background(), Request{UserQuery: "rename it"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a node")
}

func TestAgent_ModifyScene(t *testing.T) {
	scene := &types.Scene{
		Nodes: []types.SceneNode{
			{ID: "cube-1", Type: "box-geometry", Position: types.Position{X: 0, Y: 0}},
		},
		Edges: []types.SceneEdge{},
	}

	prompter := &fakePrompter{responses: []string{
		"next_action: modify_scene\nreason: |\n  scene change",
		patch.CreateDiffTemplate(`"type": "box-geometry",`, `"type": "sphere-geometry",`),
	}}

	agent := New(prompter, Config{Catalog: "sphere-geometry: a sphere"})
	result, err := agent.Run(context.Background(), Request{
		UserQuery: "make the cube a sphere",
		Scene:     scene,
	}, nil)

	require.NoError(t, err)
	require.NotNil(t, result.Scene)
	assert.Equal(t, "sphere-geometry", result.Scene.Nodes[0].Type)

	// The catalog was injected into the scene prompt.
	assert.Contains(t, prompter.conversations[1][0].Content, "sphere-geometry: a sphere")
}

func TestAgent_Chat(t *testing.T) {
	prompter := &fakePrompter{responses: []string{
		"next_action: chat\nreason: |\n  general question",
		"I can modify scenes and nodes for you.",
	}}

	agent := New(prompter, Config{})
	result, err := agent.Run(context.Background(), Request{UserQuery: "what can you do?"}, nil)

	require.NoError(t, err)
	assert.Equal(t, ActionChat, result.Action)
	assert.Equal(t, "I can modify scenes and nodes for you.", result.Reply)
}

func TestAgent_GenerateNotSupported(t *testing.T) {
	prompter := &fakePrompter{responses: []string{
		"next_action: generate_scene\nreason: |\n  new scene",
	}}

	agent := New(prompter, Config{})
	_, err := agent.Run(context.Background(), Request{UserQuery: "build a city"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}
