// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "encoding/json"

// NodePort describes one input or output handle of a node.
type NodePort struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// NodeParameter is a user-tunable parameter of a node.
type NodeParameter struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Default json.RawMessage `json:"default,omitempty"`
}

// NodeDefinition describes a node type in the catalog: its ports, its
// parameters, and the code executed when the node runs.
type NodeDefinition struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Inputs      []NodePort      `json:"inputs"`
	Outputs     []NodePort      `json:"outputs"`
	Parameters  []NodeParameter `json:"parameters"`
	ExecuteCode string          `json:"executeCode"`
}

// Position is a node's placement on the editor canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SceneNode is one node instance in a scene graph.
type SceneNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Position Position        `json:"position"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// SceneEdge connects an output handle of one node to an input handle
// of another.
type SceneEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Scene is a complete scene graph: nodes plus the edges wiring them.
type Scene struct {
	Nodes []SceneNode `json:"nodes"`
	Edges []SceneEdge `json:"edges"`
}
