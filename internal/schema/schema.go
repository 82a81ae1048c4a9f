// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema validates the structural shape of node definitions and
// scene graphs produced by patching, before they are handed back to the
// editor. The checks are pure predicates over parsed JSON values.
package schema

// ValidateNodeStructure reports whether a parsed JSON value has the shape
// of a node definition: string type, name and description, array inputs,
// outputs and parameters, and string executeCode.
func ValidateNodeStructure(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return isString(obj["type"]) &&
		isString(obj["name"]) &&
		isString(obj["description"]) &&
		isArray(obj["inputs"]) &&
		isArray(obj["outputs"]) &&
		isArray(obj["parameters"]) &&
		isString(obj["executeCode"])
}

// ValidateSceneStructure reports whether a parsed JSON value has the shape
// of a scene graph: an object carrying nodes and edges arrays.
func ValidateSceneStructure(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return isArray(obj["nodes"]) && isArray(obj["edges"])
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}
