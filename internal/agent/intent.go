// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package agent orchestrates the AI editing flow: classify the user's
// intent, prompt the model for a patch, apply it, and retry with
// diagnostics when application fails.
package agent

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// Known next actions the intent classifier may select.
const (
	ActionModifyScene   = "modify_scene"
	ActionModifyNode    = "modify_node"
	ActionGenerateScene = "generate_scene"
	ActionGenerateNode  = "generate_node"
	ActionChat          = "chat"
)

// Intent is the classifier's decision, parsed from its YAML response.
type Intent struct {
	NextAction string `yaml:"next_action"`
	Reason     string `yaml:"reason"`
}

// ParseIntent extracts the intent from a model response. The response is
// expected to be YAML, possibly wrapped in a markdown fence. An
// unrecognized action falls back to chat rather than failing the job.
func ParseIntent(response string) (Intent, error) {
	cleaned := StripMarkdownFences(response)
	// Models sometimes escape newlines inside the YAML block scalar.
	cleaned = strings.ReplaceAll(cleaned, "\\n", "\n")

	var intent Intent
	if err := yaml.Unmarshal([]byte(cleaned), &intent); err != nil {
		return Intent{}, fmt.Errorf("parsing intent response: %w", err)
	}
	if intent.NextAction == "" {
		return Intent{}, fmt.Errorf("intent response has no next_action")
	}

	switch intent.NextAction {
	case ActionModifyScene, ActionModifyNode, ActionGenerateScene, ActionGenerateNode, ActionChat:
	default:
		intent.NextAction = ActionChat
	}

	return intent, nil
}

// StripMarkdownFences removes a wrapping ```lang ... ``` fence, which
// models add despite instructions not to.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = ""
		}
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}

	return strings.TrimSpace(s)
}
