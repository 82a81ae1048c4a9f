// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// IntentData fills the intent classification prompt.
type IntentData struct {
	UserQuery string
}

// ModifyNodeData fills the node modification prompt.
type ModifyNodeData struct {
	Description string // What the user wants changed
	NodeJSON    string // Pretty-printed current node definition
}

// ModifySceneData fills the scene modification prompt.
type ModifySceneData struct {
	Description string // What the user wants changed
	SceneJSON   string // Pretty-printed current scene graph
	Catalog     string // Node catalog the model may draw from
	Guidelines  string // Scene construction guidelines
}

// ChatData fills the general conversation prompt.
type ChatData struct {
	UserQuery string
}

// RenderIntentPrompt renders the intent classification prompt.
func RenderIntentPrompt(data IntentData) (string, error) {
	return render("intent.tmpl", data)
}

// RenderModifyNodePrompt renders the node modification prompt, including
// the SEARCH/REPLACE patch format instructions.
func RenderModifyNodePrompt(data ModifyNodeData) (string, error) {
	return render("modify_node.tmpl", data)
}

// RenderModifyScenePrompt renders the scene modification prompt.
func RenderModifyScenePrompt(data ModifySceneData) (string, error) {
	return render("modify_scene.tmpl", data)
}

// RenderChatPrompt renders the fallback conversation prompt.
func RenderChatPrompt(data ChatData) (string, error) {
	return render("chat.tmpl", data)
}

func render(name string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.String(), nil
}
