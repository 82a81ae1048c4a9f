// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nodecanvas/scenepatch/internal/llm"
	"github.com/nodecanvas/scenepatch/pkg/patch"
	"github.com/nodecanvas/scenepatch/pkg/types"
)

const defaultMaxRetries = 3

// Prompter abstracts LLM interactions so the agent is testable.
type Prompter interface {
	Generate(ctx context.Context, messages []types.Message) (<-chan string, <-chan *types.StreamResponse)
}

// Emitter receives step events as a job progresses. It may be nil.
type Emitter func(types.StepEvent)

// Config configures an Agent.
type Config struct {
	MaxRetries     int     // Patch regeneration attempts (default 3)
	FuzzyThreshold float64 // Similarity threshold used for diagnostics (default 0.8)
	Catalog        string  // Node catalog injected into scene prompts
	Guidelines     string  // Scene construction guidelines
}

// Request is one editing job: the user's query plus the document it
// targets. Node and Scene are optional; the classified intent decides
// which one is needed.
type Request struct {
	UserQuery string
	Node      *types.NodeDefinition
	Scene     *types.Scene
}

// Result is the outcome of a completed job.
type Result struct {
	Action  string                // The classified next action
	Node    *types.NodeDefinition // Set for modify_node jobs
	Scene   *types.Scene          // Set for modify_scene jobs
	Reply   string                // Set for chat jobs
	Retries int                   // Patch regeneration attempts used
	Usage   types.TokenUsage      // Cumulative token usage for the job
}

// Agent runs editing jobs against a Prompter.
type Agent struct {
	prompter Prompter
	cfg      Config
}

// New creates an Agent, filling zero config fields with defaults.
func New(prompter Prompter, cfg Config) *Agent {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.FuzzyThreshold == 0 {
		cfg.FuzzyThreshold = patch.DefaultFuzzyThreshold
	}
	return &Agent{prompter: prompter, cfg: cfg}
}

// Run executes one job: classify the intent, then dispatch to the
// matching flow.
func (a *Agent) Run(ctx context.Context, req Request, emit Emitter) (*Result, error) {
	result := &Result{}

	emitStep(emit, "thinking", "Starting intent recognition for user query:\n"+req.UserQuery)

	intentPrompt, err := llm.RenderIntentPrompt(llm.IntentData{UserQuery: req.UserQuery})
	if err != nil {
		return result, err
	}

	response, err := a.generate(ctx, result, nil, []types.Message{
		{Role: types.RoleUser, Content: intentPrompt},
	})
	if err != nil {
		return result, err
	}

	intent, err := ParseIntent(response)
	if err != nil {
		return result, err
	}
	result.Action = intent.NextAction
	emitStep(emit, "intent_recognition", "next_action: "+intent.NextAction)

	switch intent.NextAction {
	case ActionModifyNode:
		err = a.modifyNode(ctx, req, result, emit)
	case ActionModifyScene:
		err = a.modifyScene(ctx, req, result, emit)
	case ActionGenerateNode, ActionGenerateScene:
		// Generation from scratch goes through a different pipeline;
		// this agent only patches existing documents.
		err = fmt.Errorf("action %s is not supported; ask for a modification of an existing document", intent.NextAction)
	default:
		err = a.chat(ctx, req, result, emit)
	}

	return result, err
}

// modifyNode prompts for a patch against the node definition, applies
// it, and retries with diagnostics until it applies cleanly or retries
// are exhausted.
func (a *Agent) modifyNode(ctx context.Context, req Request, result *Result, emit Emitter) error {
	if req.Node == nil {
		return fmt.Errorf("modify_node requires a node in the request")
	}

	nodeJSON, err := json.MarshalIndent(req.Node, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing node: %w", err)
	}

	prompt, err := llm.RenderModifyNodePrompt(llm.ModifyNodeData{
		Description: req.UserQuery,
		NodeJSON:    string(nodeJSON),
	})
	if err != nil {
		return err
	}

	emitStep(emit, "modify_node", "Modifying node execution started")

	messages := []types.Message{{Role: types.RoleUser, Content: prompt}}
	var lastErr string

	for attempt := 0; attempt <= a.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt > 0 {
			result.Retries++
		}

		response, err := a.generate(ctx, result, tokenEmitter(emit, "modify_node"), messages)
		if err != nil {
			return err
		}

		diffText := StripMarkdownFences(response)
		applied := patch.ApplyNodeDiff(*req.Node, diffText)
		if applied.Success {
			if err := patch.CheckNodeCode(ctx, *applied.Node); err != nil {
				lastErr = err.Error()
			} else {
				result.Node = applied.Node
				emitStep(emit, "modify_node", "Patch applied")
				return nil
			}
		} else {
			lastErr = applied.Error
		}

		emitStep(emit, "modify_node", "Patch failed: "+lastErr)
		messages = append(messages,
			types.Message{Role: types.RoleAssistant, Content: response},
			types.Message{Role: types.RoleUser, Content: formatRetryPrompt(string(nodeJSON), diffText, lastErr, a.cfg.FuzzyThreshold)},
		)
	}

	return fmt.Errorf("patch failed after %d retries: %s", a.cfg.MaxRetries, lastErr)
}

// modifyScene is the scene counterpart of modifyNode.
func (a *Agent) modifyScene(ctx context.Context, req Request, result *Result, emit Emitter) error {
	if req.Scene == nil {
		return fmt.Errorf("modify_scene requires a scene in the request")
	}

	sceneJSON, err := json.MarshalIndent(req.Scene, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing scene: %w", err)
	}

	prompt, err := llm.RenderModifyScenePrompt(llm.ModifySceneData{
		Description: req.UserQuery,
		SceneJSON:   string(sceneJSON),
		Catalog:     a.cfg.Catalog,
		Guidelines:  a.cfg.Guidelines,
	})
	if err != nil {
		return err
	}

	emitStep(emit, "modify_scene", "Modifying scene execution started")

	messages := []types.Message{{Role: types.RoleUser, Content: prompt}}
	var lastErr string

	for attempt := 0; attempt <= a.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt > 0 {
			result.Retries++
		}

		response, err := a.generate(ctx, result, tokenEmitter(emit, "modify_scene"), messages)
		if err != nil {
			return err
		}

		diffText := StripMarkdownFences(response)
		applied := patch.ApplySceneDiff(*req.Scene, diffText)
		if applied.Success {
			result.Scene = applied.Scene
			emitStep(emit, "modify_scene", "Patch applied")
			return nil
		}
		lastErr = applied.Error

		emitStep(emit, "modify_scene", "Patch failed: "+lastErr)
		messages = append(messages,
			types.Message{Role: types.RoleAssistant, Content: response},
			types.Message{Role: types.RoleUser, Content: formatRetryPrompt(string(sceneJSON), diffText, lastErr, a.cfg.FuzzyThreshold)},
		)
	}

	return fmt.Errorf("patch failed after %d retries: %s", a.cfg.MaxRetries, lastErr)
}

// chat answers a general question, streaming tokens to the emitter.
func (a *Agent) chat(ctx context.Context, req Request, result *Result, emit Emitter) error {
	prompt, err := llm.RenderChatPrompt(llm.ChatData{UserQuery: req.UserQuery})
	if err != nil {
		return err
	}

	response, err := a.generate(ctx, result, tokenEmitter(emit, "chat"), []types.Message{
		{Role: types.RoleUser, Content: prompt},
	})
	if err != nil {
		return err
	}

	result.Reply = response
	return nil
}

// generate sends a conversation to the prompter, forwards tokens to
// onToken, accumulates usage into the result, and returns the full text.
func (a *Agent) generate(ctx context.Context, result *Result, onToken func(string), messages []types.Message) (string, error) {
	tokenCh, resultCh := a.prompter.Generate(ctx, messages)

	for token := range tokenCh {
		if onToken != nil {
			onToken(token)
		}
	}

	response := <-resultCh
	if response == nil || response.FullText == "" {
		return "", fmt.Errorf("LLM returned an empty response")
	}

	result.Usage.InputTokens += response.Usage.InputTokens
	result.Usage.OutputTokens += response.Usage.OutputTokens

	return response.FullText, nil
}

func emitStep(emit Emitter, step, content string) {
	if emit != nil {
		emit(types.StepEvent{Step: step, Content: content})
	}
}

// tokenEmitter adapts an Emitter into a per-token callback for one step.
func tokenEmitter(emit Emitter, step string) func(string) {
	if emit == nil {
		return nil
	}
	return func(token string) {
		emit(types.StepEvent{Step: step, Content: token})
	}
}
