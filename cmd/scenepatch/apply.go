// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nodecanvas/scenepatch/pkg/patch"
	"github.com/nodecanvas/scenepatch/pkg/types"
)

// newApplyCmd creates the "apply" command.
func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a SEARCH/REPLACE patch to a document",
		Long:  "Apply reads a document and a patch file, applies the patch with fuzzy matching, and prints the result as JSON. With --kind node or --kind scene the patched document is also validated against the expected JSON shape.",
		RunE:  runApply,
	}

	cmd.Flags().StringP("input", "i", "", "Document file to patch (required)")
	cmd.Flags().StringP("diff", "d", "", "Patch file with SEARCH/REPLACE blocks (required)")
	cmd.Flags().StringP("kind", "k", "text", "Document kind: text, node, or scene")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("diff")

	return cmd
}

// runApply executes the apply command and prints the outcome as JSON.
// A failed patch exits non-zero after printing the structured error.
func runApply(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	diffPath, _ := cmd.Flags().GetString("diff")
	kind, _ := cmd.Flags().GetString("kind")

	document, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	diff, err := os.ReadFile(diffPath)
	if err != nil {
		return fmt.Errorf("reading patch: %w", err)
	}

	switch kind {
	case "text":
		result := patch.ApplyDiff(string(document), string(diff), viper.GetFloat64("threshold"))
		printJSON(result)
		if !result.Success {
			return fmt.Errorf("patch failed: %s", result.Error)
		}
	case "node":
		var node types.NodeDefinition
		if err := json.Unmarshal(document, &node); err != nil {
			return fmt.Errorf("parsing node document: %w", err)
		}
		result := patch.ApplyNodeDiff(node, string(diff))
		printJSON(result)
		if !result.Success {
			return fmt.Errorf("patch failed: %s", result.Error)
		}
	case "scene":
		var scene types.Scene
		if err := json.Unmarshal(document, &scene); err != nil {
			return fmt.Errorf("parsing scene document: %w", err)
		}
		result := patch.ApplySceneDiff(scene, string(diff))
		printJSON(result)
		if !result.Success {
			return fmt.Errorf("patch failed: %s", result.Error)
		}
	default:
		return fmt.Errorf("unknown kind %q: want text, node, or scene", kind)
	}

	return nil
}

// newTemplateCmd creates the "template" command.
func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print a well-formed SEARCH/REPLACE block",
		Long:  "Template reads search and replace content from two files and prints a patch block in the exact marker format the apply command expects.",
		RunE: func(cmd *cobra.Command, args []string) error {
			searchPath, _ := cmd.Flags().GetString("search")
			replacePath, _ := cmd.Flags().GetString("replace")

			search, err := os.ReadFile(searchPath)
			if err != nil {
				return fmt.Errorf("reading search content: %w", err)
			}
			replace, err := os.ReadFile(replacePath)
			if err != nil {
				return fmt.Errorf("reading replace content: %w", err)
			}

			fmt.Println(patch.CreateDiffTemplate(string(search), string(replace)))
			return nil
		},
	}

	cmd.Flags().String("search", "", "File with the content to find (required)")
	cmd.Flags().String("replace", "", "File with the content to substitute (required)")
	cmd.MarkFlagRequired("search")
	cmd.MarkFlagRequired("replace")

	return cmd
}

// printJSON outputs a result as indented JSON to stdout.
func printJSON(result any) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
