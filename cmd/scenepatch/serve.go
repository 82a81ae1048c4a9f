// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nodecanvas/scenepatch/internal/agent"
	"github.com/nodecanvas/scenepatch/internal/llm"
	"github.com/nodecanvas/scenepatch/internal/server"
)

// newServeCmd creates the "serve" command.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editing agent over HTTP",
		Long:  "Serve starts an HTTP server that accepts editing jobs and streams their progress as server-sent events. Requires Bedrock credentials in the environment.",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().StringSlice("api-key", nil, "Accepted bearer API keys (repeatable; empty disables auth)")
	cmd.Flags().String("catalog", "", "File with the node catalog injected into scene prompts")
	cmd.Flags().String("guidelines", "", "File with scene construction guidelines")

	viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	viper.BindPFlag("api-key", cmd.Flags().Lookup("api-key"))

	return cmd
}

// runServe wires the LLM client, agent, and HTTP server together and
// blocks until interrupted.
func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client, err := llm.NewClient(ctx, llm.ClientConfig{
		ModelID: viper.GetString("model"),
		Region:  viper.GetString("region"),
	})
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	catalog, err := readOptionalFile(cmd, "catalog")
	if err != nil {
		return err
	}
	guidelines, err := readOptionalFile(cmd, "guidelines")
	if err != nil {
		return err
	}

	editor := agent.New(client, agent.Config{
		MaxRetries:     viper.GetInt("max-retries"),
		FuzzyThreshold: viper.GetFloat64("threshold"),
		Catalog:        catalog,
		Guidelines:     guidelines,
	})

	srv := server.New(editor, server.Config{
		Addr:    viper.GetString("addr"),
		APIKeys: viper.GetStringSlice("api-key"),
	})

	fmt.Printf("scenepatch serving on %s\n", viper.GetString("addr"))
	return srv.Run(ctx)
}

// readOptionalFile reads the file named by a flag, or returns "" when
// the flag is unset.
func readOptionalFile(cmd *cobra.Command, flag string) (string, error) {
	path, _ := cmd.Flags().GetString(flag)
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s file: %w", flag, err)
	}
	return string(content), nil
}
