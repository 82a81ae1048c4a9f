// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Command scenepatch applies SEARCH/REPLACE patches to node and scene
// documents and serves the editing agent over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "scenepatch",
		Short: "Fuzzy patch engine for node and scene documents",
		Long:  "scenepatch applies model-generated SEARCH/REPLACE patches to JSON node definitions and scene graphs, with fuzzy matching that tolerates whitespace and small drift.",
	}

	// Global flags.
	rootCmd.PersistentFlags().Float64("threshold", 0, "Similarity threshold for fuzzy matching (0 = default 0.8)")
	rootCmd.PersistentFlags().String("model", "", "Bedrock model ID")
	rootCmd.PersistentFlags().String("region", "", "AWS region for Bedrock")
	rootCmd.PersistentFlags().Int("max-retries", 3, "Maximum patch regeneration attempts")

	// Bind flags to viper.
	viper.BindPFlag("threshold", rootCmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	viper.BindPFlag("max-retries", rootCmd.PersistentFlags().Lookup("max-retries"))

	// Env vars: SCENEPATCH_MODEL, SCENEPATCH_REGION, etc.
	viper.SetEnvPrefix("SCENEPATCH")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".scenepatch")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print scenepatch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scenepatch %s\n", version)
		},
	}
}
