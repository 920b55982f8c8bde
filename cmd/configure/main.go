package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stormnotes/suite/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "storm-notes-configure",
		Short: "Configuration tool for the Storm Notes suite",
		Long:  "CLI tool for inspecting configuration and smoke-testing the AI and email integrations",
	}

	rootCmd.AddCommand(commands.NewShowCmd())
	rootCmd.AddCommand(commands.NewTestAICmd())
	rootCmd.AddCommand(commands.NewTestEmailCmd())
	rootCmd.AddCommand(commands.NewCacheCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
