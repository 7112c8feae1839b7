package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contable",
	Short: "Contable prepares and hosts the Agente Contable backend",
	Long: `Contable checks the environment the Agente Contable backend needs, prepares its
configuration and launches it. When the AI backend cannot run it serves a minimal
API with canned answers so the frontend keeps working.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Backend project directory")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}
