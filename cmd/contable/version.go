package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/contable"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of contable",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "contable version %s\n", strings.TrimSpace(contable.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
