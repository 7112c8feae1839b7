package main

import (
	httpadapter "github.com/aretw0/contable/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document of the minimal API",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(httpadapter.OpenAPISpec)
		return err
	},
}

func init() {
	rootCmd.AddCommand(openapiCmd)
}
