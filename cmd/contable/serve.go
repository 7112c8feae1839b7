package main

import (
	"github.com/aretw0/contable/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the minimal HTTP API",
	Long: `Serves the minimal-mode API (GET /, POST /process-invoice/, POST /chat-json/)
without running the pre-flight checks. One request is handled at a time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		debug, _ := cmd.Flags().GetBool("debug")
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
		envFile, _ := cmd.Flags().GetString("env-file")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Serve(ctx, cli.ServeOptions{
			Dir:         dir,
			EnvFile:     envFile,
			Host:        host,
			Port:        port,
			MetricsAddr: metricsAddr,
			Debug:       debug,
		}, cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "127.0.0.1", "Host to bind")
	serveCmd.Flags().IntP("port", "p", 8000, "Port to listen on")
	serveCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")
	serveCmd.Flags().String("env-file", ".env", "Env file read for the Azure credentials, relative to --dir")
}
