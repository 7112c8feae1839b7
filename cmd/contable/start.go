package main

import (
	"strconv"

	"github.com/aretw0/contable/internal/cli"
	"github.com/aretw0/contable/pkg/bootstrap"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Check the environment and launch the backend",
	Long: `Runs the pre-flight checks (interpreter, .env, dependencies, Azure credentials)
and launches the server declared in the manifest, or the built-in minimal API with
--minimal. Stops with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := startOptions(cmd)
		allow, err := degradedStart(cmd)
		if err != nil {
			return err
		}
		opts.AllowDegradedStart = allow
		opts.Minimal, _ = cmd.Flags().GetBool("minimal")
		opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Start(ctx, opts, cli.StdIO())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the pre-flight checks without launching",
	Long:  `Runs the interpreter, .env, dependency and credential checks and prints the outcome. Exits 1 if a fatal check failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := startOptions(cmd)
		jsonOut, _ := cmd.Flags().GetBool("json")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Check(ctx, opts, cli.StdIO(), jsonOut)
	},
}

func startOptions(cmd *cobra.Command) cli.StartOptions {
	dir, _ := cmd.Flags().GetString("dir")
	debug, _ := cmd.Flags().GetBool("debug")
	manifest, _ := cmd.Flags().GetString("manifest")
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")

	return cli.StartOptions{
		Dir:          dir,
		ManifestPath: manifest,
		Host:         host,
		Port:         port,
		Debug:        debug,
	}
}

// degradedStart reads --allow-degraded-start as a tri-state: absent means ask.
func degradedStart(cmd *cobra.Command) (bootstrap.OptionalBool, error) {
	if !cmd.Flags().Changed("allow-degraded-start") {
		return bootstrap.OptionalBool{}, nil
	}
	raw, _ := cmd.Flags().GetString("allow-degraded-start")
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return bootstrap.OptionalBool{}, err
	}
	return bootstrap.Set(v), nil
}

func init() {
	rootCmd.AddCommand(startCmd, checkCmd)

	for _, c := range []*cobra.Command{startCmd, checkCmd} {
		c.Flags().String("manifest", "", "Manifest file (default <dir>/contable.yaml)")
		c.Flags().String("host", "", "Host to bind (overrides the manifest)")
		c.Flags().IntP("port", "p", 0, "Port to bind (overrides the manifest)")
	}

	startCmd.Flags().String("allow-degraded-start", "", "Continue without Azure credentials (true) or abort (false) instead of asking")
	startCmd.Flags().Lookup("allow-degraded-start").NoOptDefVal = "true"
	startCmd.Flags().Bool("minimal", false, "Host the built-in minimal API instead of the manifest's server")
	startCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (built-in server only)")

	checkCmd.Flags().Bool("json", false, "Print the outcome as JSON")
}
