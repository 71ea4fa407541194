package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/facetrack/internal/config"
	"github.com/oshokin/facetrack/internal/service/daemon"
	"github.com/oshokin/facetrack/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// multipliersFile path where tuned multipliers are persisted.
	multipliersFile string

	// rootCmd represents the base command for running the tracking bridge.
	rootCmd = &cobra.Command{
		Use:   "facetrackd [listen-address]",
		Short: "Bridge headset face and eye tracking into avatar parameters.",
		Long: `Attaches to the shared tracking state published by the headset producer,
normalizes every update and maps it into eye gaze and mouth parameters once per frame.

If the producer has not created the shared state after the configured number of
attempts, face and eye tracking stays disabled and only telemetry is served.
The telemetry gRPC service reports the last mapped frame and lets operators tune
the runtime multipliers; its health status is SERVING while the headset is tracking.
Listen address can be provided as argument to override config (e.g., 127.0.0.1:50071).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &daemon.Options{
				ConfigPath:      configPath,
				ListenAddress:   listenAddress,
				MultipliersFile: multipliersFile,
			}

			return daemon.Run(ctx, options)
		},
	}
)

// Execute runs the facetrackd CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&multipliersFile, "multipliers-file", "m", "", "path to persist tuned multipliers (overrides config)")
}
