package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/facetrack/internal/config"
	"github.com/oshokin/facetrack/internal/service/emulator"
	"github.com/oshokin/facetrack/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// rootCmd represents the base command for running the synthetic producer.
	rootCmd = &cobra.Command{
		Use:   "facetrack-emulator [osc-address]",
		Short: "Publish synthetic tracking data from OSC avatar parameters.",
		Long: `Creates the shared tracking state and publishes a fully valid record every
interval, built from the face tracking avatar parameters received over OSC.

Use it to drive facetrackd without a headset. Only one emulator may publish to a
given shared state at a time. OSC address can be provided as argument to override
config (e.g., 127.0.0.1:9000).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var oscAddress string
			if len(args) > 0 {
				oscAddress = args[0]
			}

			return emulator.Run(ctx, &emulator.Options{
				ConfigPath: configPath,
				OSCAddress: oscAddress,
			})
		},
	}
)

// Execute runs the facetrack-emulator CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
}
