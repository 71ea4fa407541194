package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/facetrack/internal/config"
	pb "github.com/oshokin/facetrack/internal/pb/v1"
	"github.com/oshokin/facetrack/internal/service/ctl"
	"github.com/oshokin/facetrack/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// address overrides the telemetry address from config.
	address string
	// showAll lists zero-valued expressions too.
	showAll bool

	// multipliers holds the tune flag values keyed by payload name.
	multipliers = make(map[string]*float32, len(pb.MultiplierNames()))

	// errNoMultipliers is returned when tune is called without any multiplier flag.
	errNoMultipliers = errors.New("at least one multiplier flag must be set")

	// rootCmd represents the base command for inspecting the daemon.
	rootCmd = &cobra.Command{
		Use:   "facetrackctl",
		Short: "Inspect and tune a running facetrackd.",
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show tracking status, the last mapped frame and the multipliers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return ctl.Status(ctx, &ctl.StatusOptions{
				ConfigPath: configPath,
				Address:    address,
				All:        showAll,
			}, cmd.OutOrStdout())
		},
	}

	tuneCmd = &cobra.Command{
		Use:   "tune",
		Short: "Change the runtime multipliers.",
		Long: `Changes the multipliers applied by the avatar mapper. Only the multipliers
given as flags are changed; the daemon persists them across restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			values := make(map[string]float32, len(multipliers))
			for name, value := range multipliers {
				if cmd.Flags().Changed(flagName(name)) {
					values[name] = *value
				}
			}

			if len(values) == 0 {
				return errNoMultipliers
			}

			return ctl.Tune(ctx, &ctl.TuneOptions{
				ConfigPath: configPath,
				Address:    address,
				Values:     values,
			}, cmd.OutOrStdout())
		},
	}
)

// flagName turns a payload name such as wide_multiplier into wide-multiplier.
func flagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// Execute runs the facetrackctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&address, "address", "a", "", "telemetry address (overrides config)")

	statusCmd.Flags().BoolVar(&showAll, "all", false, "list every expression, including zeros")

	for _, name := range pb.MultiplierNames() {
		multipliers[name] = tuneCmd.Flags().Float32(flagName(name), 1, "set "+name)
	}

	rootCmd.AddCommand(statusCmd, tuneCmd)
}
