package ctl

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/oshokin/facetrack/internal/logger"
	"github.com/oshokin/facetrack/internal/service/common"
)

// TuneOptions configures the tune command.
type TuneOptions struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// Address overrides the telemetry address from config when specified.
	Address string
	// Values holds the multipliers to change, keyed by payload name.
	Values map[string]float32
}

// Tune changes the given multipliers on the daemon and prints the result.
func Tune(ctx context.Context, opts *TuneOptions, out io.Writer) error {
	ctx = logger.WithName(ctx, "facetrackctl")

	actor, err := common.DetectActor()
	if err != nil {
		return err
	}

	client, err := dial(ctx, opts.ConfigPath, opts.Address)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	record, err := client.SetMultipliers(ctx, actor, opts.Values)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Multipliers updated", "values", formatValues(opts.Values))

	_, err = fmt.Fprintln(out, renderTable("Multipliers", []string{"Multiplier", "Value"}, multipliersRows(record)))

	return err
}

func formatValues(values map[string]float32) string {
	parts := make([]string, 0, len(values))
	for _, name := range slices.Sorted(maps.Keys(values)) {
		parts = append(parts, name+"="+formatFloat(values[name]))
	}

	return strings.Join(parts, " ")
}
