package daemon

import (
	"context"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/facetrack/internal/logger"
)

// findProcess returns the pid of the first process whose executable is name.
func findProcess(name string) (int, bool, error) {
	processList, err := ps.Processes()
	if err != nil {
		return 0, false, err
	}

	for _, process := range processList {
		if strings.EqualFold(process.Executable(), name) {
			return process.Pid(), true, nil
		}
	}

	return 0, false, nil
}

// logProducerHint tells the operator whether the producer is running at all.
func logProducerHint(ctx context.Context, name string) {
	if name == "" {
		return
	}

	pid, found, err := findProcess(name)

	switch {
	case err != nil:
		logger.DebugKV(ctx, "Unable to list processes", "error", err)
	case found:
		logger.WarnKV(ctx, "Producer is running but has not created the tracking channel, check that face tracking is enabled",
			"process", name,
			"pid", pid)
	default:
		logger.WarnKV(ctx, "Producer is not running, start it and restart facetrackd",
			"process", name)
	}
}
