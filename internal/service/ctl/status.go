package ctl

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/facetrack/internal/config"
	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/logger"
	pb "github.com/oshokin/facetrack/internal/pb/v1"
	"github.com/oshokin/facetrack/internal/service/common"
)

// StatusOptions configures the status command.
type StatusOptions struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// Address overrides the telemetry address from config when specified.
	Address string
	// All lists every expression, not only the non-zero ones.
	All bool
}

// Status prints the daemon's health, last frame and multipliers to out.
func Status(ctx context.Context, opts *StatusOptions, out io.Writer) error {
	ctx = logger.WithName(ctx, "facetrackctl")

	client, err := dial(ctx, opts.ConfigPath, opts.Address)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	serving, err := client.Status(ctx)
	if err != nil {
		return err
	}

	record, err := client.Multipliers(ctx)
	if err != nil {
		return err
	}

	snapshot, err := client.Snapshot(ctx)
	if err != nil && status.Code(err) != codes.Unavailable {
		return err
	}

	var sections []string

	overview := [][]string{{"serving", serving.String()}}
	if snapshot != nil {
		fields := snapshot.GetFields()
		overview = append(overview,
			[]string{"session", fields[pb.KeySessionID].GetStringValue()},
			[]string{"activity", fields[pb.KeyActivity].GetStringValue()},
			[]string{"frames", formatNumber(fields[pb.KeyFrames])},
			[]string{"seq", formatNumber(fields[pb.KeySeq])},
		)
	} else {
		overview = append(overview, []string{"activity", "no frames, tracking channel is not attached"})
	}

	sections = append(sections,
		renderTable("Daemon", []string{"Field", "Value"}, overview),
		renderTable("Multipliers", []string{"Multiplier", "Value"}, multipliersRows(record)),
	)

	if snapshot != nil {
		fields := snapshot.GetFields()
		sections = append(sections,
			renderTable("Eyes", []string{"Field", "Left", "Right", "Combined"}, eyeRows(fields[pb.KeyEyes].GetStructValue())),
			renderTable("Mouth", []string{"Channel", "Value"}, valueRows(fields[pb.KeyMouth].GetStructValue(), true)),
			renderTable("Expressions", []string{"Expression", "Value"}, valueRows(fields[pb.KeyExpressions].GetStructValue(), opts.All)),
		)
	}

	_, err = fmt.Fprintln(out, strings.Join(sections, "\n"))

	return err
}

// multipliersRows lists the multipliers and their audit data.
func multipliersRows(record *face.MultipliersRecord) [][]string {
	m := record.Multipliers
	rows := [][]string{
		{pb.OpennessExponent, formatFloat(m.OpennessExponent)},
		{pb.WideMultiplier, formatFloat(m.WideMultiplier)},
		{pb.MovementMultiplier, formatFloat(m.MovementMultiplier)},
		{pb.ExpressionMultiplier, formatFloat(m.ExpressionMultiplier)},
	}

	if !record.UpdatedAt.IsZero() {
		rows = append(rows, []string{"updated_at", record.UpdatedAt.Local().Format("2006-01-02 15:04:05")})
	}

	if record.Actor != nil {
		rows = append(rows, []string{"updated_by", record.Actor.Username + "@" + record.Actor.Hostname})
	}

	return rows
}

// eyeRows lays the eyes out one column per eye.
func eyeRows(eyes *structpb.Struct) [][]string {
	fields := eyes.GetFields()
	sides := []*structpb.Struct{
		fields["left"].GetStructValue(),
		fields["right"].GetStructValue(),
		fields["combined"].GetStructValue(),
	}

	rows := make([][]string, 0, len(pb.EyeFields())+1)
	for _, key := range pb.EyeFields() {
		row := []string{key}
		for _, side := range sides {
			row = append(row, formatValue(side.GetFields()[key]))
		}

		rows = append(rows, row)
	}

	return append(rows, []string{"active", formatValue(fields["active"]), "", ""})
}

// valueRows lists a flat Struct in key order, skipping zeros unless all is set.
func valueRows(s *structpb.Struct, all bool) [][]string {
	keys := pb.SortedKeys(s)
	rows := make([][]string, 0, len(keys))

	for _, key := range keys {
		value := s.GetFields()[key]
		if !all && value.GetNumberValue() == 0 {
			continue
		}

		rows = append(rows, []string{key, formatValue(value)})
	}

	return rows
}

func formatValue(v *structpb.Value) string {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', 4, 64)
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(kind.BoolValue)
	case *structpb.Value_StringValue:
		return kind.StringValue
	default:
		return ""
	}
}

func formatNumber(v *structpb.Value) string {
	return strconv.FormatFloat(v.GetNumberValue(), 'f', 0, 64)
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// dial connects to the daemon named by the settings or the override.
func dial(ctx context.Context, configPath, address string) (*common.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if address == "" {
		address = cfg.Telemetry.ListenAddress
	}

	return common.Dial(ctx, address, common.WithCallTimeout(cfg.Telemetry.Timeout))
}
