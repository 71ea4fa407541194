package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/facetrack/internal/channel"
	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/logger"
)

// Config holds the settings shared by the facetrack binaries.
type Config struct {
	// Channel locates the shared tracking state.
	Channel ChannelConfig `yaml:"channel" envPrefix:"CHANNEL_"`
	// Ingest tunes the background ingest loop.
	Ingest IngestConfig `yaml:"ingest" envPrefix:"INGEST_"`
	// Frame tunes the daemon's per-frame consumer.
	Frame FrameConfig `yaml:"frame" envPrefix:"FRAME_"`
	// Mapper selects the avatar mapper behavior.
	Mapper MapperConfig `yaml:"mapper" envPrefix:"MAPPER_"`
	// Multipliers are the initial runtime multipliers.
	Multipliers face.Multipliers `yaml:"multipliers" envPrefix:"MULTIPLIERS_"`
	// Telemetry configures the gRPC telemetry service.
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`
	// Emulator configures the synthetic producer.
	Emulator EmulatorConfig `yaml:"emulator" envPrefix:"EMULATOR_"`
	// ProducerProcess is the process name of the real producer, used for diagnostics.
	ProducerProcess string `yaml:"producer_process" env:"PRODUCER_PROCESS"`
	// LogLevel is the minimum logging level.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// ChannelConfig locates the shared segment and signal.
type ChannelConfig struct {
	// Dir is the directory holding the named objects.
	Dir string `yaml:"dir" env:"DIR"`
	// SegmentName is the name of the state segment.
	SegmentName string `yaml:"segment_name" env:"SEGMENT_NAME"`
	// SignalName is the name of the update signal.
	SignalName string `yaml:"signal_name" env:"SIGNAL_NAME"`
	// OpenAttempts bounds the attach attempts at startup.
	OpenAttempts int `yaml:"open_attempts" env:"OPEN_ATTEMPTS"`
	// RetryInterval is the pause between two attach attempts.
	RetryInterval time.Duration `yaml:"retry_interval" env:"RETRY_INTERVAL"`
	// WaitTimeout bounds a single wait for a producer signal.
	WaitTimeout time.Duration `yaml:"wait_timeout" env:"WAIT_TIMEOUT"`
}

// IngestConfig tunes the ingest loop.
type IngestConfig struct {
	// JoinTimeout bounds how long shutdown waits for the loop.
	JoinTimeout time.Duration `yaml:"join_timeout" env:"JOIN_TIMEOUT"`
}

// FrameConfig tunes the per-frame consumer.
type FrameConfig struct {
	// Interval is the host frame cadence.
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
}

// MapperConfig selects the avatar mapper behavior.
type MapperConfig struct {
	// LegacyRightEyeRotation reuses the left eye x/y/z for the right eye rotation.
	LegacyRightEyeRotation bool `yaml:"legacy_right_eye_rotation" env:"LEGACY_RIGHT_EYE_ROTATION"`
}

// TelemetryConfig configures the telemetry service and its clients.
type TelemetryConfig struct {
	// ListenAddress is the gRPC address of the telemetry service.
	ListenAddress string `yaml:"listen_address" env:"LISTEN_ADDRESS"`
	// MultipliersFile stores the operator-tuned multipliers.
	MultipliersFile string `yaml:"multipliers_file" env:"MULTIPLIERS_FILE"`
	// Timeout bounds client calls.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// EmulatorConfig configures the synthetic producer.
type EmulatorConfig struct {
	// OSCAddress is the UDP address the OSC listener binds.
	OSCAddress string `yaml:"osc_address" env:"OSC_ADDRESS"`
	// Interval is the publishing cadence.
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
	// Warmup is the delay before the first record.
	Warmup time.Duration `yaml:"warmup" env:"WARMUP"`
	// LockFile guards against two emulators writing the same segment.
	LockFile string `yaml:"lock_file" env:"LOCK_FILE"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "facetrack-settings.yaml"

	// DefaultMultipliersFilename is the default filename for tuned multipliers.
	DefaultMultipliersFilename = "facetrack-multipliers.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FACETRACK_"

	// DefaultTimeout is the default duration for telemetry calls.
	DefaultTimeout = 5 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Defaults of the shared channel, matching the producer.
const (
	DefaultChannelDir      = "/dev/shm"
	DefaultSegmentName     = "WiVRn.BodyState"
	DefaultSignalName      = "WiVRn.BodyStateEvent"
	DefaultOpenAttempts    = 50
	DefaultRetryInterval   = 100 * time.Millisecond
	DefaultWaitTimeout     = 50 * time.Millisecond
	DefaultJoinTimeout     = time.Second
	DefaultFrameInterval   = time.Second / 90
	DefaultListenAddress   = "127.0.0.1:50071"
	DefaultOSCAddress      = "127.0.0.1:9000"
	DefaultEmulatorTick    = 20 * time.Millisecond
	DefaultEmulatorWarmup  = time.Second
	DefaultProducerProcess = "wivrn-server"
	DefaultLogLevel        = "info"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeAttempts is returned when open attempts are negative.
	errNegativeAttempts = errors.New("open attempts must not be negative")
	// errUnknownLogLevel is returned for an unrecognized log level.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Channel: ChannelConfig{
			Dir:           DefaultChannelDir,
			SegmentName:   DefaultSegmentName,
			SignalName:    DefaultSignalName,
			OpenAttempts:  DefaultOpenAttempts,
			RetryInterval: DefaultRetryInterval,
			WaitTimeout:   DefaultWaitTimeout,
		},
		Ingest:      IngestConfig{JoinTimeout: DefaultJoinTimeout},
		Frame:       FrameConfig{Interval: DefaultFrameInterval},
		Mapper:      MapperConfig{LegacyRightEyeRotation: true},
		Multipliers: face.DefaultMultipliers(),
		Telemetry: TelemetryConfig{
			ListenAddress:   DefaultListenAddress,
			MultipliersFile: DefaultMultipliersFilename,
			Timeout:         DefaultTimeout,
		},
		Emulator: EmulatorConfig{
			OSCAddress: DefaultOSCAddress,
			Interval:   DefaultEmulatorTick,
			Warmup:     DefaultEmulatorWarmup,
		},
		ProducerProcess: DefaultProducerProcess,
		LogLevel:        DefaultLogLevel,
	}
}

// Load reads configuration from path, applies FACETRACK_* environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills unset fields with defaults and rejects malformed ones.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	validateChannel(&cfg.Channel)

	if cfg.Channel.OpenAttempts < 0 {
		return errNegativeAttempts
	}

	if cfg.Ingest.JoinTimeout <= 0 {
		cfg.Ingest.JoinTimeout = DefaultJoinTimeout
	}

	if cfg.Frame.Interval <= 0 {
		cfg.Frame.Interval = DefaultFrameInterval
	}

	if err := cfg.Multipliers.Validate(); err != nil {
		return fmt.Errorf("invalid multipliers: %w", err)
	}

	if err := validateTelemetry(&cfg.Telemetry); err != nil {
		return err
	}

	if err := validateEmulator(&cfg.Emulator, cfg.Channel.SegmentName); err != nil {
		return err
	}

	if cfg.ProducerProcess == "" {
		cfg.ProducerProcess = DefaultProducerProcess
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	return nil
}

func validateChannel(c *ChannelConfig) {
	if c.Dir == "" {
		c.Dir = DefaultChannelDir
	}

	if c.SegmentName == "" {
		c.SegmentName = DefaultSegmentName
	}

	if c.SignalName == "" {
		c.SignalName = DefaultSignalName
	}

	if c.OpenAttempts == 0 {
		c.OpenAttempts = DefaultOpenAttempts
	}

	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultRetryInterval
	}

	if c.WaitTimeout <= 0 {
		c.WaitTimeout = DefaultWaitTimeout
	}
}

func validateTelemetry(t *TelemetryConfig) error {
	if t.ListenAddress == "" {
		t.ListenAddress = DefaultListenAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", t.ListenAddress); err != nil {
		return fmt.Errorf("invalid telemetry listen address: %w", err)
	}

	if t.MultipliersFile == "" {
		t.MultipliersFile = DefaultMultipliersFilename
	}

	if t.Timeout <= 0 {
		t.Timeout = DefaultTimeout
	}

	return nil
}

func validateEmulator(e *EmulatorConfig, segmentName string) error {
	if e.OSCAddress == "" {
		e.OSCAddress = DefaultOSCAddress
	}

	if _, err := net.ResolveUDPAddr("udp", e.OSCAddress); err != nil {
		return fmt.Errorf("invalid osc address: %w", err)
	}

	if e.Interval <= 0 {
		e.Interval = DefaultEmulatorTick
	}

	if e.Warmup < 0 {
		e.Warmup = DefaultEmulatorWarmup
	}

	if e.LockFile == "" {
		e.LockFile = filepath.Join(os.TempDir(), segmentName+".emulator.lock")
	}

	return nil
}

// ChannelSettings converts the settings into the channel package's config.
func (c *Config) ChannelSettings() channel.Config {
	return channel.Config{
		Dir:           c.Channel.Dir,
		SegmentName:   c.Channel.SegmentName,
		SignalName:    c.Channel.SignalName,
		MaxAttempts:   c.Channel.OpenAttempts,
		RetryInterval: c.Channel.RetryInterval,
	}
}
