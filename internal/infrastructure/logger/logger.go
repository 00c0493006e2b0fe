// Package logger builds the zap loggers of the server and the migrate tool
// and carries request scoped fields through context.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config describes the process logger
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json or console
	Output     string // stdout, stderr or a file path
	TimeFormat string
}

// DefaultConfig logs info and above to stdout in console format
func DefaultConfig() *Config {
	return &Config{Level: "info", Format: "console", Output: "stdout", TimeFormat: defaultTimeFormat}
}

// New builds a logger from cfg
func New(cfg *Config) (*zap.Logger, error) {
	l, _, err := NewWithLevel(cfg)
	return l, err
}

// NewWithLevel also returns the level of the logger so it can be changed at runtime
func NewWithLevel(cfg *Config) (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	core, err := NewCore(cfg, level)
	if err != nil {
		return nil, level, err
	}
	return zap.New(core, Options()...), level, nil
}

// Options are the zap options every process logger is built with
func Options() []zap.Option {
	return []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
}

// NewCore opens cfg.Output and returns the core behind New, for teeing with
// other sinks such as the OTLP log exporter
func NewCore(cfg *Config, enabler zapcore.LevelEnabler) (zapcore.Core, error) {
	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	sink, _, err := zap.Open(output)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %q: %w", output, err)
	}
	return zapcore.NewCore(newEncoder(cfg), sink, enabler), nil
}

// ParseLevel maps a configured level name to a zap level. Unknown names log at info.
func ParseLevel(name string) zapcore.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func newEncoder(cfg *Config) zapcore.Encoder {
	layout := cfg.TimeFormat
	if layout == "" {
		layout = defaultTimeFormat
	}
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(layout)
	ec.EncodeDuration = zapcore.MillisDurationEncoder

	if strings.EqualFold(cfg.Format, "console") {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// Sync flushes buffered entries
func Sync(l *zap.Logger) error {
	return l.Sync()
}
