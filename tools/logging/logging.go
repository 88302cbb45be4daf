package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zklapow/cni-multi/types"
)

const (
	EnvLogPath  = "CNI_MULTI_LOG_PATH"
	EnvLogLevel = "CNI_MULTI_LOG_LEVEL"

	DefaultLogPath  = "/tmp/log/cni-multi.log"
	DefaultLogLevel = "info"
)

// Options selects where and how verbosely the plugin logs. Stdout belongs to
// the CNI protocol, so Path must name a file or "stderr".
type Options struct {
	Path  string
	Level string
}

// WithEnv returns o with the CNI_MULTI_LOG_* overrides applied.
func (o Options) WithEnv(lookup types.LookupEnvFunc) Options {
	if path, ok := lookup(EnvLogPath); ok && path != "" {
		o.Path = path
	}
	if level, ok := lookup(EnvLogLevel); ok && level != "" {
		o.Level = level
	}
	return o
}

// New builds the logger. It falls back to stderr when the log file cannot be
// opened, and to the info level when Level is not a zap level.
func New(o Options) *zap.Logger {
	level, err := zapcore.ParseLevel(o.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.ErrorOutputPaths = []string{"stderr"}

	path := o.Path
	if path == "" {
		path = "stderr"
	}
	if path != "stderr" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			path = "stderr"
		}
	}
	config.OutputPaths = []string{path}

	logger, err := config.Build()
	if err != nil && path != "stderr" {
		config.OutputPaths = []string{"stderr"}
		logger, err = config.Build()
	}
	if err != nil {
		return zap.NewNop()
	}

	if o.Path != "" && path != o.Path {
		logger.Warn("Log file unavailable, logging to stderr", zap.String("path", o.Path))
	}
	return logger
}
