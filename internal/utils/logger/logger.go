package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.SugaredLogger

// Init sets the process-wide Zap logger once, from the CLI's logging hook.
func Init(z *zap.SugaredLogger) { global = z }

// InitWithLevel builds a console logger at the given level ("debug",
// "info", "warn", "error") and installs it as the global logger.
func InitWithLevel(level string) error {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.DisableStacktrace = true

	z, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	Init(z.Sugar())
	return nil
}

// Logger returns the global sugared logger. It must return a non-nil
// *SugaredLogger, so callers before Init get a no-op logger.
func Logger() *zap.SugaredLogger {
	if global == nil {
		return zap.NewNop().Sugar()
	}
	return global
}
