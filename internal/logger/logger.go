// Package logger holds the process-wide logger. Diagnostics go to stderr so
// that generated output owns stdout.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is a no-op until Init runs, so library code may log unconditionally.
var Log = zap.NewNop().Sugar()

// Init replaces Log with a real logger writing to stderr. verbose lowers the
// threshold to debug.
func Init(verbose bool) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l.Sugar()
	return nil
}

// Sync flushes any buffered entries. Called once on exit.
func Sync() {
	_ = Log.Sync()
}
