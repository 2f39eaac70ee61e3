// Package logger provides verbose logging for the docdesk CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow requests to the document API.
// When a log file is configured, info and above are also written there as
// JSON, rotated by size.
package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.RWMutex
	verbose atomic.Bool
	output  zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	file    *lumberjack.Logger
	base    = build()
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return verbose.Load()
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = zapcore.Lock(zapcore.AddSync(w))
	base = build()
}

// SetFile starts writing logs to a rotating file at path.
// An empty path stops file logging.
func SetFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		if err := file.Close(); err != nil {
			return err
		}
		file = nil
	}
	if path != "" {
		file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
	}
	base = build()
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	_ = base.Sync()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	base = build()
	return err
}

// L returns the structured logger for callers that log fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	L().Sugar().Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	L().Sugar().Debugf("=== %s ===", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	L().Sugar().Infof(format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	L().Sugar().Warnf(format, args...)
}

// build assembles the cores. Callers hold mu.
func build() *zap.Logger {
	consoleCfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      bracketLevel,
		ConsoleSeparator: " ",
	}
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			output,
			zap.LevelEnablerFunc(func(zapcore.Level) bool { return verbose.Load() }),
		),
	}

	if file != nil {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.TimeKey = "timestamp"
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileCfg),
			zapcore.AddSync(file),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool {
				return l >= zapcore.InfoLevel || verbose.Load()
			}),
		))
	}

	return zap.New(zapcore.NewTee(cores...))
}

func bracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}
