// Package logger provides the process-wide logger for the screener.
// Debug and info messages are written only in verbose mode (--verbose);
// warnings and errors are always written. Output is human readable by
// default and JSON lines with --log-json.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu       sync.RWMutex
	verbose  bool
	jsonMode bool
	output   io.Writer = os.Stderr
	base               = build(os.Stderr, false, false)
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build(output, verbose, jsonMode)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetJSON switches between console and JSON encoding.
func SetJSON(v bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonMode = v
	base = build(output, verbose, jsonMode)
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build(output, verbose, jsonMode)
}

// L returns the underlying zap logger for structured fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	L().Debug(fmt.Sprintf(format, args...))
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	L().Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	L().Warn(fmt.Sprintf(format, args...))
}

// Error logs an error.
func Error(format string, args ...any) {
	L().Error(fmt.Sprintf(format, args...))
}

// Section marks the start of a pipeline stage if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	if jsonMode {
		base.Debug("section", zap.String("section", name))
		return
	}
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

func build(w io.Writer, verbose, json bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var enc zapcore.Encoder
	if json {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			LevelKey:         "level",
			MessageKey:       "msg",
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      bracketLevel,
			ConsoleSeparator: " ",
		})
	}

	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level))
}

// bracketLevel renders levels as [DEBUG], [INFO], [WARN], [ERROR].
func bracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + strings.ToUpper(l.String()) + "]")
}
