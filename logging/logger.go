// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug
// any structured logger. It also offers a richer AgentPipeLogger with
// contextual helpers (component, agent, run) and domain specific helpers for
// model calls and pipeline stages.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the minimal logging interface for agentpipe.
// This allows users to provide their own logger implementation or use the
// built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// AgentPipeLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods. It should be cheap to copy via With* methods.
type AgentPipeLogger struct {
	logger    *slog.Logger
	level     LogLevel
	context   map[string]any
	component string
	agentName string
	runID     string
}

// LoggerConfig configures construction of an AgentPipeLogger.
type LoggerConfig struct {
	Level       LogLevel
	Format      string // json or text
	Output      io.Writer
	AddSource   bool
	Component   string
	AgentName   string
	RunID       string
	CustomAttrs map[string]any
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout, AddSource: true, CustomAttrs: map[string]any{}}
}

// NewLogger builds an AgentPipeLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *AgentPipeLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	ctx := map[string]any{}
	for k, v := range cfg.CustomAttrs {
		ctx[k] = v
	}
	return &AgentPipeLogger{logger: slog.New(handler), level: cfg.Level, context: ctx, component: cfg.Component, agentName: cfg.AgentName, runID: cfg.RunID}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *AgentPipeLogger) clone() *AgentPipeLogger {
	nl := *l
	nl.context = map[string]any{}
	for k, v := range l.context {
		nl.context[k] = v
	}
	return &nl
}

// WithContext adds a key/value attribute attached to every log entry.
func (l *AgentPipeLogger) WithContext(key string, value any) *AgentPipeLogger {
	nl := l.clone()
	nl.context[key] = value
	return nl
}

// WithComponent sets the logical component (agent, renderer, memory, etc.).
func (l *AgentPipeLogger) WithComponent(c string) *AgentPipeLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithRun attaches agent and run identifiers.
func (l *AgentPipeLogger) WithRun(agentName, runID string) *AgentPipeLogger {
	nl := l.clone()
	nl.agentName = agentName
	nl.runID = runID
	return nl
}

func (l *AgentPipeLogger) buildAttrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(l.context)+4)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.agentName != "" {
		attrs = append(attrs, slog.String("agent", l.agentName))
	}
	if l.runID != "" {
		attrs = append(attrs, slog.String("run_id", l.runID))
	}
	attrs = append(attrs, slog.Time("timestamp", time.Now()))
	for k, v := range l.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

// badKey labels a stray arg that does not form a key/value pair, the same
// convention slog uses.
const badKey = "!BADKEY"

// argsToAttrs converts slog-style variadic args (alternating string keys and
// values, or ready-made slog.Attr values) into attrs.
func argsToAttrs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(args)/2)
	for len(args) > 0 {
		switch arg := args[0].(type) {
		case string:
			if len(args) == 1 {
				return append(attrs, slog.String(badKey, arg))
			}
			attrs = append(attrs, slog.Any(arg, args[1]))
			args = args[2:]
		case slog.Attr:
			attrs = append(attrs, arg)
			args = args[1:]
		default:
			attrs = append(attrs, slog.Any(badKey, arg))
			args = args[1:]
		}
	}
	return attrs
}

func (l *AgentPipeLogger) log(level slog.Level, allowed bool, msg string, args ...any) {
	if !allowed {
		return
	}
	attrs := append(l.buildAttrs(), argsToAttrs(args)...)
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Debug logs at debug level.
func (l *AgentPipeLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *AgentPipeLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *AgentPipeLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *AgentPipeLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// ErrorWithStack logs an error plus a runtime stack snapshot. Args follow
// the key/value convention of the Logger interface.
func (l *AgentPipeLogger) ErrorWithStack(err error, msg string, args ...any) {
	if l.level > LogLevelError {
		return
	}
	attrs := append(l.buildAttrs(), argsToAttrs(args)...)
	attrs = append(attrs, slog.String("error", err.Error()), slog.String("error_type", fmt.Sprintf("%T", err)))
	stack := make([]byte, 4096)
	n := runtime.Stack(stack, false)
	attrs = append(attrs, slog.String("stack_trace", string(stack[:n])))
	l.logger.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

// LogModelCall records model call latency and outcome through any Logger.
// Success is logged at debug level, failure at error level.
func LogModelCall(l Logger, agentName, runID, model string, dur time.Duration, err error) {
	if err != nil {
		l.Error("Model call failed",
			"agent", agentName, "run_id", runID, "model", model,
			"duration", dur, "success", false, "error", err.Error())
		return
	}
	l.Debug("Model call completed",
		"agent", agentName, "run_id", runID, "model", model,
		"duration", dur, "success", true)
}

// LogStage records execution details for a single pipeline stage through any
// Logger. Success is logged at debug level, failure at error level.
func LogStage(l Logger, agentName, runID, stage string, dur time.Duration, err error) {
	if err != nil {
		l.Error("Stage failed",
			"agent", agentName, "run_id", runID, "stage", stage,
			"duration", dur, "success", false, "error", err.Error())
		return
	}
	l.Debug("Stage completed",
		"agent", agentName, "run_id", runID, "stage", stage,
		"duration", dur, "success", true)
}

// LogRun records aggregate pipeline run metrics through any Logger. The
// stages argument counts the stages that completed.
func LogRun(l Logger, agentName, runID string, stages int, dur time.Duration, err error) {
	if err != nil {
		l.Error("Run failed",
			"agent", agentName, "run_id", runID, "stage_count", stages,
			"duration", dur, "success", false, "error", err.Error())
		return
	}
	l.Debug("Run completed",
		"agent", agentName, "run_id", runID, "stage_count", stages,
		"duration", dur, "success", true)
}

// StartTimer returns a closure that logs the elapsed duration when invoked.
func (l *AgentPipeLogger) StartTimer(op string) func() {
	start := time.Now()
	return func() { l.Info("Operation completed", "operation", op, "duration", time.Since(start)) }
}

// NoOpLogger discards all log messages. Useful for testing or when logging
// is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// NewSlogLogger creates a new AgentPipeLogger with the specified configuration.
func NewSlogLogger(level LogLevel, format string, addSource bool) *AgentPipeLogger {
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	if format != "" {
		cfg.Format = format
	}
	cfg.AddSource = addSource
	return NewLogger(cfg)
}
