package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// capturingLogger records the last call so tests can assert on the exact
// level, message and key/value args a helper emitted.
type capturingLogger struct {
	level string
	msg   string
	args  []any
}

func (c *capturingLogger) Debug(msg string, args ...any) { c.level, c.msg, c.args = "debug", msg, args }
func (c *capturingLogger) Info(msg string, args ...any)  { c.level, c.msg, c.args = "info", msg, args }
func (c *capturingLogger) Warn(msg string, args ...any)  { c.level, c.msg, c.args = "warn", msg, args }
func (c *capturingLogger) Error(msg string, args ...any) { c.level, c.msg, c.args = "error", msg, args }

func newBufferLogger(level LogLevel) (*AgentPipeLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewLogger(&LoggerConfig{Level: level, Format: "text", Output: buf}), buf
}

func TestAgentPipeLoggerKeyValueArgs(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelDebug)

	logger.Debug("Run started", "agent", "Echo", "run_id", "r1")

	out := buf.String()
	assert.Contains(t, out, `msg="Run started"`)
	assert.Contains(t, out, "agent=Echo")
	assert.Contains(t, out, "run_id=r1")
	assert.NotContains(t, out, "%!")
}

func TestAgentPipeLoggerDanglingArg(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelDebug)

	logger.Info("note", "dangling")

	assert.Contains(t, buf.String(), "!BADKEY=dangling")
}

func TestAgentPipeLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.Debug("Run started", "agent", "Echo")

	assert.Empty(t, buf.String())
}

func TestAgentPipeLoggerContextualClones(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelDebug)

	logger.WithComponent("agent").WithRun("Echo", "r1").WithContext("env", "test").Info("ready")

	out := buf.String()
	assert.Contains(t, out, "component=agent")
	assert.Contains(t, out, "agent=Echo")
	assert.Contains(t, out, "run_id=r1")
	assert.Contains(t, out, "env=test")

	// The clone must not leak context back into the original.
	buf.Reset()
	logger.Info("ready")
	assert.NotContains(t, buf.String(), "component=agent")
}

func TestLogStage(t *testing.T) {
	c := &capturingLogger{}

	LogStage(c, "Echo", "r1", "run_model", 5*time.Millisecond, nil)

	assert.Equal(t, "debug", c.level)
	assert.Equal(t, "Stage completed", c.msg)
	assert.Equal(t, []any{
		"agent", "Echo", "run_id", "r1", "stage", "run_model",
		"duration", 5 * time.Millisecond, "success", true,
	}, c.args)

	LogStage(c, "Echo", "r1", "run_model", 5*time.Millisecond, errors.New("boom"))

	assert.Equal(t, "error", c.level)
	assert.Equal(t, "Stage failed", c.msg)
	assert.Contains(t, c.args, "boom")
}

func TestLogModelCall(t *testing.T) {
	c := &capturingLogger{}

	LogModelCall(c, "Echo", "r1", "mock-model", time.Millisecond, nil)

	assert.Equal(t, "debug", c.level)
	assert.Equal(t, "Model call completed", c.msg)
	assert.Contains(t, c.args, "mock-model")

	LogModelCall(c, "Echo", "r1", "mock-model", time.Millisecond, errors.New("rate limited"))

	assert.Equal(t, "error", c.level)
	assert.Equal(t, "Model call failed", c.msg)
	assert.Contains(t, c.args, "rate limited")
}

func TestLogRun(t *testing.T) {
	c := &capturingLogger{}

	LogRun(c, "Echo", "r1", 8, time.Second, nil)

	assert.Equal(t, "debug", c.level)
	assert.Equal(t, "Run completed", c.msg)
	assert.Contains(t, c.args, 8)

	LogRun(c, "Echo", "r1", 3, time.Second, errors.New("boom"))

	assert.Equal(t, "error", c.level)
	assert.Equal(t, "Run failed", c.msg)
	assert.Contains(t, c.args, 3)
}

func TestLogHelpersThroughAgentPipeLogger(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelDebug)

	LogStage(logger, "Echo", "r1", "generate_prompt", time.Millisecond, nil)

	out := buf.String()
	assert.Contains(t, out, `msg="Stage completed"`)
	assert.Contains(t, out, "stage=generate_prompt")
	assert.Contains(t, out, "success=true")
	assert.NotContains(t, out, "%!")
}

func TestErrorWithStack(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelDebug)

	logger.ErrorWithStack(errors.New("boom"), "stage blew up", "stage", "run_model")

	out := buf.String()
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "error_type=")
	assert.Contains(t, out, "stack_trace=")
	assert.Contains(t, out, "stage=run_model")
}

func TestStartTimer(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelDebug)

	done := logger.StartTimer("render")
	done()

	out := buf.String()
	assert.Contains(t, out, `msg="Operation completed"`)
	assert.Contains(t, out, "operation=render")
}

func TestCustomAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(&LoggerConfig{
		Level:       LogLevelDebug,
		Format:      "text",
		Output:      buf,
		CustomAttrs: map[string]any{"service": "agentpipe"},
	})

	logger.Info("ready")

	assert.Contains(t, buf.String(), "service=agentpipe")
}

func TestSlogAdapter(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlogAdapter(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Debug("hello", "k", "v")

	assert.Contains(t, buf.String(), "k=v")
}
