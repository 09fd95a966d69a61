package core

import (
	"fmt"
	"io"
	"sync"

	"github.com/hupe1980/agentpipe/logging"
)

// Notifier is the status/notification sink boundary. Notify is fire and
// forget: the pipeline never consumes a return value and a notifier must not
// block the run.
type Notifier interface {
	Notify(message string)
}

// NoOpNotifier discards all notifications. It is the default so the library
// carries no console policy.
type NoOpNotifier struct{}

// Notify implements Notifier.
func (NoOpNotifier) Notify(string) {}

// WriterNotifier writes one status line per notification to an io.Writer,
// typically os.Stdout. Safe for concurrent use.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a WriterNotifier targeting w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify implements Notifier.
func (n *WriterNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, message)
}

// LoggerNotifier forwards notifications to a structured logger at info level.
type LoggerNotifier struct {
	Logger logging.Logger
}

// Notify implements Notifier.
func (n LoggerNotifier) Notify(message string) {
	if n.Logger == nil {
		return
	}
	n.Logger.Info(message)
}
