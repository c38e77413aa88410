// Package notify delivers user-visible warnings. Warn never blocks on the
// user and never fails.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/LeLocTai/unityhub-launcher/internal/tui"
)

// Warner is a fire-and-forget warning channel.
type Warner interface {
	Warn(msg string)
}

// LogWarner writes warnings to a slog logger at WARN level.
type LogWarner struct {
	logger *slog.Logger
}

// NewLogWarner creates a LogWarner. A nil logger uses slog.Default().
func NewLogWarner(logger *slog.Logger) *LogWarner {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogWarner{logger: logger}
}

func (w *LogWarner) Warn(msg string) {
	w.logger.Warn(msg)
}

// ConsoleWarner prints styled warnings to a terminal.
type ConsoleWarner struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleWarner creates a ConsoleWarner writing to out.
func NewConsoleWarner(out io.Writer) *ConsoleWarner {
	return &ConsoleWarner{out: out}
}

func (w *ConsoleWarner) Warn(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = fmt.Fprintln(w.out, tui.WarningStyle.Render("⚠ "+msg))
}

// Collector records warnings in memory.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Warn(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the recorded warnings in order.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.messages...)
}

// Reset drops the recorded warnings.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = nil
}

// Multi fans a warning out to every non-nil Warner.
type Multi []Warner

func (m Multi) Warn(msg string) {
	for _, w := range m {
		if w != nil {
			w.Warn(msg)
		}
	}
}
