// Package notify is the notification capability handed to the wizard's
// network operations. Injecting it keeps toast-style messaging out of the
// call sites' control flow and lets tests assert on what was emitted.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Level classifies a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier receives user-facing notifications.
type Notifier interface {
	Infof(format string, args ...any)
	Successf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Note is one recorded notification.
type Note struct {
	Level   Level
	Message string
}

// Memory records notifications for test assertions.
type Memory struct {
	mu    sync.Mutex
	notes []Note
}

// Infof records an informational note.
func (m *Memory) Infof(format string, args ...any) { m.record(LevelInfo, format, args...) }

// Successf records a success note.
func (m *Memory) Successf(format string, args ...any) { m.record(LevelSuccess, format, args...) }

// Errorf records an error note.
func (m *Memory) Errorf(format string, args ...any) { m.record(LevelError, format, args...) }

func (m *Memory) record(level Level, format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, Note{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Notes returns a copy of everything recorded so far.
func (m *Memory) Notes() []Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Note, len(m.notes))
	copy(out, m.notes)
	return out
}

// Last returns the most recent note, if any.
func (m *Memory) Last() (Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.notes) == 0 {
		return Note{}, false
	}
	return m.notes[len(m.notes)-1], true
}

// Discard drops all notifications.
type Discard struct{}

func (Discard) Infof(string, ...any)    {}
func (Discard) Successf(string, ...any) {}
func (Discard) Errorf(string, ...any)   {}

// Console writes notifications as prefixed lines, for the non-interactive
// commands. Out receives info and success, Err receives errors.
type Console struct {
	Out io.Writer
	Err io.Writer
}

func (c Console) Infof(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

func (c Console) Successf(format string, args ...any) {
	fmt.Fprintf(c.Out, "✓ "+format+"\n", args...)
}

func (c Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.Err, "✗ "+format+"\n", args...)
}
