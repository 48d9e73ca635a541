package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stackb/classbridge/pkg/logger"
)

// Record is a single captured diagnostic.
type Record struct {
	Level logger.Type
	Msg   string
}

func (r Record) String() string {
	return fmt.Sprintf("[%v] %s", r.Level, r.Msg)
}

// TestLogger is a logger.TreeLogger that forwards records to t.Log and keeps
// them for later assertions.
type TestLogger struct {
	t *testing.T

	mu      sync.Mutex
	records []Record
}

// NewTestLogger creates a new TestLogger that writes to the provided testing.T
func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{t: t}
}

// Log implements logger.TreeLogger.
func (l *TestLogger) Log(level logger.Type, msg string) {
	l.t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, Record{Level: level, Msg: msg})
	l.t.Logf("[%v] %s", level, msg)
}

// Records returns a copy of everything logged so far.
func (l *TestLogger) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Record(nil), l.records...)
}

// Count returns the number of records at the given level.
func (l *TestLogger) Count(level logger.Type) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.records {
		if r.Level == level {
			n++
		}
	}
	return n
}
