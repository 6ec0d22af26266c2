package testdoubles

import (
	"context"
	"sync"
)

// SpyLogRecord represents one recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// LoggerSpy captures plain logging calls for testing. It satisfies both the
// dbusengine.Logger and snapshotview.Logger interfaces.
type LoggerSpy struct {
	records []SpyLogRecord
	mu      sync.Mutex
}

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

// Debug implements the Logger interface for testing.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record("debug", msg, args)
}

// Info implements the Logger interface for testing.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record("info", msg, args)
}

// Warn implements the Logger interface for testing.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record("warn", msg, args)
}

// Error implements the Logger interface for testing.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record("error", msg, args)
}

func (s *LoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{Level: level, Message: msg, Args: args})
}

// Records returns a copy of all recorded log calls.
func (s *LoggerSpy) Records() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}

// HasLog checks if a log with the given level and message was recorded.
func (s *LoggerSpy) HasLog(level, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			return true
		}
	}

	return false
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// ContextualLoggerSpy captures contextual logging calls for testing. It
// satisfies the dbusengine.ContextualLogger and snapshotview.ContextualLogger
// interfaces.
type ContextualLoggerSpy struct {
	spy      LoggerSpy
	contexts []context.Context
	mu       sync.Mutex
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy instance.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

// DebugContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.recordContext(ctx)
	s.spy.Debug(msg, args...)
}

// InfoContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.recordContext(ctx)
	s.spy.Info(msg, args...)
}

// WarnContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.recordContext(ctx)
	s.spy.Warn(msg, args...)
}

// ErrorContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.recordContext(ctx)
	s.spy.Error(msg, args...)
}

func (s *ContextualLoggerSpy) recordContext(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contexts = append(s.contexts, ctx)
}

// Records returns a copy of all recorded log calls.
func (s *ContextualLoggerSpy) Records() []SpyLogRecord {
	return s.spy.Records()
}

// HasLog checks if a log with the given level and message was recorded.
func (s *ContextualLoggerSpy) HasLog(level, message string) bool {
	return s.spy.HasLog(level, message)
}

// Contexts returns a copy of the contexts the calls were made with.
func (s *ContextualLoggerSpy) Contexts() []context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]context.Context(nil), s.contexts...)
}
