package services

import (
	"sync"
	"testing"
	"time"

	"github.com/astra-capstone/astra-backend/internal/domain"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/store"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

// captureNotifier records every trigger so tests can assert the
// one-publish-per-mutation contract without a live hub.
type captureNotifier struct {
	mu     sync.Mutex
	events []capturedEvent
}

type capturedEvent struct {
	kind      string
	sessionID string
	note      domain.Note
	task      domain.STTTask
	noteID    string
	message   string
}

func (c *captureNotifier) record(ev capturedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *captureNotifier) NoteCreated(note domain.Note) {
	c.record(capturedEvent{kind: "note.created", sessionID: note.SessionID, note: note})
}
func (c *captureNotifier) NoteUpdated(note domain.Note) {
	c.record(capturedEvent{kind: "note.updated", sessionID: note.SessionID, note: note})
}
func (c *captureNotifier) NoteDeleted(sessionID, noteID string) {
	c.record(capturedEvent{kind: "note.deleted", sessionID: sessionID, noteID: noteID})
}
func (c *captureNotifier) STTTaskCreated(task domain.STTTask) {
	c.record(capturedEvent{kind: "stt.task.created", sessionID: task.SessionID, task: task})
}
func (c *captureNotifier) STTTaskDone(task domain.STTTask) {
	c.record(capturedEvent{kind: "stt.task.done", sessionID: task.SessionID, task: task})
}
func (c *captureNotifier) STTFailed(sessionID, message string) {
	c.record(capturedEvent{kind: "error.occurred", sessionID: sessionID, message: message})
}

func (c *captureNotifier) all(t *testing.T) []capturedEvent {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]capturedEvent, len(c.events))
	copy(out, c.events)
	return out
}

func newFixture(t *testing.T) (*store.Store, *captureNotifier, SessionService, NoteService, TelemetryService, STTService) {
	t.Helper()
	log := mustTestLogger(t)
	st := store.New()
	notifier := &captureNotifier{}
	return st, notifier,
		NewSessionService(st, log),
		NewNoteService(st, log, notifier),
		NewTelemetryService(st, log),
		NewSTTService(st, log, notifier)
}

func mustCreateSession(t *testing.T, sessions SessionService, name string) domain.Session {
	t.Helper()
	sess, err := sessions.Create(SessionCreateInput{Name: name})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess
}

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed.UTC()
}

func strptr(s string) *string { return &s }

func floatptr(f float64) *float64 { return &f }
