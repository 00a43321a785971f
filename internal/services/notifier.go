package services

import (
	"github.com/astra-capstone/astra-backend/internal/domain"
	"github.com/astra-capstone/astra-backend/internal/realtime"
)

// SessionNotifier receives exactly one call per committed mutation that has a
// broadcast side effect. Implementations must never fail the caller; event
// delivery is best effort and independent of the CRUD result.
type SessionNotifier interface {
	NoteCreated(note domain.Note)
	NoteUpdated(note domain.Note)
	NoteDeleted(sessionID, noteID string)
	STTTaskCreated(task domain.STTTask)
	STTTaskDone(task domain.STTTask)
	STTFailed(sessionID, message string)
}

type hubNotifier struct {
	hub *realtime.Hub
}

func NewHubNotifier(hub *realtime.Hub) SessionNotifier {
	return &hubNotifier{hub: hub}
}

func (n *hubNotifier) NoteCreated(note domain.Note) {
	n.hub.Publish(note.SessionID, realtime.EventNoteCreated, note)
}

func (n *hubNotifier) NoteUpdated(note domain.Note) {
	n.hub.Publish(note.SessionID, realtime.EventNoteUpdated, note)
}

func (n *hubNotifier) NoteDeleted(sessionID, noteID string) {
	n.hub.Publish(sessionID, realtime.EventNoteDeleted, map[string]string{"id": noteID})
}

func (n *hubNotifier) STTTaskCreated(task domain.STTTask) {
	n.hub.Publish(task.SessionID, realtime.EventSTTTaskCreated, task)
}

func (n *hubNotifier) STTTaskDone(task domain.STTTask) {
	n.hub.Publish(task.SessionID, realtime.EventSTTTaskDone, task)
}

func (n *hubNotifier) STTFailed(sessionID, message string) {
	n.hub.Publish(sessionID, realtime.EventErrorOccurred, map[string]string{
		"message": message,
		"source":  "stt",
	})
}
