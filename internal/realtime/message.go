package realtime

type Event string

const (
	EventConnected Event = "connected"

	EventNoteCreated Event = "note.created"
	EventNoteUpdated Event = "note.updated"
	EventNoteDeleted Event = "note.deleted"

	EventSTTTaskCreated Event = "stt.task.created"
	EventSTTTaskDone    Event = "stt.task.done"

	// Reserved for streaming partial transcripts from the AI module.
	EventTranscriptChunkReady Event = "transcript.chunk.ready"

	EventErrorOccurred Event = "error.occurred"
)

// Message is the server-to-client frame. Keep-alive ping/pong is plain text
// and never wrapped in this envelope.
type Message struct {
	Event     Event  `json:"event"`
	SessionID string `json:"session_id"`
	Data      any    `json:"data"`
}
