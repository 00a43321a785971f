package domain

import "time"

type SessionStatus string

const (
	SessionStatusActive SessionStatus = "active"
	SessionStatusEnded  SessionStatus = "ended"
)

type NoteType string

const (
	NoteTypeObservation NoteType = "observation"
	NoteTypeCommand     NoteType = "command"
	NoteTypeSystem      NoteType = "system"
)

type STTStatus string

const (
	STTStatusPending STTStatus = "pending"
	STTStatusDone    STTStatus = "done"
	STTStatusFailed  STTStatus = "failed"
)

// Terminal reports whether a task status permits no further transitions.
func (s STTStatus) Terminal() bool {
	return s == STTStatusDone || s == STTStatusFailed
}

// Session is one bounded test run. It scopes every other entity.
type Session struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Status      SessionStatus `json:"status"`
	StartedAt   time.Time     `json:"started_at"`
	EndedAt     *time.Time    `json:"ended_at"`
}

// Note is a timestamped observation/command/system record, authored by an
// operator or the AI module.
type Note struct {
	ID                string             `json:"id"`
	SessionID         string             `json:"session_id"`
	Timestamp         time.Time          `json:"timestamp"`
	Speaker           *string            `json:"speaker"`
	Content           string             `json:"content"`
	Type              NoteType           `json:"type"`
	Tags              []string           `json:"tags"`
	TelemetrySnapshot map[string]float64 `json:"telemetry_snapshot"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// TelemetrySample is a single channel/value/unit measurement. Immutable once
// stored.
type TelemetrySample struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Channel   string    `json:"channel"`
	Value     float64   `json:"value"`
	Unit      *string   `json:"unit"`
}

// STTTask tracks the lifecycle of one audio chunk submitted for
// transcription. Status only moves pending -> done|failed.
type STTTask struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	AudioChunkID    string    `json:"audio_chunk_id"`
	DurationSeconds *float64  `json:"duration_seconds"`
	Status          STTStatus `json:"status"`
	Transcript      *string   `json:"transcript"`
	Error           *string   `json:"error"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
