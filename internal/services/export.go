package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/astra-capstone/astra-backend/internal/domain"
	"github.com/astra-capstone/astra-backend/internal/platform/apierr"
)

type noteExport struct {
	SessionID   string        `json:"session_id"`
	SessionName string        `json:"session_name"`
	ExportedAt  time.Time     `json:"exported_at"`
	Notes       []domain.Note `json:"notes"`
}

// Export renders the session's notes as a markdown document or a JSON
// payload, returning the body and its content type. Pure read, no mutation.
func (s *noteService) Export(sessionID, format string) ([]byte, string, error) {
	sess, ok := s.store.GetSession(sessionID)
	if !ok {
		return nil, "", apierr.NotFound("Session %s not found", sessionID)
	}

	notes := s.store.NotesBySession(sessionID)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Timestamp.Before(notes[j].Timestamp)
	})

	if format == "json" {
		payload := noteExport{
			SessionID:   sessionID,
			SessionName: sess.Name,
			ExportedAt:  utcNow(),
			Notes:       notes,
		}
		raw, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return raw, "application/json", nil
	}

	return renderMarkdown(sess, notes), "text/markdown", nil
}

func renderMarkdown(sess domain.Session, notes []domain.Note) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", sess.Name)
	fmt.Fprintf(&b, "**Session ID:** %s\n", sess.ID)
	fmt.Fprintf(&b, "**Started:** %s\n", sess.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "**Status:** %s\n\n", sess.Status)
	b.WriteString("---\n\n## Notes\n\n")

	for _, note := range notes {
		speaker := "Unknown"
		if note.Speaker != nil && *note.Speaker != "" {
			speaker = *note.Speaker
		}
		fmt.Fprintf(&b, "### [%s] %s\n\n", note.Timestamp.Format("15:04:05"), speaker)
		b.WriteString(note.Content)
		b.WriteString("\n\n")

		if len(note.TelemetrySnapshot) > 0 {
			fmt.Fprintf(&b, "**Telemetry:** %s\n\n", formatSnapshot(note.TelemetrySnapshot))
		}
		if len(note.Tags) > 0 {
			fmt.Fprintf(&b, "*Tags: %s*\n\n", strings.Join(note.Tags, ", "))
		}
		b.WriteString("---\n\n")
	}

	return []byte(b.String())
}

func formatSnapshot(snapshot map[string]float64) string {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.FormatFloat(snapshot[k], 'g', -1, 64))
	}
	return strings.Join(parts, ", ")
}
