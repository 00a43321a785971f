package store

import (
	"errors"
	"testing"
	"time"

	"github.com/astra-capstone/astra-backend/internal/domain"
)

var errTerminal = errors.New("task already terminal")

func TestStoreSessionRoundTrip(t *testing.T) {
	st := New()

	if _, ok := st.GetSession("sess_missing"); ok {
		t.Fatalf("expected miss for unknown session")
	}

	st.PutSession(domain.Session{ID: "sess_1", Name: "thermal vac", Status: domain.SessionStatusActive})
	got, ok := st.GetSession("sess_1")
	if !ok {
		t.Fatalf("expected session hit")
	}
	if got.Name != "thermal vac" {
		t.Fatalf("name: want=%q got=%q", "thermal vac", got.Name)
	}

	// Returned copies must not alias stored state.
	got.Name = "mutated"
	again, _ := st.GetSession("sess_1")
	if again.Name != "thermal vac" {
		t.Fatalf("store state leaked through returned copy")
	}
}

func TestStoreUpdateSessionAppliesUnderLock(t *testing.T) {
	st := New()
	st.PutSession(domain.Session{ID: "sess_1", Status: domain.SessionStatusActive})

	now := time.Now().UTC()
	updated, ok := st.UpdateSession("sess_1", func(rec *domain.Session) {
		rec.Status = domain.SessionStatusEnded
		rec.EndedAt = &now
	})
	if !ok {
		t.Fatalf("expected update to find session")
	}
	if updated.Status != domain.SessionStatusEnded || updated.EndedAt == nil {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, ok := st.UpdateSession("sess_missing", func(*domain.Session) {}); ok {
		t.Fatalf("update of missing session must report a miss")
	}
}

func TestStoreNoteDeleteRemovesFromListing(t *testing.T) {
	st := New()
	st.PutNote(domain.Note{ID: "note_1", SessionID: "sess_1"})
	st.PutNote(domain.Note{ID: "note_2", SessionID: "sess_1"})
	st.PutNote(domain.Note{ID: "note_3", SessionID: "sess_2"})

	if !st.DeleteNote("note_1") {
		t.Fatalf("delete of existing note must succeed")
	}
	if st.DeleteNote("note_1") {
		t.Fatalf("second delete must report a miss")
	}
	if _, ok := st.GetNote("note_1"); ok {
		t.Fatalf("deleted note still retrievable")
	}

	notes := st.NotesBySession("sess_1")
	if len(notes) != 1 || notes[0].ID != "note_2" {
		t.Fatalf("listing after delete: %+v", notes)
	}
}

func TestStoreTelemetryKeepsInsertionOrder(t *testing.T) {
	st := New()
	for _, id := range []string{"tel_1", "tel_2", "tel_3"} {
		st.AppendTelemetry(domain.TelemetrySample{ID: id, SessionID: "sess_1", Channel: "voltage"})
	}
	st.AppendTelemetry(domain.TelemetrySample{ID: "tel_other", SessionID: "sess_2", Channel: "voltage"})

	samples := st.TelemetryBySession("sess_1")
	if len(samples) != 3 {
		t.Fatalf("samples: want=3 got=%d", len(samples))
	}
	for i, want := range []string{"tel_1", "tel_2", "tel_3"} {
		if samples[i].ID != want {
			t.Fatalf("position %d: want=%s got=%s", i, want, samples[i].ID)
		}
	}
}

func TestStoreSTTTaskUpdateCanRefuse(t *testing.T) {
	st := New()
	st.PutSTTTask(domain.STTTask{ID: "stt_1", SessionID: "sess_1", Status: domain.STTStatusDone})

	refusal := func(rec *domain.STTTask) error {
		if rec.Status.Terminal() {
			return errTerminal
		}
		rec.Status = domain.STTStatusFailed
		return nil
	}

	_, found, err := st.UpdateSTTTask("stt_1", refusal)
	if !found {
		t.Fatalf("expected task to be found")
	}
	if err == nil {
		t.Fatalf("expected refusal error for terminal task")
	}

	task, _ := st.GetSTTTask("stt_1")
	if task.Status != domain.STTStatusDone {
		t.Fatalf("refused update must leave record untouched, got status=%s", task.Status)
	}

	if _, found, _ := st.UpdateSTTTask("stt_missing", refusal); found {
		t.Fatalf("update of missing task must report a miss")
	}
}

