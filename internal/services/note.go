package services

import (
	"sort"
	"time"

	"github.com/astra-capstone/astra-backend/internal/domain"
	"github.com/astra-capstone/astra-backend/internal/platform/apierr"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/store"
)

type NoteCreateInput struct {
	Timestamp         time.Time          `json:"timestamp" binding:"required"`
	Speaker           *string            `json:"speaker"`
	Content           string             `json:"content" binding:"required"`
	Type              domain.NoteType    `json:"type" binding:"omitempty,oneof=observation command system"`
	Tags              []string           `json:"tags"`
	TelemetrySnapshot map[string]float64 `json:"telemetry_snapshot"`
}

type NoteUpdateInput struct {
	Content *string          `json:"content"`
	Speaker *string          `json:"speaker"`
	Type    *domain.NoteType `json:"type" binding:"omitempty,oneof=observation command system"`
	Tags    *[]string        `json:"tags"`
}

type NoteListFilter struct {
	Speaker string
	Type    domain.NoteType
	From    *time.Time
	To      *time.Time
}

type NoteService interface {
	Create(sessionID string, in NoteCreateInput) (domain.Note, error)
	List(sessionID string, filter NoteListFilter) ([]domain.Note, error)
	Get(sessionID, noteID string) (domain.Note, error)
	Update(sessionID, noteID string, in NoteUpdateInput) (domain.Note, error)
	Delete(sessionID, noteID string) error
	Export(sessionID, format string) ([]byte, string, error)
}

type noteService struct {
	store    *store.Store
	log      *logger.Logger
	notifier SessionNotifier
}

func NewNoteService(st *store.Store, log *logger.Logger, notifier SessionNotifier) NoteService {
	return &noteService{
		store:    st,
		log:      log.With("service", "NoteService"),
		notifier: notifier,
	}
}

func (s *noteService) Create(sessionID string, in NoteCreateInput) (domain.Note, error) {
	if !s.store.SessionExists(sessionID) {
		return domain.Note{}, apierr.NotFound("Session %s not found", sessionID)
	}

	noteType := in.Type
	if noteType == "" {
		noteType = domain.NoteTypeObservation
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	now := utcNow()
	note := domain.Note{
		ID:                newID("note"),
		SessionID:         sessionID,
		Timestamp:         in.Timestamp.UTC(),
		Speaker:           in.Speaker,
		Content:           in.Content,
		Type:              noteType,
		Tags:              tags,
		TelemetrySnapshot: in.TelemetrySnapshot,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.store.PutNote(note)
	s.log.Info("note created", "session_id", sessionID, "note_id", note.ID)

	s.notifier.NoteCreated(note)
	return note, nil
}

// List returns the session's notes matching filter, ascending by timestamp.
// From/to bounds are inclusive.
func (s *noteService) List(sessionID string, filter NoteListFilter) ([]domain.Note, error) {
	if !s.store.SessionExists(sessionID) {
		return nil, apierr.NotFound("Session %s not found", sessionID)
	}

	notes := s.store.NotesBySession(sessionID)
	filtered := notes[:0]
	for _, n := range notes {
		if filter.Speaker != "" && (n.Speaker == nil || *n.Speaker != filter.Speaker) {
			continue
		}
		if filter.Type != "" && n.Type != filter.Type {
			continue
		}
		if filter.From != nil && n.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && n.Timestamp.After(*filter.To) {
			continue
		}
		filtered = append(filtered, n)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})
	return filtered, nil
}

func (s *noteService) Get(sessionID, noteID string) (domain.Note, error) {
	if !s.store.SessionExists(sessionID) {
		return domain.Note{}, apierr.NotFound("Session %s not found", sessionID)
	}
	note, ok := s.store.GetNote(noteID)
	if !ok || note.SessionID != sessionID {
		return domain.Note{}, apierr.NotFound("Note %s not found in session %s", noteID, sessionID)
	}
	return note, nil
}

func (s *noteService) Update(sessionID, noteID string, in NoteUpdateInput) (domain.Note, error) {
	if _, err := s.Get(sessionID, noteID); err != nil {
		return domain.Note{}, err
	}

	now := utcNow()
	note, _ := s.store.UpdateNote(noteID, func(rec *domain.Note) {
		if in.Content != nil {
			rec.Content = *in.Content
		}
		if in.Speaker != nil {
			rec.Speaker = in.Speaker
		}
		if in.Type != nil {
			rec.Type = *in.Type
		}
		if in.Tags != nil {
			rec.Tags = *in.Tags
		}
		rec.UpdatedAt = now
	})
	s.log.Info("note updated", "session_id", sessionID, "note_id", noteID)

	s.notifier.NoteUpdated(note)
	return note, nil
}

func (s *noteService) Delete(sessionID, noteID string) error {
	if _, err := s.Get(sessionID, noteID); err != nil {
		return err
	}
	s.store.DeleteNote(noteID)
	s.log.Info("note deleted", "session_id", sessionID, "note_id", noteID)

	s.notifier.NoteDeleted(sessionID, noteID)
	return nil
}
