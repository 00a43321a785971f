package store

import (
	"sync"

	"github.com/astra-capstone/astra-backend/internal/domain"
)

// Store owns every entity collection for the process lifetime. It is
// constructed once and passed by handle; there is no package-level state.
// Collections keep insertion order (slice) next to an id index (map) so that
// listings and tie-breaks are deterministic. All methods copy records in and
// out; callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	sessions     []*domain.Session
	sessionIndex map[string]*domain.Session

	notes     []*domain.Note
	noteIndex map[string]*domain.Note

	telemetry []*domain.TelemetrySample

	sttTasks     []*domain.STTTask
	sttTaskIndex map[string]*domain.STTTask
}

func New() *Store {
	return &Store{
		sessionIndex: make(map[string]*domain.Session),
		noteIndex:    make(map[string]*domain.Note),
		sttTaskIndex: make(map[string]*domain.STTTask),
	}
}

// ===== Sessions =====

func (s *Store) PutSession(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := sess
	s.sessions = append(s.sessions, &rec)
	s.sessionIndex[rec.ID] = &rec
}

func (s *Store) GetSession(id string) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessionIndex[id]
	if !ok {
		return domain.Session{}, false
	}
	return *rec, true
}

func (s *Store) SessionExists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessionIndex[id]
	return ok
}

func (s *Store) ListSessions() []domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Session, 0, len(s.sessions))
	for _, rec := range s.sessions {
		out = append(out, *rec)
	}
	return out
}

// UpdateSession applies fn to the stored record under the store lock and
// returns a copy of the result.
func (s *Store) UpdateSession(id string, fn func(*domain.Session)) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessionIndex[id]
	if !ok {
		return domain.Session{}, false
	}
	fn(rec)
	return *rec, true
}

// ===== Notes =====

func (s *Store) PutNote(n domain.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := n
	s.notes = append(s.notes, &rec)
	s.noteIndex[rec.ID] = &rec
}

func (s *Store) GetNote(id string) (domain.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.noteIndex[id]
	if !ok {
		return domain.Note{}, false
	}
	return *rec, true
}

func (s *Store) NotesBySession(sessionID string) []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Note, 0)
	for _, rec := range s.notes {
		if rec.SessionID == sessionID {
			out = append(out, *rec)
		}
	}
	return out
}

func (s *Store) UpdateNote(id string, fn func(*domain.Note)) (domain.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.noteIndex[id]
	if !ok {
		return domain.Note{}, false
	}
	fn(rec)
	return *rec, true
}

func (s *Store) DeleteNote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.noteIndex[id]
	if !ok {
		return false
	}
	delete(s.noteIndex, id)
	for i, n := range s.notes {
		if n == rec {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			break
		}
	}
	return true
}

// ===== Telemetry =====

func (s *Store) AppendTelemetry(t domain.TelemetrySample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := t
	s.telemetry = append(s.telemetry, &rec)
}

func (s *Store) TelemetryBySession(sessionID string) []domain.TelemetrySample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TelemetrySample, 0)
	for _, rec := range s.telemetry {
		if rec.SessionID == sessionID {
			out = append(out, *rec)
		}
	}
	return out
}

// ===== STT tasks =====

func (s *Store) PutSTTTask(t domain.STTTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := t
	s.sttTasks = append(s.sttTasks, &rec)
	s.sttTaskIndex[rec.ID] = &rec
}

func (s *Store) GetSTTTask(id string) (domain.STTTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sttTaskIndex[id]
	if !ok {
		return domain.STTTask{}, false
	}
	return *rec, true
}

func (s *Store) STTTasksBySession(sessionID string) []domain.STTTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.STTTask, 0)
	for _, rec := range s.sttTasks {
		if rec.SessionID == sessionID {
			out = append(out, *rec)
		}
	}
	return out
}

// UpdateSTTTask applies fn under the store lock; fn may refuse the update by
// returning an error, in which case the record is left untouched.
func (s *Store) UpdateSTTTask(id string, fn func(*domain.STTTask) error) (domain.STTTask, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sttTaskIndex[id]
	if !ok {
		return domain.STTTask{}, false, nil
	}
	if err := fn(rec); err != nil {
		return *rec, true, err
	}
	return *rec, true, nil
}
