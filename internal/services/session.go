package services

import (
	"sort"

	"github.com/astra-capstone/astra-backend/internal/domain"
	"github.com/astra-capstone/astra-backend/internal/platform/apierr"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/store"
)

type SessionCreateInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type SessionUpdateInput struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *domain.SessionStatus `json:"status" binding:"omitempty,oneof=active ended"`
}

type SessionService interface {
	Create(in SessionCreateInput) (domain.Session, error)
	List() []domain.Session
	Get(id string) (domain.Session, error)
	Update(id string, in SessionUpdateInput) (domain.Session, error)
	Exists(id string) bool
}

type sessionService struct {
	store *store.Store
	log   *logger.Logger
}

func NewSessionService(st *store.Store, log *logger.Logger) SessionService {
	return &sessionService{
		store: st,
		log:   log.With("service", "SessionService"),
	}
}

func (s *sessionService) Create(in SessionCreateInput) (domain.Session, error) {
	sess := domain.Session{
		ID:          newID("sess"),
		Name:        in.Name,
		Description: in.Description,
		Status:      domain.SessionStatusActive,
		StartedAt:   utcNow(),
	}
	s.store.PutSession(sess)
	s.log.Info("session created", "session_id", sess.ID, "name", sess.Name)
	return sess, nil
}

// List returns all sessions, newest first by start time.
func (s *sessionService) List() []domain.Session {
	sessions := s.store.ListSessions()
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions
}

func (s *sessionService) Get(id string) (domain.Session, error) {
	sess, ok := s.store.GetSession(id)
	if !ok {
		return domain.Session{}, apierr.NotFound("Session %s not found", id)
	}
	return sess, nil
}

// Update applies partial metadata changes. The first transition to ended
// stamps ended_at; setting ended again leaves the original stamp in place.
func (s *sessionService) Update(id string, in SessionUpdateInput) (domain.Session, error) {
	now := utcNow()
	sess, ok := s.store.UpdateSession(id, func(rec *domain.Session) {
		if in.Name != nil {
			rec.Name = *in.Name
		}
		if in.Description != nil {
			rec.Description = in.Description
		}
		if in.Status != nil {
			if *in.Status == domain.SessionStatusEnded && rec.Status != domain.SessionStatusEnded {
				rec.EndedAt = &now
			}
			rec.Status = *in.Status
		}
	})
	if !ok {
		return domain.Session{}, apierr.NotFound("Session %s not found", id)
	}
	if in.Status != nil && *in.Status == domain.SessionStatusEnded {
		s.log.Info("session ended", "session_id", id)
	}
	return sess, nil
}

func (s *sessionService) Exists(id string) bool {
	return s.store.SessionExists(id)
}
