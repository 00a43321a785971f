package services

import (
	"sort"

	"github.com/astra-capstone/astra-backend/internal/domain"
	"github.com/astra-capstone/astra-backend/internal/platform/apierr"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/store"
)

type STTTaskCreateInput struct {
	AudioChunkID    string   `json:"audio_chunk_id" binding:"required"`
	DurationSeconds *float64 `json:"duration_seconds"`
}

// STTTaskUpdateInput moves a pending task to its terminal state. Pending is a
// creation-only status, so it is not an accepted update target.
type STTTaskUpdateInput struct {
	Status     domain.STTStatus `json:"status" binding:"required,oneof=done failed"`
	Transcript *string          `json:"transcript"`
	Error      *string          `json:"error"`
}

type STTService interface {
	Create(sessionID string, in STTTaskCreateInput) (domain.STTTask, error)
	List(sessionID string) ([]domain.STTTask, error)
	Get(sessionID, taskID string) (domain.STTTask, error)
	Update(sessionID, taskID string, in STTTaskUpdateInput) (domain.STTTask, error)
}

type sttService struct {
	store    *store.Store
	log      *logger.Logger
	notifier SessionNotifier
}

func NewSTTService(st *store.Store, log *logger.Logger, notifier SessionNotifier) STTService {
	return &sttService{
		store:    st,
		log:      log.With("service", "STTService"),
		notifier: notifier,
	}
}

func (s *sttService) Create(sessionID string, in STTTaskCreateInput) (domain.STTTask, error) {
	if !s.store.SessionExists(sessionID) {
		return domain.STTTask{}, apierr.NotFound("Session %s not found", sessionID)
	}

	now := utcNow()
	task := domain.STTTask{
		ID:              newID("stt"),
		SessionID:       sessionID,
		AudioChunkID:    in.AudioChunkID,
		DurationSeconds: in.DurationSeconds,
		Status:          domain.STTStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.store.PutSTTTask(task)
	s.log.Info("stt task registered", "session_id", sessionID, "task_id", task.ID, "audio_chunk_id", in.AudioChunkID)

	s.notifier.STTTaskCreated(task)
	return task, nil
}

// List returns the session's tasks newest first by creation order.
func (s *sttService) List(sessionID string) ([]domain.STTTask, error) {
	if !s.store.SessionExists(sessionID) {
		return nil, apierr.NotFound("Session %s not found", sessionID)
	}
	tasks := s.store.STTTasksBySession(sessionID)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *sttService) Get(sessionID, taskID string) (domain.STTTask, error) {
	if !s.store.SessionExists(sessionID) {
		return domain.STTTask{}, apierr.NotFound("Session %s not found", sessionID)
	}
	task, ok := s.store.GetSTTTask(taskID)
	if !ok || task.SessionID != sessionID {
		return domain.STTTask{}, apierr.NotFound("STT task %s not found", taskID)
	}
	return task, nil
}

// Update moves a pending task to done or failed. Tasks already in a terminal
// state are never modified again; a second transition is a conflict.
func (s *sttService) Update(sessionID, taskID string, in STTTaskUpdateInput) (domain.STTTask, error) {
	if _, err := s.Get(sessionID, taskID); err != nil {
		return domain.STTTask{}, err
	}

	now := utcNow()
	task, _, err := s.store.UpdateSTTTask(taskID, func(rec *domain.STTTask) error {
		if rec.Status.Terminal() {
			return apierr.Conflict("STT task %s is already %s", taskID, rec.Status)
		}
		rec.Status = in.Status
		rec.Transcript = in.Transcript
		rec.Error = in.Error
		rec.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.STTTask{}, err
	}

	switch task.Status {
	case domain.STTStatusDone:
		s.log.Info("stt task done", "session_id", sessionID, "task_id", taskID)
		s.notifier.STTTaskDone(task)
	case domain.STTStatusFailed:
		message := "STT transcription failed"
		if in.Error != nil && *in.Error != "" {
			message = *in.Error
		}
		s.log.Warn("stt task failed", "session_id", sessionID, "task_id", taskID, "error", message)
		s.notifier.STTFailed(sessionID, message)
	}
	return task, nil
}
