package services

import (
	"sort"
	"time"

	"github.com/astra-capstone/astra-backend/internal/domain"
	"github.com/astra-capstone/astra-backend/internal/platform/apierr"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/store"
)

const defaultTelemetryLimit = 1000

type TelemetryCreateInput struct {
	Timestamp time.Time `json:"timestamp" binding:"required"`
	Channel   string    `json:"channel" binding:"required"`
	Value     *float64  `json:"value" binding:"required"`
	Unit      *string   `json:"unit"`
}

type TelemetryBatchInput struct {
	Data []TelemetryCreateInput `json:"data" binding:"required,dive"`
}

type TelemetryListFilter struct {
	Channel string
	From    *time.Time
	To      *time.Time
	Limit   int
}

type TelemetryService interface {
	Create(sessionID string, in TelemetryCreateInput) (domain.TelemetrySample, error)
	CreateBatch(sessionID string, in TelemetryBatchInput) (int, error)
	List(sessionID string, filter TelemetryListFilter) ([]domain.TelemetrySample, error)
	Latest(sessionID, channel string) (domain.TelemetrySample, error)
	Channels(sessionID string) ([]string, error)
}

type telemetryService struct {
	store *store.Store
	log   *logger.Logger
}

func NewTelemetryService(st *store.Store, log *logger.Logger) TelemetryService {
	return &telemetryService{
		store: st,
		log:   log.With("service", "TelemetryService"),
	}
}

func (s *telemetryService) Create(sessionID string, in TelemetryCreateInput) (domain.TelemetrySample, error) {
	if !s.store.SessionExists(sessionID) {
		return domain.TelemetrySample{}, apierr.NotFound("Session %s not found", sessionID)
	}
	sample := buildSample(sessionID, in)
	s.store.AppendTelemetry(sample)
	return sample, nil
}

func (s *telemetryService) CreateBatch(sessionID string, in TelemetryBatchInput) (int, error) {
	if !s.store.SessionExists(sessionID) {
		return 0, apierr.NotFound("Session %s not found", sessionID)
	}
	for _, item := range in.Data {
		s.store.AppendTelemetry(buildSample(sessionID, item))
	}
	s.log.Debug("telemetry batch ingested", "session_id", sessionID, "count", len(in.Data))
	return len(in.Data), nil
}

func buildSample(sessionID string, in TelemetryCreateInput) domain.TelemetrySample {
	return domain.TelemetrySample{
		ID:        newID("tel"),
		SessionID: sessionID,
		Timestamp: in.Timestamp.UTC(),
		Channel:   in.Channel,
		Value:     *in.Value,
		Unit:      in.Unit,
	}
}

// List returns matching samples newest first, capped at filter.Limit
// (default 1000). From/to bounds are inclusive.
func (s *telemetryService) List(sessionID string, filter TelemetryListFilter) ([]domain.TelemetrySample, error) {
	if !s.store.SessionExists(sessionID) {
		return nil, apierr.NotFound("Session %s not found", sessionID)
	}

	samples := s.store.TelemetryBySession(sessionID)
	filtered := samples[:0]
	for _, t := range samples {
		if filter.Channel != "" && t.Channel != filter.Channel {
			continue
		}
		if filter.From != nil && t.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.Timestamp.After(*filter.To) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultTelemetryLimit
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// Latest returns the most recent sample for channel. Samples sharing a
// timestamp tie-break by insertion order; the later sample wins.
func (s *telemetryService) Latest(sessionID, channel string) (domain.TelemetrySample, error) {
	if !s.store.SessionExists(sessionID) {
		return domain.TelemetrySample{}, apierr.NotFound("Session %s not found", sessionID)
	}

	var best *domain.TelemetrySample
	for _, t := range s.store.TelemetryBySession(sessionID) {
		if t.Channel != channel {
			continue
		}
		t := t
		if best == nil || !t.Timestamp.Before(best.Timestamp) {
			best = &t
		}
	}
	if best == nil {
		return domain.TelemetrySample{}, apierr.NotFound("No telemetry found for channel: %s", channel)
	}
	return *best, nil
}

// Channels lists the distinct channel names seen in the session, sorted.
func (s *telemetryService) Channels(sessionID string) ([]string, error) {
	if !s.store.SessionExists(sessionID) {
		return nil, apierr.NotFound("Session %s not found", sessionID)
	}

	seen := make(map[string]bool)
	for _, t := range s.store.TelemetryBySession(sessionID) {
		seen[t.Channel] = true
	}
	channels := make([]string, 0, len(seen))
	for ch := range seen {
		channels = append(channels, ch)
	}
	sort.Strings(channels)
	return channels, nil
}
