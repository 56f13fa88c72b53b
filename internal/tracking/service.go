package tracking

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/harshit001122/Tracking-system/internal/metrics"
	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
	"github.com/harshit001122/Tracking-system/internal/shared/clock"
	"github.com/harshit001122/Tracking-system/internal/shared/location"
	"github.com/harshit001122/Tracking-system/internal/stream"
)

const (
	EventCreated  = "session.created"
	EventLocation = "session.location"
	EventUpdated  = "session.updated"
	EventDeleted  = "session.deleted"
)

type Service struct {
	store *Store
	hub   *stream.Hub
	now   clock.Func
}

// NewService builds the session lifecycle. hub may be nil.
func NewService(store *Store, hub *stream.Hub) *Service {
	return &Service{store: store, hub: hub, now: clock.Now}
}

func (s *Service) Create(ctx context.Context, employeeID string, start *location.Input) (Session, error) {
	if employeeID == "" || start == nil {
		return Session{}, apperr.Validation("Employee ID and start location are required")
	}
	now := s.now()
	// the start location is always stamped with the session start time
	in := *start
	in.Timestamp = ""
	sample, err := in.Sample(now)
	if err != nil {
		return Session{}, err
	}

	session := Session{
		EmployeeID:    employeeID,
		StartTime:     now,
		StartLocation: sample,
		Status:        StatusActive,
	}
	session.appendSample(sample.Clone())

	created := s.store.Insert(session)
	s.publish(created.ID, EventCreated, created)
	return created, nil
}

func (s *Service) List(ctx context.Context, f SessionFilter) ([]Session, error) {
	if f.Limit != nil && *f.Limit < 0 {
		return nil, apperr.Validation("limit must not be negative")
	}

	var out []Session
	for _, session := range s.store.Snapshot() {
		if f.EmployeeID != "" && session.EmployeeID != f.EmployeeID {
			continue
		}
		if f.Status != "" && session.Status != f.Status {
			continue
		}
		if f.StartDate != nil && session.StartTime.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && session.StartTime.After(*f.EndDate) {
			continue
		}
		out = append(out, session)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})

	if f.Limit != nil && len(out) > *f.Limit {
		out = out[:*f.Limit]
	}
	if out == nil {
		out = []Session{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.store.Get(id)
}

// Update merges patch into the session. The first transition into completed
// fixes EndTime and Duration; later completions leave them untouched.
func (s *Service) Update(ctx context.Context, id string, patch SessionPatch) (Session, error) {
	if patch.Status != nil && strings.TrimSpace(*patch.Status) == "" {
		return Session{}, apperr.Validation("Status must not be empty")
	}
	if patch.EmployeeID != nil && *patch.EmployeeID == "" {
		return Session{}, apperr.Validation("Employee ID must not be empty")
	}

	updated, err := s.store.Modify(id, func(session *Session) error {
		if patch.EmployeeID != nil {
			session.EmployeeID = *patch.EmployeeID
		}
		if patch.Status != nil {
			session.Status = *patch.Status
		}
		session.complete(s.now)
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	s.publish(updated.ID, EventUpdated, updated)
	return updated, nil
}

func (s *Service) AppendLocation(ctx context.Context, id string, in *location.Input) (Session, error) {
	sample, err := in.Sample(s.now())
	if err != nil {
		return Session{}, err
	}

	var added float64
	updated, err := s.store.Modify(id, func(session *Session) error {
		added = session.appendSample(sample)
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	metrics.RoutePoints.Inc()
	metrics.RouteDistance.Observe(added)
	s.publish(updated.ID, EventLocation, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.publish(id, EventDeleted, map[string]string{"id": id})
	return nil
}

func (s *Service) Summary(ctx context.Context, id string) (Summary, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return Summary{}, err
	}

	end := s.now()
	if session.EndTime != nil {
		end = *session.EndTime
	}
	duration := end.Sub(session.StartTime)
	avgSpeed := 0.0
	if duration.Seconds() > 0 {
		avgSpeed = session.TotalDistance / duration.Seconds()
	}

	return Summary{
		SessionID:     session.ID,
		PointCount:    len(session.Route),
		DistanceM:     session.TotalDistance,
		DurationSec:   int64(duration / time.Second),
		AverageSpeedM: avgSpeed,
	}, nil
}

func (s *Service) Route(ctx context.Context, id string) ([]location.Sample, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return session.Route, nil
}

func (s *Service) publish(topic, eventType string, data any) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(topic, stream.Event{Type: eventType, Data: data})
}
