package meeting

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
	"github.com/harshit001122/Tracking-system/internal/shared/clock"
	"github.com/harshit001122/Tracking-system/internal/shared/location"
)

const (
	defaultHistoryPage  = 1
	defaultHistoryLimit = 10
	auditTimeout        = 3 * time.Second
)

type Service struct {
	store *Store
	audit AuditSink
	now   clock.Func
}

// NewService wires the meeting lifecycle. audit may be nil.
func NewService(store *Store, audit AuditSink) *Service {
	return &Service{store: store, audit: audit, now: clock.Now}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Meeting, error) {
	if in.EmployeeID == "" || in.Location == nil {
		return Meeting{}, apperr.Validation("Employee ID and location are required")
	}
	now := s.now()
	loc := *in.Location
	loc.Timestamp = ""
	sample, err := loc.Sample(now)
	if err != nil {
		return Meeting{}, err
	}

	return s.store.Insert(Meeting{
		EmployeeID: in.EmployeeID,
		Location:   sample,
		StartTime:  now,
		ClientName: in.ClientName,
		Notes:      in.Notes,
		Status:     StatusInProgress,
		LeadID:     in.LeadID,
		LeadInfo:   in.LeadInfo.clone(),
	}), nil
}

// List filters meetings and sorts the result by start time, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]Meeting, error) {
	out := []Meeting{}
	for _, m := range s.store.Snapshot() {
		if f.EmployeeID != "" && m.EmployeeID != f.EmployeeID {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.StartDate != nil && m.StartTime.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && m.StartTime.After(*f.EndDate) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Meeting, error) {
	return s.store.Get(id)
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (Meeting, error) {
	if patch.EmployeeID != nil && *patch.EmployeeID == "" {
		return Meeting{}, apperr.Validation("Employee ID must not be empty")
	}
	if patch.MeetingDetails != nil && !patch.MeetingDetails.hasDiscussion() {
		return Meeting{}, errDiscussionRequired
	}
	var moved *location.Sample
	if patch.Location != nil {
		loc := *patch.Location
		loc.Timestamp = ""
		sample, err := loc.Sample(s.now())
		if err != nil {
			return Meeting{}, err
		}
		moved = &sample
	}

	return s.store.Modify(id, func(m *Meeting) error {
		if patch.EmployeeID != nil {
			m.EmployeeID = *patch.EmployeeID
		}
		if moved != nil {
			m.Location = moved.Clone()
		}
		if patch.ClientName != nil {
			m.ClientName = *patch.ClientName
		}
		if patch.Notes != nil {
			m.Notes = *patch.Notes
		}
		if patch.Status != nil {
			m.Status = *patch.Status
		}
		if patch.LeadID != nil {
			m.LeadID = *patch.LeadID
		}
		if patch.LeadInfo != nil {
			m.LeadInfo = patch.LeadInfo.clone()
		}
		if patch.MeetingDetails != nil {
			details := patch.MeetingDetails.clone()
			details.normalize()
			m.MeetingDetails = &details
		}
		if m.Status == StatusCompleted && m.EndTime == nil {
			end := s.now()
			m.EndTime = &end
		}
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(id)
}

// RecordHistory appends a finished customer interaction to the history.
func (s *Service) RecordHistory(ctx context.Context, in HistoryInput) (HistoryEntry, error) {
	if in.SessionID == "" || in.EmployeeID == "" || in.MeetingDetails == nil {
		return HistoryEntry{}, apperr.Validation("Session ID, employee ID, and meeting details are required")
	}
	if !in.MeetingDetails.hasDiscussion() {
		return HistoryEntry{}, errDiscussionRequired
	}
	details := in.MeetingDetails.clone()
	if !details.normalize() {
		return HistoryEntry{}, errCustomerRequired
	}

	entry := s.store.AppendHistory(HistoryEntry{
		SessionID:      in.SessionID,
		EmployeeID:     in.EmployeeID,
		MeetingDetails: details,
		Timestamp:      s.now(),
		LeadID:         in.LeadID,
		LeadInfo:       in.LeadInfo.clone(),
	})
	s.mirror(ctx, entry)
	return entry, nil
}

func (s *Service) mirror(ctx context.Context, e HistoryEntry) {
	if s.audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := s.audit.Record(ctx, e); err != nil {
		slog.Warn("meeting history audit failed", "history_id", e.ID, "error", err)
	}
}

func (s *Service) ListHistory(ctx context.Context, q HistoryQuery) (HistoryPage, error) {
	if q.Page == 0 {
		q.Page = defaultHistoryPage
	}
	if q.Limit == 0 {
		q.Limit = defaultHistoryLimit
	}
	if q.Page < 1 || q.Limit < 1 {
		return HistoryPage{}, apperr.Validation("page and limit must be positive")
	}

	matched := []HistoryEntry{}
	for _, e := range s.store.HistorySnapshot() {
		if q.EmployeeID != "" && e.EmployeeID != q.EmployeeID {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := len(matched)
	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return HistoryPage{
		Meetings:   matched[start:end],
		Total:      total,
		Page:       q.Page,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}, nil
}
