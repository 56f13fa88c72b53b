package tracking

import (
	"encoding/json"
	"time"

	"github.com/harshit001122/Tracking-system/internal/shared/clock"
	"github.com/harshit001122/Tracking-system/internal/shared/location"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

type Session struct {
	ID            string            `json:"id"`
	EmployeeID    string            `json:"employeeId"`
	StartTime     time.Time         `json:"startTime"`
	StartLocation location.Sample   `json:"startLocation"`
	Route         []location.Sample `json:"route"`
	TotalDistance float64           `json:"totalDistance"`
	Status        string            `json:"status"`
	EndTime       *time.Time        `json:"endTime,omitempty"`
	Duration      *int64            `json:"duration,omitempty"`
}

// MarshalJSON writes StartTime and EndTime in the millisecond form used by
// route samples.
func (s Session) MarshalJSON() ([]byte, error) {
	type plain Session
	return json.Marshal(struct {
		plain
		StartTime string  `json:"startTime"`
		EndTime   *string `json:"endTime,omitempty"`
	}{plain(s), clock.ISO(s.StartTime), clock.ISOPtr(s.EndTime)})
}

// SessionPatch lists the fields a client may change. Timing fields are
// derived by the server and cannot be patched.
type SessionPatch struct {
	EmployeeID *string `json:"employeeId"`
	Status     *string `json:"status"`
}

// SessionFilter narrows a session listing. A nil Limit returns every match;
// a non-nil one truncates, zero included.
type SessionFilter struct {
	EmployeeID string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      *int
}

type ListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type Summary struct {
	SessionID     string  `json:"sessionId"`
	PointCount    int     `json:"pointCount"`
	DistanceM     float64 `json:"distanceM"`
	DurationSec   int64   `json:"durationSec"`
	AverageSpeedM float64 `json:"averageSpeedMps"`
}

type RouteResponse struct {
	SessionID string            `json:"sessionId"`
	Route     []location.Sample `json:"route"`
	Total     int               `json:"total"`
}
