package meeting

import (
	"encoding/json"
	"time"

	"github.com/harshit001122/Tracking-system/internal/shared/clock"
	"github.com/harshit001122/Tracking-system/internal/shared/location"
)

const (
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// LeadInfo is whatever the CRM attached to the lead. It is stored and echoed
// back without interpretation.
type LeadInfo map[string]any

type CustomerContact struct {
	CustomerName         string `json:"customerName"`
	CustomerEmployeeName string `json:"customerEmployeeName"`
	CustomerEmail        string `json:"customerEmail,omitempty"`
	CustomerMobile       string `json:"customerMobile,omitempty"`
	CustomerDesignation  string `json:"customerDesignation,omitempty"`
	CustomerDepartment   string `json:"customerDepartment,omitempty"`
}

// Details describes what happened in a meeting. Older clients send a single
// contact through the flat customer* fields instead of Customers.
type Details struct {
	Discussion string            `json:"discussion"`
	Customers  []CustomerContact `json:"customers"`

	CustomerName         string `json:"customerName,omitempty"`
	CustomerEmployeeName string `json:"customerEmployeeName,omitempty"`
	CustomerEmail        string `json:"customerEmail,omitempty"`
	CustomerMobile       string `json:"customerMobile,omitempty"`
	CustomerDesignation  string `json:"customerDesignation,omitempty"`
	CustomerDepartment   string `json:"customerDepartment,omitempty"`
}

type Meeting struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	Location       location.Sample `json:"location"`
	StartTime      time.Time       `json:"startTime"`
	ClientName     string          `json:"clientName,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Status         string          `json:"status"`
	EndTime        *time.Time      `json:"endTime,omitempty"`
	LeadID         string          `json:"leadId,omitempty"`
	LeadInfo       LeadInfo        `json:"leadInfo,omitempty"`
	MeetingDetails *Details        `json:"meetingDetails,omitempty"`
}

func (m Meeting) MarshalJSON() ([]byte, error) {
	type plain Meeting
	return json.Marshal(struct {
		plain
		StartTime string  `json:"startTime"`
		EndTime   *string `json:"endTime,omitempty"`
	}{plain(m), clock.ISO(m.StartTime), clock.ISOPtr(m.EndTime)})
}

type CreateInput struct {
	EmployeeID string          `json:"employeeId"`
	Location   *location.Input `json:"location"`
	ClientName string          `json:"clientName"`
	Notes      string          `json:"notes"`
	LeadID     string          `json:"leadId"`
	LeadInfo   LeadInfo        `json:"leadInfo"`
}

// Patch holds the fields a client may change. EndTime is derived on
// completion and cannot be patched.
type Patch struct {
	EmployeeID     *string         `json:"employeeId"`
	Location       *location.Input `json:"location"`
	ClientName     *string         `json:"clientName"`
	Notes          *string         `json:"notes"`
	Status         *string         `json:"status"`
	LeadID         *string         `json:"leadId"`
	LeadInfo       LeadInfo        `json:"leadInfo"`
	MeetingDetails *Details        `json:"meetingDetails"`
}

type Filter struct {
	EmployeeID string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
}

type ListResponse struct {
	Meetings []Meeting `json:"meetings"`
	Total    int       `json:"total"`
}

type HistoryEntry struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"sessionId"`
	EmployeeID     string    `json:"employeeId"`
	MeetingDetails Details   `json:"meetingDetails"`
	Timestamp      time.Time `json:"timestamp"`
	LeadID         string    `json:"leadId,omitempty"`
	LeadInfo       LeadInfo  `json:"leadInfo,omitempty"`
}

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	type plain HistoryEntry
	return json.Marshal(struct {
		plain
		Timestamp string `json:"timestamp"`
	}{plain(e), clock.ISO(e.Timestamp)})
}

type HistoryInput struct {
	SessionID      string   `json:"sessionId"`
	EmployeeID     string   `json:"employeeId"`
	MeetingDetails *Details `json:"meetingDetails"`
	LeadID         string   `json:"leadId"`
	LeadInfo       LeadInfo `json:"leadInfo"`
}

// HistoryQuery selects one page of history. Zero Page or Limit means the
// default (1 and 10).
type HistoryQuery struct {
	EmployeeID string
	Page       int
	Limit      int
}

type HistoryPage struct {
	Meetings   []HistoryEntry `json:"meetings"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}
