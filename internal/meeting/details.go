package meeting

import (
	"strings"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
)

var (
	errDiscussionRequired = apperr.Validation("Discussion details are required")
	errCustomerRequired   = apperr.Validation("At least one customer contact is required")
)

func (d *Details) hasDiscussion() bool {
	return d != nil && strings.TrimSpace(d.Discussion) != ""
}

// normalize folds the flat legacy contact into Customers when no list was
// sent. It reports false when neither form names a customer.
func (d *Details) normalize() bool {
	if len(d.Customers) > 0 {
		return true
	}
	if d.CustomerName == "" || d.CustomerEmployeeName == "" {
		return false
	}
	d.Customers = []CustomerContact{{
		CustomerName:         d.CustomerName,
		CustomerEmployeeName: d.CustomerEmployeeName,
		CustomerEmail:        d.CustomerEmail,
		CustomerMobile:       d.CustomerMobile,
		CustomerDesignation:  d.CustomerDesignation,
		CustomerDepartment:   d.CustomerDepartment,
	}}
	return true
}

func (d Details) clone() Details {
	if d.Customers != nil {
		d.Customers = append([]CustomerContact(nil), d.Customers...)
	}
	return d
}

func (d *Details) cloneRef() *Details {
	if d == nil {
		return nil
	}
	c := d.clone()
	return &c
}

func (l LeadInfo) clone() LeadInfo {
	if l == nil {
		return nil
	}
	return cloneValue(map[string]any(l)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

func (m Meeting) clone() Meeting {
	m.Location = m.Location.Clone()
	if m.EndTime != nil {
		end := *m.EndTime
		m.EndTime = &end
	}
	m.LeadInfo = m.LeadInfo.clone()
	m.MeetingDetails = m.MeetingDetails.cloneRef()
	return m
}

func (h HistoryEntry) clone() HistoryEntry {
	h.MeetingDetails = h.MeetingDetails.clone()
	h.LeadInfo = h.LeadInfo.clone()
	return h
}
