package location

import (
	"time"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
	"github.com/harshit001122/Tracking-system/internal/shared/clock"
)

// Sample is one recorded position. Samples are never modified once stored.
type Sample struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Address   string   `json:"address"`
	Timestamp string   `json:"timestamp"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Input is a Sample as received from a client. Pointers let a missing
// coordinate be told apart from a legitimate zero.
type Input struct {
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Address   string   `json:"address"`
	Timestamp string   `json:"timestamp"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Sample validates the input and converts it. A missing timestamp is filled
// from now; a supplied one is kept as is.
func (in *Input) Sample(now time.Time) (Sample, error) {
	if in == nil {
		return Sample{}, apperr.Validation("Location is required")
	}
	if in.Lat == nil || in.Lng == nil {
		return Sample{}, apperr.Validation("Location requires lat and lng")
	}

	s := Sample{
		Lat:       *in.Lat,
		Lng:       *in.Lng,
		Address:   in.Address,
		Timestamp: in.Timestamp,
	}
	if in.Accuracy != nil {
		acc := *in.Accuracy
		s.Accuracy = &acc
	}
	if s.Timestamp == "" {
		s.Timestamp = clock.ISO(now)
	}
	return s, nil
}

// Clone returns a copy that shares no memory with s.
func (s Sample) Clone() Sample {
	if s.Accuracy != nil {
		acc := *s.Accuracy
		s.Accuracy = &acc
	}
	return s
}
