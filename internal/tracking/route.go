package tracking

import (
	"time"

	"github.com/harshit001122/Tracking-system/internal/shared/geo"
	"github.com/harshit001122/Tracking-system/internal/shared/location"
)

// appendSample extends the route and returns the distance it added. The first
// sample of a route adds nothing; every later one adds the leg from its
// predecessor, so TotalDistance is always the length of the polyline.
func (s *Session) appendSample(sample location.Sample) float64 {
	var added float64
	if n := len(s.Route); n > 0 {
		prev := s.Route[n-1]
		added = geo.DistanceMeters(prev.Lat, prev.Lng, sample.Lat, sample.Lng)
		s.TotalDistance += added
	}
	s.Route = append(s.Route, sample)
	return added
}

// complete stamps EndTime and Duration the first time a session is completed.
func (s *Session) complete(now func() time.Time) {
	if s.Status != StatusCompleted || s.EndTime != nil {
		return
	}
	end := now()
	duration := int64(end.Sub(s.StartTime) / time.Second)
	s.EndTime = &end
	s.Duration = &duration
}

func (s Session) clone() Session {
	s.StartLocation = s.StartLocation.Clone()
	route := make([]location.Sample, len(s.Route))
	for i, sample := range s.Route {
		route[i] = sample.Clone()
	}
	s.Route = route
	if s.EndTime != nil {
		end := *s.EndTime
		s.EndTime = &end
	}
	if s.Duration != nil {
		d := *s.Duration
		s.Duration = &d
	}
	return s
}
