package employee

import (
	"context"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
	"github.com/harshit001122/Tracking-system/internal/shared/clock"
)

var errEmployeeNotFound = apperr.NotFound("Employee not found")

// Service joins directory records with locally tracked presence.
type Service struct {
	dir      Directory
	presence *Presence
	now      clock.Func
}

func NewService(dir Directory, presence *Presence) *Service {
	return &Service{dir: dir, presence: presence, now: clock.Now}
}

func (s *Service) List(ctx context.Context) []Employee {
	users := s.dir.Users(ctx)
	out := make([]Employee, 0, len(users))
	for i, u := range users {
		out = append(out, s.toEmployee(u, i))
	}
	return out
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	user, index, err := s.find(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	return s.toEmployee(user, index), nil
}

func (s *Service) UpdateLocation(ctx context.Context, id string, in LocationUpdate) (Employee, error) {
	if in.Lat == nil || in.Lng == nil {
		return Employee{}, apperr.Validation("Latitude and longitude are required")
	}
	user, index, err := s.find(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	s.presence.SetLocation(id, Location{
		Lat:       *in.Lat,
		Lng:       *in.Lng,
		Address:   Label(*in.Lat, *in.Lng),
		Timestamp: clock.ISO(s.now()),
	})
	return s.toEmployee(user, index), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, in StatusUpdate) (Employee, error) {
	switch in.Status {
	case StatusActive, StatusInactive, StatusMeeting:
	default:
		return Employee{}, apperr.Validation("Status must be one of active, inactive, meeting")
	}
	user, index, err := s.find(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	s.presence.SetStatus(id, in.Status, in.CurrentTask, s.now())
	return s.toEmployee(user, index), nil
}

// Refresh forgets all presence and seeds it again from the directory.
func (s *Service) Refresh(ctx context.Context) []Employee {
	s.presence.Reset()
	return s.List(ctx)
}

func (s *Service) find(ctx context.Context, id string) (ExternalUser, int, error) {
	for i, u := range s.dir.Users(ctx) {
		if u.ID == id {
			return u, i, nil
		}
	}
	return ExternalUser{}, 0, errEmployeeNotFound
}

func (s *Service) toEmployee(u ExternalUser, index int) Employee {
	st := s.presence.Ensure(u.ID, index, s.now())

	device := u.ID
	if len(device) > 6 {
		device = device[len(device)-6:]
	}
	e := Employee{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.MobileNumber,
		Status:      st.Status,
		Location:    st.Location,
		LastUpdate:  st.LastUpdate,
		CurrentTask: st.CurrentTask,
		DeviceID:    "device_" + device,
		Designation: u.Designation,
		Department:  u.Department,
	}
	if len(u.CompanyName) > 0 {
		e.CompanyName = u.CompanyName[0].CompanyName
	}
	if u.Report != nil {
		e.ReportTo = u.Report.Name
	}
	return e
}
