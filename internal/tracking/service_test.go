package tracking

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
	"github.com/harshit001122/Tracking-system/internal/shared/geo"
	"github.com/harshit001122/Tracking-system/internal/shared/idgen"
	"github.com/harshit001122/Tracking-system/internal/shared/location"
	"github.com/harshit001122/Tracking-system/internal/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestService(hub *stream.Hub) (*Service, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(NewStore(idgen.NewSequence("session")), hub)
	svc.now = clk.now
	return svc, clk
}

func loc(lat, lng float64, address string) *location.Input {
	return &location.Input{Lat: &lat, Lng: &lng, Address: address}
}

func TestCreateSession(t *testing.T) {
	svc, clk := newTestService(nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, "e1", loc(28.6139, 77.2090, "Delhi"))
	require.NoError(t, err)

	assert.Equal(t, "session_001", session.ID)
	assert.Equal(t, "e1", session.EmployeeID)
	assert.Equal(t, StatusActive, session.Status)
	assert.Zero(t, session.TotalDistance)
	assert.True(t, clk.t.Equal(session.StartTime))
	assert.Equal(t, "2024-05-10T09:00:00.000Z", session.StartLocation.Timestamp)
	require.Len(t, session.Route, 1)
	assert.Equal(t, session.StartLocation, session.Route[0])
	assert.Nil(t, session.EndTime)
	assert.Nil(t, session.Duration)

	second, err := svc.Create(ctx, "e2", loc(0, 0, ""))
	require.NoError(t, err)
	assert.Equal(t, "session_002", second.ID)
}

func TestCreateSessionValidation(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", loc(1, 1, ""))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, "e1", nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	lat := 1.0
	_, err = svc.Create(ctx, "e1", &location.Input{Lat: &lat})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	sessions, err := svc.List(ctx, SessionFilter{})
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// failed creations do not consume ids
	created, err := svc.Create(ctx, "e1", loc(1, 1, ""))
	require.NoError(t, err)
	assert.Equal(t, "session_001", created.ID)
}

func TestDelhiMumbaiScenario(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, "e1", loc(28.6139, 77.2090, "Delhi"))
	require.NoError(t, err)
	require.Equal(t, "session_001", session.ID)
	require.Zero(t, session.TotalDistance)

	session, err = svc.AppendLocation(ctx, session.ID, loc(19.0760, 72.8777, "Mumbai"))
	require.NoError(t, err)
	assert.InDelta(t, 1148094.87, session.TotalDistance, 1)
	assert.Len(t, session.Route, 2)
}

func TestAppendLocationAccumulatesPolyline(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	p0 := [2]float64{12.9716, 77.5946}
	p1 := [2]float64{13.0827, 80.2707}
	p2 := [2]float64{17.3850, 78.4867}

	session, err := svc.Create(ctx, "e1", loc(p0[0], p0[1], "Bangalore"))
	require.NoError(t, err)

	session, err = svc.AppendLocation(ctx, session.ID, loc(p1[0], p1[1], "Chennai"))
	require.NoError(t, err)
	d01 := geo.DistanceMeters(p0[0], p0[1], p1[0], p1[1])
	assert.Equal(t, d01, session.TotalDistance)

	session, err = svc.AppendLocation(ctx, session.ID, loc(p2[0], p2[1], "Hyderabad"))
	require.NoError(t, err)
	d12 := geo.DistanceMeters(p1[0], p1[1], p2[0], p2[1])
	assert.Equal(t, d01+d12, session.TotalDistance)
	assert.Greater(t, session.TotalDistance, geo.DistanceMeters(p0[0], p0[1], p2[0], p2[1]))
	assert.Len(t, session.Route, 3)
}

func TestAppendLocationRouteLength(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, "e1", loc(10, 10, ""))
	require.NoError(t, err)

	var sum float64
	prevLat, prevLng := 10.0, 10.0
	for i := 1; i <= 25; i++ {
		lat, lng := 10+float64(i)*0.01, 10-float64(i)*0.02
		session, err = svc.AppendLocation(ctx, session.ID, loc(lat, lng, ""))
		require.NoError(t, err)
		sum += geo.DistanceMeters(prevLat, prevLng, lat, lng)
		prevLat, prevLng = lat, lng
	}
	assert.Len(t, session.Route, 26)
	assert.InDelta(t, sum, session.TotalDistance, 1e-6)
	assert.False(t, math.IsNaN(session.TotalDistance))
}

func TestAppendLocationTimestamps(t *testing.T) {
	svc, clk := newTestService(nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, "e1", loc(1, 1, ""))
	require.NoError(t, err)

	clk.advance(time.Minute)
	session, err = svc.AppendLocation(ctx, session.ID, loc(1.1, 1.1, ""))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10T09:01:00.000Z", session.Route[1].Timestamp)

	early := loc(1.2, 1.2, "")
	early.Timestamp = "2020-01-01T00:00:00.000Z"
	session, err = svc.AppendLocation(ctx, session.ID, early)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T00:00:00.000Z", session.Route[2].Timestamp)
}

func TestAppendLocationErrors(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.AppendLocation(ctx, "session_404", loc(1, 1, ""))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	session, err := svc.Create(ctx, "e1", loc(1, 1, ""))
	require.NoError(t, err)

	_, err = svc.AppendLocation(ctx, session.ID, nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	lng := 3.0
	_, err = svc.AppendLocation(ctx, session.ID, &location.Input{Lng: &lng})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Route, 1)
	assert.Zero(t, stored.TotalDistance)
}

func TestReturnedSessionIsACopy(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, "e1", loc(1, 1, "origin"))
	require.NoError(t, err)
	session.Route[0].Address = "tampered"
	session.Route = append(session.Route, location.Sample{})

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "origin", stored.Route[0].Address)
	assert.Len(t, stored.Route, 1)
}

func TestCompleteSessionDerivesTiming(t *testing.T) {
	svc, clk := newTestService(nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, "e1", loc(1, 1, ""))
	require.NoError(t, err)

	paused := StatusPaused
	clk.advance(30 * time.Second)
	session, err = svc.Update(ctx, session.ID, SessionPatch{Status: &paused})
	require.NoError(t, err)
	assert.Equal(t, StatusPaused, session.Status)
	assert.Nil(t, session.EndTime)

	completed := StatusCompleted
	clk.advance(90*time.Second + 999*time.Millisecond)
	session, err = svc.Update(ctx, session.ID, SessionPatch{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, session.EndTime)
	require.NotNil(t, session.Duration)
	assert.True(t, clk.t.Equal(*session.EndTime))
	assert.Equal(t, int64(120), *session.Duration)

	firstEnd := *session.EndTime
	clk.advance(time.Hour)
	session, err = svc.Update(ctx, session.ID, SessionPatch{Status: &completed})
	require.NoError(t, err)
	assert.True(t, firstEnd.Equal(*session.EndTime))
	assert.Equal(t, int64(120), *session.Duration)

	active := StatusActive
	session, err = svc.Update(ctx, session.ID, SessionPatch{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, session.Status)
	assert.True(t, firstEnd.Equal(*session.EndTime))
}

func TestUpdateSessionErrors(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	completed := StatusCompleted
	_, err := svc.Update(ctx, "session_404", SessionPatch{Status: &completed})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	session, err := svc.Create(ctx, "e1", loc(1, 1, ""))
	require.NoError(t, err)

	blank := "  "
	_, err = svc.Update(ctx, session.ID, SessionPatch{Status: &blank})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	employee := "e9"
	updated, err := svc.Update(ctx, session.ID, SessionPatch{EmployeeID: &employee})
	require.NoError(t, err)
	assert.Equal(t, "e9", updated.EmployeeID)
	assert.Equal(t, StatusActive, updated.Status)
}

func TestListSessionsFilterSortLimit(t *testing.T) {
	svc, clk := newTestService(nil)
	ctx := context.Background()

	d1 := clk.t.Add(time.Hour)
	d2 := clk.t.Add(3 * time.Hour)

	var ids []string
	for i, emp := range []string{"e1", "e2", "e1", "e1", "e1"} {
		s, err := svc.Create(ctx, emp, loc(1, 1, ""))
		require.NoError(t, err)
		ids = append(ids, s.ID)
		if i < 4 {
			clk.advance(time.Hour)
		}
	}
	// start times: 09:00, 10:00, 11:00, 12:00, 13:00
	completed := StatusCompleted
	_, err := svc.Update(ctx, ids[2], SessionPatch{Status: &completed})
	require.NoError(t, err)

	all, err := svc.List(ctx, SessionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].StartTime.After(all[i-1].StartTime))
	}
	assert.Equal(t, ids[4], all[0].ID)

	inRange, err := svc.List(ctx, SessionFilter{StartDate: &d1, EndDate: &d2})
	require.NoError(t, err)
	got := []string{}
	for _, s := range inRange {
		got = append(got, s.ID)
		assert.False(t, s.StartTime.Before(d1))
		assert.False(t, s.StartTime.After(d2))
	}
	assert.Equal(t, []string{ids[3], ids[2], ids[1]}, got)

	byEmployee, err := svc.List(ctx, SessionFilter{EmployeeID: "e1", Status: StatusActive})
	require.NoError(t, err)
	assert.Len(t, byEmployee, 3)

	two, zero, minus := 2, 0, -1
	limited, err := svc.List(ctx, SessionFilter{EmployeeID: "e1", Limit: &two})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, ids[4], limited[0].ID)
	assert.Equal(t, ids[3], limited[1].ID)

	truncated, err := svc.List(ctx, SessionFilter{Limit: &zero})
	require.NoError(t, err)
	assert.NotNil(t, truncated)
	assert.Empty(t, truncated)

	none, err := svc.List(ctx, SessionFilter{EmployeeID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.List(ctx, SessionFilter{Limit: &minus})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteSession(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, "e1", loc(1, 1, ""))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, session.ID))
	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, session.ID), apperr.ErrNotFound)

	// ids are never reused after a delete
	next, err := svc.Create(ctx, "e1", loc(1, 1, ""))
	require.NoError(t, err)
	assert.Equal(t, "session_002", next.ID)
}

func TestSummaryAndRoute(t *testing.T) {
	svc, clk := newTestService(nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, "e1", loc(0, 0, ""))
	require.NoError(t, err)
	session, err = svc.AppendLocation(ctx, session.ID, loc(0, 0.01, ""))
	require.NoError(t, err)

	clk.advance(100 * time.Second)
	summary, err := svc.Summary(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PointCount)
	assert.Equal(t, int64(100), summary.DurationSec)
	assert.InDelta(t, session.TotalDistance/100, summary.AverageSpeedM, 1e-9)

	completed := StatusCompleted
	_, err = svc.Update(ctx, session.ID, SessionPatch{Status: &completed})
	require.NoError(t, err)
	clk.advance(time.Hour)
	summary, err = svc.Summary(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), summary.DurationSec)

	route, err := svc.Route(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, route, 2)

	_, err = svc.Summary(ctx, "session_404")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.Route(ctx, "session_404")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestServicePublishesEvents(t *testing.T) {
	hub := stream.NewHub(nil)
	svc, _ := newTestService(hub)
	ctx := context.Background()

	client := hub.Register("session_001")
	defer hub.Unregister(client)

	_, err := svc.Create(ctx, "e1", loc(1, 1, ""))
	require.NoError(t, err)
	_, err = svc.AppendLocation(ctx, "session_001", loc(1.5, 1.5, ""))
	require.NoError(t, err)

	for _, want := range []string{EventCreated, EventLocation} {
		select {
		case msg := <-client.Send:
			assert.Contains(t, string(msg), `"type":"`+want+`"`)
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for %s", want)
		}
	}
}
