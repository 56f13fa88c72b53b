package employee

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/harshit001122/Tracking-system/internal/shared/clock"
)

// State is what this service knows about an employee beyond the
// directory record.
type State struct {
	Status      string
	Location    Location
	LastUpdate  string
	CurrentTask string
}

// Presence keeps the live state of every employee seen so far.
type Presence struct {
	mu     sync.Mutex
	states map[string]State
	rnd    *rand.Rand
}

func NewPresence(rnd *rand.Rand) *Presence {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Presence{states: map[string]State{}, rnd: rnd}
}

// Ensure returns the state for userID, seeding it from the user's position
// in the directory the first time the user is seen.
func (p *Presence) Ensure(userID string, index int, now time.Time) State {
	p.mu.Lock()
	defer p.mu.Unlock()

	if st, ok := p.states[userID]; ok {
		return st
	}
	st := p.seed(index, now)
	p.states[userID] = st
	return st
}

func (p *Presence) seed(index int, now time.Time) State {
	base := cities.Seeds[index%len(cities.Seeds)]
	// up to about 5 km of jitter
	lat := base.Lat + (p.rnd.Float64()-0.5)*0.1
	lng := base.Lng + (p.rnd.Float64()-0.5)*0.1

	st := State{
		Status:     StatusActive,
		Location:   Location{Lat: lat, Lng: lng, Address: base.Name, Timestamp: clock.ISO(now)},
		LastUpdate: fmt.Sprintf("%d minutes ago", p.rnd.Intn(15)+1),
	}
	switch index {
	case 0:
		st.CurrentTask = "Client meeting"
	case 1:
		st.Status = StatusMeeting
		st.CurrentTask = "Equipment installation"
	case 3:
		st.Status = StatusInactive
	}
	return st
}

// SetLocation records a reported position and marks the employee active.
func (p *Presence) SetLocation(userID string, loc Location) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.states[userID]
	st.Location = loc
	st.Status = StatusActive
	st.LastUpdate = "Just now"
	p.states[userID] = st
}

// SetStatus changes the status. A blank task keeps the current one.
func (p *Presence) SetStatus(userID, status, task string, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.states[userID]
	if !ok {
		st.Location = Location{
			Lat:       defaultLocation.Lat,
			Lng:       defaultLocation.Lng,
			Address:   defaultLocation.Name,
			Timestamp: clock.ISO(now),
		}
	}
	st.Status = status
	if task != "" {
		st.CurrentTask = task
	}
	st.LastUpdate = "Just now"
	p.states[userID] = st
}

func (p *Presence) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states = map[string]State{}
}
