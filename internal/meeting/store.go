package meeting

import (
	"sync"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
	"github.com/harshit001122/Tracking-system/internal/shared/idgen"
)

var errMeetingNotFound = apperr.NotFound("Meeting not found")

// Store holds meetings and the append-only meeting history.
type Store struct {
	mu         sync.Mutex
	meetingIDs idgen.Generator
	historyIDs idgen.Generator
	meetings   map[string]*Meeting
	order      []string
	history    []HistoryEntry
}

func NewStore(meetingIDs, historyIDs idgen.Generator) *Store {
	return &Store{
		meetingIDs: meetingIDs,
		historyIDs: historyIDs,
		meetings:   map[string]*Meeting{},
	}
}

func (st *Store) Insert(m Meeting) Meeting {
	st.mu.Lock()
	defer st.mu.Unlock()

	m.ID = st.meetingIDs.Next()
	st.meetings[m.ID] = &m
	st.order = append(st.order, m.ID)
	return m.clone()
}

func (st *Store) Get(id string) (Meeting, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	m, ok := st.meetings[id]
	if !ok {
		return Meeting{}, errMeetingNotFound
	}
	return m.clone(), nil
}

func (st *Store) Modify(id string, fn func(*Meeting) error) (Meeting, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	m, ok := st.meetings[id]
	if !ok {
		return Meeting{}, errMeetingNotFound
	}
	if err := fn(m); err != nil {
		return Meeting{}, err
	}
	return m.clone(), nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.meetings[id]; !ok {
		return errMeetingNotFound
	}
	delete(st.meetings, id)
	for i, existing := range st.order {
		if existing == id {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
	return nil
}

// Snapshot returns copies of all meetings, newest insertion first. The
// stored order is never changed by readers.
func (st *Store) Snapshot() []Meeting {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]Meeting, 0, len(st.order))
	for i := len(st.order) - 1; i >= 0; i-- {
		out = append(out, st.meetings[st.order[i]].clone())
	}
	return out
}

// AppendHistory assigns the next history id and records e.
func (st *Store) AppendHistory(e HistoryEntry) HistoryEntry {
	st.mu.Lock()
	defer st.mu.Unlock()

	e.ID = st.historyIDs.Next()
	st.history = append(st.history, e.clone())
	return e.clone()
}

// HistorySnapshot returns copies of all history entries, newest first.
func (st *Store) HistorySnapshot() []HistoryEntry {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]HistoryEntry, 0, len(st.history))
	for i := len(st.history) - 1; i >= 0; i-- {
		out = append(out, st.history[i].clone())
	}
	return out
}
