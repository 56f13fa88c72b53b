package tracking

import (
	"sync"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
	"github.com/harshit001122/Tracking-system/internal/shared/idgen"
)

var errSessionNotFound = apperr.NotFound("Tracking session not found")

// Store owns every tracking session held by the process. All access goes
// through its lock, so each operation is observed whole or not at all.
type Store struct {
	mu       sync.Mutex
	ids      idgen.Generator
	sessions map[string]*Session
	order    []string
}

func NewStore(ids idgen.Generator) *Store {
	return &Store{
		ids:      ids,
		sessions: map[string]*Session{},
	}
}

// Insert assigns the next id to s and stores it.
func (st *Store) Insert(s Session) Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ID = st.ids.Next()
	st.sessions[s.ID] = &s
	st.order = append(st.order, s.ID)
	return s.clone()
}

func (st *Store) Get(id string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return Session{}, errSessionNotFound
	}
	return s.clone(), nil
}

// Modify runs fn against the stored session under the lock. fn must finish
// validating before it mutates anything.
func (st *Store) Modify(id string, fn func(*Session) error) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return Session{}, errSessionNotFound
	}
	if err := fn(s); err != nil {
		return Session{}, err
	}
	return s.clone(), nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return errSessionNotFound
	}
	delete(st.sessions, id)
	for i, existing := range st.order {
		if existing == id {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
	return nil
}

// Snapshot returns copies of all sessions, newest insertion first.
func (st *Store) Snapshot() []Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]Session, 0, len(st.order))
	for i := len(st.order) - 1; i >= 0; i-- {
		out = append(out, st.sessions[st.order[i]].clone())
	}
	return out
}
