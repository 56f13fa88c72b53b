package idgen

import (
	"fmt"
	"sync"
)

// Generator hands out identifiers. Implementations must never repeat a value.
type Generator interface {
	Next() string
}

// Sequence produces prefix_001, prefix_002, ... for the lifetime of the process.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s_%03d", s.prefix, s.next)
	s.next++
	return id
}
