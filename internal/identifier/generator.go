package identifier

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces identifiers for new records
type Generator interface {
	Generate() string
}

// UUIDGenerator generates random (version 4) UUID strings
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUID generator
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a fresh UUID string
func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// Sequence is a deterministic generator producing prefix-1, prefix-2, ...
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequence creates a sequence generator with the given prefix
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Generate returns the next identifier in the sequence
func (s *Sequence) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next)
}
