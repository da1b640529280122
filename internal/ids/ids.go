// Package ids generates opaque identifiers for promos, shops and redemption
// records.
package ids

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique identifiers.
type Generator interface {
	NewID() string
}

// UUID generates random v4 identifiers.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.New().String()
}

// Sequence returns predictable identifiers. Test helper.
type Sequence struct {
	Prefix string
	n      int
}

func (s *Sequence) NewID() string {
	s.n++
	return fmt.Sprintf("%s%d", s.Prefix, s.n)
}
