package app

import (
	"sync"

	"github.com/utakatalp/league-console/internal/view"
)

// token identifies one read dispatched for a region.
type token struct {
	region view.Region
	n      uint64
}

// sequencer hands out increasing tokens per region so that only the response
// to the latest request for a region is rendered.
type sequencer struct {
	mu     sync.Mutex
	latest map[view.Region]uint64
}

func newSequencer() *sequencer {
	return &sequencer{latest: make(map[view.Region]uint64)}
}

func (s *sequencer) issue(r view.Region) token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[r]++
	return token{region: r, n: s.latest[r]}
}

// apply runs fn only if t is still the latest token for its region. fn runs
// under the sequencer lock so a newer issue cannot interleave.
func (s *sequencer) apply(t token, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest[t.region] != t.n {
		return false
	}
	fn()
	return true
}

// current reports whether any of ts is still the latest for its region.
func (s *sequencer) current(ts ...token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range ts {
		if s.latest[t.region] == t.n {
			return true
		}
	}
	return false
}
