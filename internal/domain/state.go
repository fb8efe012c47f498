package domain

import "github.com/darts-ladder/internal/elo"

// DefaultHistorySize bounds the recent match log.
const DefaultHistorySize = 5

// State is the aggregate the whole service operates on: every player record,
// the bounded newest-first match log, and the rank snapshot from the previous
// leaderboard computation. It is persisted and loaded as a single blob.
type State struct {
	Players       map[string]*Player `json:"players"`
	Matches       []Match            `json:"matches"`
	PreviousRanks map[string]int     `json:"previousRanks"`
}

// NewState returns an empty aggregate.
func NewState() *State {
	return &State{
		Players:       make(map[string]*Player),
		Matches:       make([]Match, 0),
		PreviousRanks: make(map[string]int),
	}
}

// Resolve returns the player record for key, creating it with the initial
// rating on first appearance. On re-appearance the display name is
// overwritten (last writer wins, so casing fixes stick) and the numeric
// fields are left untouched.
func (s *State) Resolve(key, display string) *Player {
	p, ok := s.Players[key]
	if !ok {
		p = &Player{
			IdentityKey: key,
			DisplayName: display,
			Rating:      elo.InitialRating,
		}
		s.Players[key] = p
		return p
	}
	if display != "" {
		p.DisplayName = display
	}
	return p
}

// Clear empties all three collections.
func (s *State) Clear() {
	s.Players = make(map[string]*Player)
	s.Matches = make([]Match, 0)
	s.PreviousRanks = make(map[string]int)
}

// Clone returns a deep copy of the state. Mutating operations clone first so
// a failed persistence write can roll back to the pre-operation aggregate.
func (s *State) Clone() *State {
	c := &State{
		Players:       make(map[string]*Player, len(s.Players)),
		Matches:       make([]Match, len(s.Matches)),
		PreviousRanks: make(map[string]int, len(s.PreviousRanks)),
	}
	for k, p := range s.Players {
		cp := *p
		c.Players[k] = &cp
	}
	copy(c.Matches, s.Matches)
	for k, r := range s.PreviousRanks {
		c.PreviousRanks[k] = r
	}
	return c
}

// Sanitize repairs a freshly decoded state field by field so that callers
// always see a fully populated aggregate: nil collections become empty,
// identity keys are backfilled from map keys, out-of-range counters are
// reset and the match log is re-bounded. Records with no usable identity
// are dropped.
func (s *State) Sanitize(historySize int) {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	if s.Players == nil {
		s.Players = make(map[string]*Player)
	}
	if s.Matches == nil {
		s.Matches = make([]Match, 0)
	}
	if s.PreviousRanks == nil {
		s.PreviousRanks = make(map[string]int)
	}

	for key, p := range s.Players {
		if p == nil || key == "" {
			delete(s.Players, key)
			continue
		}
		p.IdentityKey = key
		if p.DisplayName == "" {
			p.DisplayName = key
		}
		if p.Rating <= 0 {
			p.Rating = elo.InitialRating
		}
		if p.GamesPlayed < 0 {
			p.GamesPlayed = 0
		}
		if p.HighestCheckout < 0 {
			p.HighestCheckout = 0
		}
	}

	if len(s.Matches) > historySize {
		s.Matches = s.Matches[:historySize]
	}
	for key, rank := range s.PreviousRanks {
		if rank <= 0 {
			delete(s.PreviousRanks, key)
		}
	}
}
