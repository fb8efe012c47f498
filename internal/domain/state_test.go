package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		key     string
		display string
	}{{
		"plain name",
		"Alice",
		"alice",
		"Alice",
	}, {
		"surrounding whitespace",
		"  Bob Smith \t",
		"bob smith",
		"Bob Smith",
	}, {
		"already lowercase",
		"carol",
		"carol",
		"carol",
	}, {
		"blank",
		"   ",
		"",
		"",
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			key, display := NormalizeName(test.raw)
			assert.Equal(t, test.key, key)
			assert.Equal(t, test.display, display)
		})
	}
}

func TestResolveCreatesAndUpdates(t *testing.T) {
	s := NewState()

	p := s.Resolve("alice", "Alice")
	require.NotNil(t, p)
	assert.Equal(t, 1000, p.Rating)
	assert.Equal(t, 0, p.GamesPlayed)
	assert.Equal(t, "Alice", p.DisplayName)

	p.Rating = 1016
	p.GamesPlayed = 1

	// Same identity, different casing: one record, display name updated,
	// numeric fields untouched.
	again := s.Resolve("alice", "ALICE")
	assert.Same(t, p, again)
	assert.Equal(t, "ALICE", again.DisplayName)
	assert.Equal(t, 1016, again.Rating)
	assert.Equal(t, 1, again.GamesPlayed)
	assert.Len(t, s.Players, 1)
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewState()
	s.Resolve("alice", "Alice")
	s.Matches = append(s.Matches, Match{ID: "m1", Player: "Alice"})
	s.PreviousRanks["alice"] = 1

	c := s.Clone()
	c.Players["alice"].Rating = 1
	c.Matches[0].Player = "Mallory"
	c.PreviousRanks["alice"] = 9

	assert.Equal(t, 1000, s.Players["alice"].Rating)
	assert.Equal(t, "Alice", s.Matches[0].Player)
	assert.Equal(t, 1, s.PreviousRanks["alice"])
}

func TestSanitizeDefaults(t *testing.T) {
	s := &State{}
	s.Sanitize(5)

	assert.NotNil(t, s.Players)
	assert.NotNil(t, s.Matches)
	assert.NotNil(t, s.PreviousRanks)
}

func TestSanitizeRepairsPlayers(t *testing.T) {
	s := &State{
		Players: map[string]*Player{
			"alice": {DisplayName: "Alice", Rating: 1100, GamesPlayed: 3},
			"bob":   {Rating: -5, GamesPlayed: -1, HighestCheckout: -40},
			"":      {DisplayName: "ghost"},
			"nil":   nil,
		},
		PreviousRanks: map[string]int{"alice": 1, "bob": 0},
	}
	s.Sanitize(5)

	require.Len(t, s.Players, 2)
	assert.Equal(t, "alice", s.Players["alice"].IdentityKey)
	assert.Equal(t, 1100, s.Players["alice"].Rating)

	bob := s.Players["bob"]
	assert.Equal(t, "bob", bob.DisplayName)
	assert.Equal(t, 1000, bob.Rating)
	assert.Equal(t, 0, bob.GamesPlayed)
	assert.Equal(t, 0, bob.HighestCheckout)

	assert.Equal(t, map[string]int{"alice": 1}, s.PreviousRanks)
}

func TestSanitizeBoundsHistory(t *testing.T) {
	s := NewState()
	for i := 0; i < 9; i++ {
		s.Matches = append(s.Matches, Match{ID: "m"})
	}
	s.Sanitize(5)
	assert.Len(t, s.Matches, 5)
}

func TestWinnerSideValid(t *testing.T) {
	assert.True(t, WinnerPlayer.Valid())
	assert.True(t, WinnerOpponent.Valid())
	assert.False(t, WinnerSide("").Valid())
	assert.False(t, WinnerSide("draw").Valid())
}
