package domain

import "time"

// WinnerSide identifies which side of the form won the match.
type WinnerSide string

const (
	WinnerPlayer   WinnerSide = "player"
	WinnerOpponent WinnerSide = "opponent"
)

// Valid reports whether the side is one of the two enumerated values.
func (s WinnerSide) Valid() bool {
	return s == WinnerPlayer || s == WinnerOpponent
}

// Match is one recorded result. Names are display names captured at the time
// of recording; they are not re-resolved if a player later changes casing.
type Match struct {
	ID       string    `json:"id"`
	Player   string    `json:"player"`
	Opponent string    `json:"opponent"`
	Winner   string    `json:"winner"`
	Checkout int       `json:"checkout"`
	PlayedAt time.Time `json:"playedAt"`
}

// MatchSubmission is the raw form input for a match result.
type MatchSubmission struct {
	PlayerName   string     `json:"player_name"`
	OpponentName string     `json:"opponent_name"`
	Winner       WinnerSide `json:"winner"`
	Checkout     int        `json:"checkout"`
}

// MatchResult summarises a successfully recorded match for presentation.
type MatchResult struct {
	Winner       string `json:"winner"`
	Loser        string `json:"loser"`
	Checkout     int    `json:"checkout"`
	WinnerRating int    `json:"winner_rating"`
	LoserRating  int    `json:"loser_rating"`
	WinnerDelta  int    `json:"winner_delta"`
	LoserDelta   int    `json:"loser_delta"`
}
