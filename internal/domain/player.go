package domain

import "strings"

// Player represents a player on the ladder. Players are keyed by IdentityKey
// and created on first appearance.
type Player struct {
	IdentityKey     string `json:"identityKey"`
	DisplayName     string `json:"displayName"`
	Rating          int    `json:"rating"`
	GamesPlayed     int    `json:"gamesPlayed"`
	HighestCheckout int    `json:"highestCheckout"`
}

// NormalizeName derives the identity key and display form from raw input.
// The key is the trimmed, lowercased name; the display name keeps the
// original casing. An empty key means the input was blank.
func NormalizeName(raw string) (key, display string) {
	display = strings.TrimSpace(raw)
	return strings.ToLower(display), display
}

// Standing is one row of the computed leaderboard.
type Standing struct {
	Rank     int     `json:"rank"`
	Player   *Player `json:"player"`
	Movement int     `json:"movement"`
}
