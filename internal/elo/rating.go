// Package elo implements the rating math for pairwise match outcomes.
package elo

import "math"

const (
	// KFactor bounds the rating swing of a single match.
	KFactor = 32

	// InitialRating is assigned to a player on first appearance.
	InitialRating = 1000
)

// Actual match results for the binary win/lose model.
const (
	ResultWin  = 1.0
	ResultLoss = 0.0
)

// ExpectedScore returns the probability-weighted anticipated outcome for a
// player against an opponent: E = 1 / (1 + 10^((opponent - rating) / 400)).
// ExpectedScore(a, b) + ExpectedScore(b, a) == 1.
func ExpectedScore(rating, opponentRating int) float64 {
	exponent := float64(opponentRating-rating) / 400.0
	return 1.0 / (1.0 + math.Pow(10, exponent))
}

// UpdateRating returns the new rating after a match:
// round(rating + K * (actual - expected)).
func UpdateRating(rating int, actual, expected float64) int {
	return rating + int(math.Round(KFactor*(actual-expected)))
}
