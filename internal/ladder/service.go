// Package ladder contains the rating update and ranking engine: recording
// match results, deriving the ordered leaderboard with rank movement, and
// the passphrase-gated reset.
package ladder

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/darts-ladder/internal/config"
	"github.com/darts-ladder/internal/domain"
	"github.com/darts-ladder/internal/elo"
	"github.com/darts-ladder/internal/store"
)

// Service owns the aggregate state and serializes every mutation behind a
// mutex. Each successful mutation is persisted before it is acknowledged;
// if the write fails the in-memory state is rolled back, so a failed
// operation leaves the aggregate exactly as it was.
type Service struct {
	mu          sync.Mutex
	state       *domain.State
	store       store.Store
	historySize int
	passphrase  string
	logger      *slog.Logger
}

// New loads the persisted state and returns a ready service.
func New(ctx context.Context, st store.Store, cfg *config.LadderConfig, logger *slog.Logger) (*Service, error) {
	state, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	state.Sanitize(cfg.HistorySize)

	return &Service{
		state:       state,
		store:       st,
		historySize: cfg.HistorySize,
		passphrase:  cfg.ResetPassphrase,
		logger:      logger,
	}, nil
}

// RecordMatch validates and applies one match submission. Validation is
// fail-fast and mutates nothing. On success both ratings are updated from
// the pre-match ratings, per-player statistics are adjusted, the match is
// prepended to the bounded history and the whole state is persisted.
func (s *Service) RecordMatch(ctx context.Context, sub domain.MatchSubmission) (*domain.MatchResult, error) {
	playerKey, playerName := domain.NormalizeName(sub.PlayerName)
	opponentKey, opponentName := domain.NormalizeName(sub.OpponentName)

	if playerKey == "" || opponentKey == "" {
		return nil, domain.ErrEmptyName
	}
	if playerKey == opponentKey {
		return nil, domain.ErrSamePlayer
	}
	if !sub.Winner.Valid() {
		return nil, domain.ErrInvalidWinner
	}
	if sub.Checkout < 0 {
		return nil, domain.ErrInvalidCheckout
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.Clone()

	player := s.state.Resolve(playerKey, playerName)
	opponent := s.state.Resolve(opponentKey, opponentName)

	expectedPlayer := elo.ExpectedScore(player.Rating, opponent.Rating)
	expectedOpponent := elo.ExpectedScore(opponent.Rating, player.Rating)

	actualPlayer := elo.ResultLoss
	if sub.Winner == domain.WinnerPlayer {
		actualPlayer = elo.ResultWin
	}
	actualOpponent := 1 - actualPlayer

	// Both new ratings derive from the pre-match ratings; neither record is
	// mutated until both are computed.
	newPlayerRating := elo.UpdateRating(player.Rating, actualPlayer, expectedPlayer)
	newOpponentRating := elo.UpdateRating(opponent.Rating, actualOpponent, expectedOpponent)

	winner, loser := player, opponent
	if sub.Winner == domain.WinnerOpponent {
		winner, loser = opponent, player
	}
	oldWinnerRating := winner.Rating
	oldLoserRating := loser.Rating

	player.Rating = newPlayerRating
	opponent.Rating = newOpponentRating
	player.GamesPlayed++
	opponent.GamesPlayed++

	if sub.Checkout > winner.HighestCheckout {
		winner.HighestCheckout = sub.Checkout
	}

	match := domain.Match{
		ID:       uuid.New().String(),
		Player:   player.DisplayName,
		Opponent: opponent.DisplayName,
		Winner:   winner.DisplayName,
		Checkout: sub.Checkout,
		PlayedAt: time.Now().UTC(),
	}
	s.state.Matches = append([]domain.Match{match}, s.state.Matches...)
	if len(s.state.Matches) > s.historySize {
		s.state.Matches = s.state.Matches[:s.historySize]
	}

	if err := s.store.Save(ctx, s.state); err != nil {
		s.state = snapshot
		s.logger.Error("failed to persist match, rolled back", "error", err)
		return nil, domain.ErrInternalError
	}

	s.logger.Info("match recorded",
		"winner", winner.DisplayName,
		"loser", loser.DisplayName,
		"checkout", sub.Checkout,
		"winner_rating", winner.Rating,
		"loser_rating", loser.Rating,
	)

	return &domain.MatchResult{
		Winner:       winner.DisplayName,
		Loser:        loser.DisplayName,
		Checkout:     sub.Checkout,
		WinnerRating: winner.Rating,
		LoserRating:  loser.Rating,
		WinnerDelta:  winner.Rating - oldWinnerRating,
		LoserDelta:   loser.Rating - oldLoserRating,
	}, nil
}

// Standings computes the current leaderboard ordering with rank movement
// against the previously persisted ranking, then replaces and persists the
// snapshot so the next computation sees this one as its baseline. Movement
// therefore survives restarts.
func (s *Service) Standings(ctx context.Context) ([]domain.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	standings, ranks := rankPlayers(s.state)

	previous := s.state.PreviousRanks
	s.state.PreviousRanks = ranks

	if err := s.store.Save(ctx, s.state); err != nil {
		s.state.PreviousRanks = previous
		s.logger.Error("failed to persist ranking snapshot, rolled back", "error", err)
		return nil, domain.ErrInternalError
	}

	return standings, nil
}

// RecentMatches returns a newest-first copy of the bounded match log.
func (s *Service) RecentMatches() []domain.Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]domain.Match, len(s.state.Matches))
	copy(matches, s.state.Matches)
	return matches
}

// PlayerCount returns the number of known players.
func (s *Service) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Players)
}

// Reset clears players, matches and the ranking snapshot after verifying
// the shared passphrase. A mismatch refuses the reset and mutates nothing.
func (s *Service) Reset(ctx context.Context, passphrase string) error {
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(s.passphrase)) != 1 {
		return domain.ErrBadPassphrase
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.Clone()
	s.state.Clear()

	if err := s.store.Save(ctx, s.state); err != nil {
		s.state = snapshot
		s.logger.Error("failed to persist reset, rolled back", "error", err)
		return domain.ErrInternalError
	}

	s.logger.Info("all ladder data cleared")
	return nil
}
