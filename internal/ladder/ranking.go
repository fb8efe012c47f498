package ladder

import (
	"sort"

	"github.com/darts-ladder/internal/domain"
)

// rankPlayers orders all players by rating descending, breaking ties by
// identity key so equal ratings always produce the same ordering. Movement
// is previous rank minus current rank (positive means the player moved up);
// players absent from the previous snapshot get zero movement.
//
// Returned standings hold copies of the player records so callers can use
// them outside the service lock.
func rankPlayers(state *domain.State) ([]domain.Standing, map[string]int) {
	players := make([]*domain.Player, 0, len(state.Players))
	for _, p := range state.Players {
		players = append(players, p)
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Rating != players[j].Rating {
			return players[i].Rating > players[j].Rating
		}
		return players[i].IdentityKey < players[j].IdentityKey
	})

	standings := make([]domain.Standing, 0, len(players))
	ranks := make(map[string]int, len(players))
	for i, p := range players {
		rank := i + 1
		ranks[p.IdentityKey] = rank

		movement := 0
		if previous, ok := state.PreviousRanks[p.IdentityKey]; ok {
			movement = previous - rank
		}

		record := *p
		standings = append(standings, domain.Standing{
			Rank:     rank,
			Player:   &record,
			Movement: movement,
		})
	}

	return standings, ranks
}
