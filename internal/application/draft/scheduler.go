// Package draft assigns snake-draft pick order and drives the picks against the board.
package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/draftsim/internal/domain"
)

var (
	// ErrNoTeams is returned when a draft is created without teams.
	ErrNoTeams = errors.New("draft has no teams")
	// ErrBoardTooSmall is returned when the board cannot cover every pick.
	ErrBoardTooSmall = errors.New("board smaller than number of picks")
)

// TeamForPick returns the index of the team that owns pick (0-indexed) in a snake
// draft of numTeams: even rounds run forward, odd rounds run backward.
func TeamForPick(pick, numTeams int) int {
	round := pick / numTeams
	i := pick % numTeams
	if round%2 == 0 {
		return i
	}
	return numTeams - 1 - i
}

// SnakeOrder returns the owning team index of every pick.
func SnakeOrder(numTeams, rounds int) []int {
	order := make([]int, 0, numTeams*rounds)
	for p := 0; p < numTeams*rounds; p++ {
		order = append(order, TeamForPick(p, numTeams))
	}
	return order
}

// IsBackToBack reports whether picks[k] is the first of two consecutive picks,
// i.e. the team holds the last pick of one round and the first of the next.
func IsBackToBack(picks []int, k int) bool {
	return k+1 < len(picks) && picks[k+1]-picks[k] == 1
}

// Pick is one completed selection.
type Pick struct {
	Number int
	Team   string
	Player domain.Player
}

// Draft is a single snake draft over one season board.
type Draft struct {
	teams []*domain.Team
	board *domain.Board
	order []int // owning team index per pick
}

// New assigns every team its full pick schedule. The board is owned by the draft
// from here on and shrinks as players are taken.
func New(teams []*domain.Team, board *domain.Board, slots domain.SlotCaps) (*Draft, error) {
	if len(teams) == 0 {
		return nil, fmt.Errorf("draft.New: %w", ErrNoTeams)
	}
	rounds := slots.Rounds()
	total := rounds * len(teams)
	if board.Len() < total {
		return nil, fmt.Errorf("draft.New: %d players for %d picks: %w", board.Len(), total, ErrBoardTooSmall)
	}

	d := &Draft{
		teams: teams,
		board: board,
		order: SnakeOrder(len(teams), rounds),
	}
	for pick, ti := range d.order {
		teams[ti].AddPick(pick)
	}
	return d, nil
}

// Run asks each scheduled team for its selection in pick order and removes the
// player from the board. It returns who was picked, in pick order.
func (d *Draft) Run(ctx context.Context) ([]Pick, error) {
	picks := make([]Pick, 0, len(d.order))
	for number, ti := range d.order {
		if number%len(d.teams) == 0 {
			if err := ctx.Err(); err != nil {
				return picks, fmt.Errorf("draft.Run: round %d: %w", number/len(d.teams), err)
			}
		}

		team := d.teams[ti]
		player, err := team.Draft(d.board)
		if err != nil {
			return picks, fmt.Errorf("draft.Run: pick %d: %w", number, err)
		}
		if err := d.board.Remove(player.Name); err != nil {
			return picks, fmt.Errorf("draft.Run: pick %d: %w", number, err)
		}

		slog.Debug("player drafted",
			"pick", number,
			"team", team.Name(),
			"player", player.Name,
			"position", player.Position,
			"overall", player.Overall,
		)
		picks = append(picks, Pick{Number: number, Team: team.Name(), Player: player})
	}
	return picks, nil
}
