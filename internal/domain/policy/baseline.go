package policy

import (
	"fmt"

	"github.com/alejandrodnm/draftsim/internal/domain"
)

// Baseline mimics an auto-draft: best player available by overall rank, unless the
// team is about to run out of picks to fill its starters or a position is capped.
type Baseline struct{}

// NewBaseline creates the auto-draft policy.
func NewBaseline() *Baseline { return &Baseline{} }

func (*Baseline) Name() string { return string(KindBaseline) }

// Select implements domain.Policy.
func (*Baseline) Select(board *domain.Board, team *domain.Team) (domain.Player, error) {
	var allowed []domain.Position
	if team.Roster().OpenStarterSlots() >= team.RemainingPicks() {
		allowed = unfilledStarters(team)
		if len(allowed) == 0 {
			// only FLEX is left open
			allowed = flexEligible()
		}
	} else {
		allowed = uncapped(team)
	}

	p, err := bestRanked(board, allowed)
	if err != nil {
		return domain.Player{}, fmt.Errorf("baseline: %w", err)
	}
	return p, nil
}
