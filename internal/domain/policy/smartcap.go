package policy

import (
	"fmt"
	"slices"

	"github.com/alejandrodnm/draftsim/internal/domain"
)

// SmartCap fills every starting slot first, then drafts best available under the
// smart caps. While FLEX is empty, RB and WR stay draftable even with their own
// starters full; a TE is never taken to fill FLEX.
type SmartCap struct{}

// NewSmartCap creates the starters-first policy.
func NewSmartCap() *SmartCap { return &SmartCap{} }

func (*SmartCap) Name() string { return string(KindSmartCap) }

// Select implements domain.Policy.
func (*SmartCap) Select(board *domain.Board, team *domain.Team) (domain.Player, error) {
	var allowed []domain.Position
	if team.Roster().OpenStarterSlots() > 0 {
		allowed = unfilledStarters(team)
		if team.Roster().Filled(domain.SlotFlex) == 0 {
			for _, p := range []domain.Position{domain.RB, domain.WR} {
				if !slices.Contains(allowed, p) {
					allowed = append(allowed, p)
				}
			}
		}
	} else {
		allowed = uncapped(team)
	}

	p, err := bestRanked(board, allowed)
	if err != nil {
		return domain.Player{}, fmt.Errorf("smartcap: %w", err)
	}
	return p, nil
}
