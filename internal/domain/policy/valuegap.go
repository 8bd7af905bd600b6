package policy

import (
	"fmt"

	"github.com/alejandrodnm/draftsim/internal/domain"
)

// ValueGap drafts at the position that loses the most value before the team's
// next turn. Rivals are assumed to take the best-ranked players in between.
// The first of two consecutive picks looks ahead to the team's third pick.
//
// With domain.RealizedPoints it drafts with perfect knowledge of the season;
// with domain.ProjectedPoints it only sees pre-draft projections.
type ValueGap struct {
	kind   Kind
	metric domain.Metric
}

// NewValueGap creates the lookahead policy on realized points.
func NewValueGap() *ValueGap {
	return &ValueGap{kind: KindValueGap, metric: domain.RealizedPoints}
}

// NewPredictiveValueGap creates the lookahead policy on projected points.
func NewPredictiveValueGap() *ValueGap {
	return &ValueGap{kind: KindPredictive, metric: domain.ProjectedPoints}
}

func (v *ValueGap) Name() string { return string(v.kind) }

// Select implements domain.Policy. Ties between positions go to the earlier one
// in domain.Positions.
func (v *ValueGap) Select(board *domain.Board, team *domain.Team) (domain.Player, error) {
	gaps := v.GapValues(board, team)

	var (
		pick    domain.Position
		bestGap float64
	)
	for _, pos := range domain.Positions {
		gap, ok := gaps[pos]
		if !ok {
			continue
		}
		if pick == "" || gap > bestGap {
			pick, bestGap = pos, gap
		}
	}
	if pick == "" {
		return domain.Player{}, fmt.Errorf("%s: every position capped or empty: %w", v.kind, domain.ErrNoCandidates)
	}

	best, _ := board.Filter(pick).BestByPoints(v.metric)
	return best, nil
}

// GapValues returns value_now - value_next per draftable position. Positions missing
// from the lookahead board keep their full current value.
func (v *ValueGap) GapValues(board *domain.Board, team *domain.Team) map[domain.Position]float64 {
	next := LookaheadBoard(board, team.Picks())
	out := make(map[domain.Position]float64, len(domain.Positions))
	for _, pos := range domain.Positions {
		if team.AtCap(pos) {
			continue
		}
		now, ok := board.Filter(pos).BestByPoints(v.metric)
		if !ok {
			continue
		}
		out[pos] = v.metric(now)
		if later, ok := next.Filter(pos).BestByPoints(v.metric); ok {
			out[pos] -= v.metric(later)
		}
	}
	return out
}

// LookaheadBoard estimates the board at the team's next opportunity.
// picks are the team's remaining pick numbers, the current one first.
func LookaheadBoard(board *domain.Board, picks []int) *domain.Board {
	if len(picks) <= 1 {
		return board
	}
	gap := picks[1] - picks[0] - 1
	if gap > 0 {
		return board.WithoutTopRanked(gap)
	}
	if len(picks) < 3 {
		return board
	}
	return board.WithoutTopRanked(picks[2] - picks[1] - 1)
}
