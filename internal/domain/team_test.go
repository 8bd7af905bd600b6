package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstPolicy elige siempre el primer jugador del tablero.
type firstPolicy struct{ pick string }

func (firstPolicy) Name() string { return "first" }

func (f firstPolicy) Select(board *Board, _ *Team) (Player, error) {
	if f.pick != "" {
		return Player{Name: f.pick}, nil
	}
	players := board.Players()
	if len(players) == 0 {
		return Player{}, ErrNoCandidates
	}
	return players[0], nil
}

func TestTeam_DraftConsumesPickAndPlaces(t *testing.T) {
	b := mustBoard(t, samplePlayers())
	team := NewTeam("t1", DefaultSlotCaps(), TeamCaps(), firstPolicy{})
	team.AddPick(3)
	team.AddPick(16)

	p, err := team.Draft(b)
	require.NoError(t, err)
	assert.Equal(t, "qb1", p.Name)
	assert.Equal(t, 1, team.PosCount(QB))
	assert.Equal(t, []int{16}, team.Picks())
	assert.Equal(t, 3, team.DraftPosition())
	assert.Equal(t, []string{"qb1"}, team.Roster().Occupants(SlotQB))

	// el tablero lo limpia el scheduler
	assert.True(t, b.Contains("qb1"))
}

func TestTeam_DraftWithoutPicks(t *testing.T) {
	team := NewTeam("t1", DefaultSlotCaps(), TeamCaps(), firstPolicy{})
	_, err := team.Draft(mustBoard(t, samplePlayers()))
	assert.ErrorIs(t, err, ErrNoPicksLeft)
	assert.Equal(t, -1, team.DraftPosition())
}

func TestTeam_DraftRejectsPlayerOffBoard(t *testing.T) {
	team := NewTeam("t1", DefaultSlotCaps(), TeamCaps(), firstPolicy{pick: "ghost"})
	team.AddPick(0)
	_, err := team.Draft(mustBoard(t, samplePlayers()))
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestTeam_DraftPropagatesPolicyError(t *testing.T) {
	team := NewTeam("t1", DefaultSlotCaps(), TeamCaps(), firstPolicy{})
	team.AddPick(0)
	_, err := team.Draft(mustBoard(t, nil))
	assert.True(t, errors.Is(err, ErrNoCandidates))
}

func TestTeam_AtCap(t *testing.T) {
	team := NewTeam("t1", DefaultSlotCaps(), PositionCaps{QB: 1, RB: 1, WR: 1, TE: 1}, firstPolicy{})
	team.AddPick(0)
	assert.False(t, team.AtCap(QB))
	_, err := team.Draft(mustBoard(t, samplePlayers()))
	require.NoError(t, err)
	assert.True(t, team.AtCap(QB))
	assert.Equal(t, 1, team.PositionCap(QB))
}
