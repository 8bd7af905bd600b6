package policy_test

import (
	"testing"

	"github.com/alejandrodnm/draftsim/internal/domain"
	"github.com/alejandrodnm/draftsim/internal/domain/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartCap_FlexKeepsRBDraftable(t *testing.T) {
	team := draftedTeam(t, domain.DefaultSlotCaps(), domain.SmartCaps(), []domain.Player{
		player("rb1", domain.RB, 1, 0),
		player("rb2", domain.RB, 2, 0),
	}, 14, 25)

	b := board(t,
		player("rb3", domain.RB, 3, 100),
		player("wr1", domain.WR, 4, 100),
	)
	p, err := policy.NewSmartCap().Select(b, team)
	require.NoError(t, err)
	assert.Equal(t, "rb3", p.Name)
}

func TestSmartCap_FlexFilledDropsFullPositions(t *testing.T) {
	team := draftedTeam(t, domain.DefaultSlotCaps(), domain.SmartCaps(), []domain.Player{
		player("rb1", domain.RB, 1, 0),
		player("rb2", domain.RB, 1, 0),
		player("rb3", domain.RB, 1, 0),
	}, 14, 25)
	require.Equal(t, 1, team.Roster().Filled(domain.SlotFlex))

	b := board(t,
		player("rb4", domain.RB, 1, 100),
		player("te1", domain.TE, 2, 100),
	)
	p, err := policy.NewSmartCap().Select(b, team)
	require.NoError(t, err)
	assert.Equal(t, "te1", p.Name)
}

func TestSmartCap_TENeverTakenForFlex(t *testing.T) {
	team := draftedTeam(t, domain.DefaultSlotCaps(), domain.SmartCaps(), []domain.Player{
		player("qb1", domain.QB, 1, 0),
		player("rb1", domain.RB, 1, 0),
		player("rb2", domain.RB, 1, 0),
		player("wr1", domain.WR, 1, 0),
		player("wr2", domain.WR, 1, 0),
		player("te1", domain.TE, 1, 0),
	}, 14, 25)
	require.Equal(t, 1, team.Roster().OpenStarterSlots())

	b := board(t,
		player("te2", domain.TE, 1, 100),
		player("wr3", domain.WR, 5, 100),
	)
	p, err := policy.NewSmartCap().Select(b, team)
	require.NoError(t, err)
	assert.Equal(t, "wr3", p.Name)
}

func TestSmartCap_StartersFullUsesCaps(t *testing.T) {
	slots := domain.SlotCaps{domain.SlotQB: 1, domain.SlotBench: 3}
	caps := domain.PositionCaps{domain.QB: 1, domain.RB: 6, domain.WR: 6, domain.TE: 2}
	team := draftedTeam(t, slots, caps, []domain.Player{player("qb1", domain.QB, 1, 0)}, 14, 25)
	require.Equal(t, 0, team.Roster().OpenStarterSlots())
	require.True(t, team.AtCap(domain.QB))

	b := board(t,
		player("qb2", domain.QB, 1, 300),
		player("te1", domain.TE, 9, 80),
	)
	p, err := policy.NewSmartCap().Select(b, team)
	require.NoError(t, err)
	assert.Equal(t, "te1", p.Name)
}

func TestSmartCap_CapHoldsThroughDraft(t *testing.T) {
	slots := domain.SlotCaps{domain.SlotQB: 1, domain.SlotBench: 3}
	caps := domain.PositionCaps{domain.QB: 1, domain.RB: 6, domain.WR: 6, domain.TE: 2}
	team := domain.NewTeam("t", slots, caps, policy.NewSmartCap())
	b := board(t,
		player("qb1", domain.QB, 1, 300),
		player("qb2", domain.QB, 2, 290),
		player("qb3", domain.QB, 3, 280),
		player("rb1", domain.RB, 8, 100),
		player("wr1", domain.WR, 9, 90),
		player("te1", domain.TE, 10, 80),
	)
	for _, n := range []int{0, 7, 8, 15} {
		team.AddPick(n)
	}
	for team.RemainingPicks() > 0 {
		p, err := team.Draft(b)
		require.NoError(t, err)
		require.NoError(t, b.Remove(p.Name))
	}

	assert.Equal(t, 1, team.PosCount(domain.QB))
	assert.Equal(t, []string{"qb1", "rb1", "wr1", "te1"}, team.PlayerNames())
}
