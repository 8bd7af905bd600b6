package season_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alejandrodnm/draftsim/internal/application/season"
	"github.com/alejandrodnm/draftsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstPolicy struct{}

func (firstPolicy) Name() string { return "first" }
func (firstPolicy) Select(b *domain.Board, _ *domain.Team) (domain.Player, error) {
	p, ok := b.BestByRank()
	if !ok {
		return domain.Player{}, domain.ErrNoCandidates
	}
	return p, nil
}

// oneManTeam drafts a single QB whose weekly score drives the team's lineup.
func oneManTeam(name string) *domain.Team {
	team := domain.NewTeam(name, domain.DefaultSlotCaps(), domain.TeamCaps(), firstPolicy{})
	b, err := domain.NewBoard([]domain.Player{{Name: name + "-qb", Position: domain.QB, Overall: 1}})
	if err != nil {
		panic(err)
	}
	team.AddPick(0)
	if _, err := team.Draft(b); err != nil {
		panic(err)
	}
	return team
}

// weeklyFor builds a weekly table where team i scores scores[week-1][i].
func weeklyFor(teams []*domain.Team, scores [][]float64) *domain.WeeklyTable {
	w := domain.NewWeeklyTable()
	for wi, week := range scores {
		for ti, pts := range week {
			w.Add(wi+1, teams[ti].Name()+"-qb", "QB", pts)
		}
	}
	return w
}

func TestWinCredits_SumIsConstant(t *testing.T) {
	for _, scores := range [][]float64{
		{10, 20, 30, 40, 50},
		{50, 40, 30, 20, 10},
		{7, 7, 7, 7, 7},
		{0, 100, 0, 100, 50},
	} {
		total := 0.0
		for _, c := range season.WinCredits(scores) {
			total += c
		}
		// sum(i/5, i=0..4) = 2
		assert.InDelta(t, 2.0, total, 1e-9, "%v", scores)
	}
}

func TestWinCredits_RankOrder(t *testing.T) {
	got := season.WinCredits([]float64{30, 10, 20, 40})
	assert.Equal(t, []float64{0.5, 0, 0.25, 0.75}, got)
}

func TestWinCredits_TiesKeepInputOrder(t *testing.T) {
	got := season.WinCredits([]float64{15, 15, 5})
	assert.Equal(t, []float64{1.0 / 3, 2.0 / 3, 0}, got)
}

func TestBracket_SemifinalsAndFinals(t *testing.T) {
	seeds := [domain.PlayoffTeams]*domain.Team{
		oneManTeam("s1"), oneManTeam("s2"), oneManTeam("s3"), oneManTeam("s4"),
	}
	b := season.NewBracket(seeds)

	semi := map[*domain.Team]float64{seeds[0]: 120, seeds[1]: 95, seeds[2]: 110, seeds[3]: 130}
	b.PlaySemifinals(func(t *domain.Team) float64 { return semi[t] })
	assert.Equal(t, seeds[3], b.Final.High)
	assert.Equal(t, seeds[2], b.Final.Low)
	assert.Equal(t, seeds[0], b.Consolation.High)
	assert.Equal(t, seeds[1], b.Consolation.Low)

	final := map[*domain.Team]float64{seeds[0]: 80, seeds[1]: 90, seeds[2]: 101, seeds[3]: 100}
	b.PlayFinals(func(t *domain.Team) float64 { return final[t] })

	placings := b.Placings()
	assert.Equal(t, "s3", placings[0].Name())
	assert.Equal(t, "s4", placings[1].Name())
	assert.Equal(t, "s2", placings[2].Name())
	assert.Equal(t, "s1", placings[3].Name())
}

func TestMatchup_HighSeedWinsTies(t *testing.T) {
	high, low := oneManTeam("h"), oneManTeam("l")
	m := season.Matchup{High: high, Low: low}
	m.Play(func(*domain.Team) float64 { return 50 })
	assert.Equal(t, high, m.Winner())
	assert.Equal(t, low, m.Loser())
}

func TestRun_StandingsAndPoints(t *testing.T) {
	teams := make([]*domain.Team, 6)
	for i := range teams {
		teams[i] = oneManTeam(fmt.Sprintf("t%d", i))
	}

	// two regular weeks: t5 > t4 > ... > t0 every week
	regular := []float64{10, 20, 30, 40, 50, 60}
	// semis: seeds t5,t4,t3,t2 -> t5 v t2, t4 v t3; upsets t2 and t3
	semis := []float64{0, 0, 70, 65, 60, 50}
	// final: t2 v t3, consolation t5 v t4
	finals := []float64{0, 0, 40, 45, 30, 35}

	weekly := weeklyFor(teams, [][]float64{regular, regular, semis, finals})
	sim := season.New(season.Config{Slots: domain.DefaultSlotCaps(), RegularWeeks: 2}, weekly)

	res, err := sim.Run(context.Background(), teams)
	require.NoError(t, err)
	require.Len(t, res.Standings, 6)

	names := make([]string, 0, 6)
	for i, s := range res.Standings {
		assert.Equal(t, i, s.Rank)
		names = append(names, s.Team.Name())
	}
	assert.Equal(t, []string{"t3", "t2", "t5", "t4", "t1", "t0"}, names)

	// regular season win credit: t5 earns 5/6 each week
	assert.InDelta(t, 10.0/6, teams[5].Wins(), 1e-9)
	assert.InDelta(t, 0.0, teams[0].Wins(), 1e-9)

	// points include postseason weeks
	assert.InDelta(t, 20+20+0+0, res.Standings[4].Points, 1e-9)
	assert.InDelta(t, 30+30+70+40, res.Standings[1].Points, 1e-9)

	scores, err := res.Scores("t3")
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 40, 65, 45}, scores)

	_, err = res.Scores("ghost")
	assert.ErrorIs(t, err, season.ErrUnknownTeam)
}

func TestRun_TooFewTeams(t *testing.T) {
	teams := []*domain.Team{oneManTeam("a"), oneManTeam("b"), oneManTeam("c")}
	_, err := season.New(season.Config{}, domain.NewWeeklyTable()).Run(context.Background(), teams)
	assert.ErrorIs(t, err, season.ErrTooFewTeams)
}

func TestRun_MissingWeeksScoreZero(t *testing.T) {
	teams := []*domain.Team{oneManTeam("a"), oneManTeam("b"), oneManTeam("c"), oneManTeam("d")}
	res, err := season.New(season.Config{}, domain.NewWeeklyTable()).Run(context.Background(), teams)
	require.NoError(t, err)

	for _, s := range res.Standings {
		assert.Equal(t, 0.0, s.Points)
	}
	scores, err := res.Scores("a")
	require.NoError(t, err)
	assert.Len(t, scores, season.DefaultRegularWeeks+2)
}
