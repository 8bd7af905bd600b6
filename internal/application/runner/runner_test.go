package runner_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/alejandrodnm/draftsim/internal/application/runner"
	"github.com/alejandrodnm/draftsim/internal/domain"
	"github.com/alejandrodnm/draftsim/internal/domain/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves the same synthetic season for every year it knows.
type fakeSource struct {
	years   map[int]bool
	players []domain.Player
	weekly  *domain.WeeklyTable
}

func newFakeSource(years ...int) *fakeSource {
	mix := []domain.Position{domain.RB, domain.WR, domain.QB, domain.WR, domain.RB, domain.TE}
	src := &fakeSource{years: make(map[int]bool), weekly: domain.NewWeeklyTable()}
	for _, y := range years {
		src.years[y] = true
	}
	for i := 0; i < 160; i++ {
		pos := mix[i%len(mix)]
		name := fmt.Sprintf("%s-%03d", pos, i)
		src.players = append(src.players, domain.Player{
			Name:      name,
			Position:  pos,
			Overall:   float64(i + 1),
			Points:    float64(300 - i),
			Projected: float64(290 - (i*7)%50),
		})
		for week := 1; week <= 16; week++ {
			src.weekly.Add(week, name, string(pos), float64((i*week)%23))
		}
	}
	return src
}

func (f *fakeSource) LoadPlayers(_ context.Context, year int) ([]domain.Player, error) {
	if !f.years[year] {
		return nil, fmt.Errorf("year %d: missing", year)
	}
	return f.players, nil
}

func (f *fakeSource) Years(context.Context) ([]int, error) {
	out := make([]int, 0, len(f.years))
	for y := range f.years {
		out = append(out, y)
	}
	sort.Ints(out)
	return out, nil
}

func (f *fakeSource) LoadWeekly(_ context.Context, year int) (*domain.WeeklyTable, error) {
	if !f.years[year] {
		return nil, fmt.Errorf("year %d: missing", year)
	}
	return f.weekly, nil
}

type memStore struct {
	mu       sync.Mutex
	runs     map[string]domain.Run
	finished map[string]bool
	rows     []domain.TrialResult
}

func newMemStore() *memStore {
	return &memStore{runs: make(map[string]domain.Run), finished: make(map[string]bool)}
}

func (m *memStore) SaveRun(_ context.Context, run domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *memStore) FinishRun(_ context.Context, run domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished[run.ID] = true
	m.runs[run.ID] = run
	return nil
}

func (m *memStore) SaveResults(_ context.Context, rows []domain.TrialResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *memStore) GetRun(_ context.Context, id string) (domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs[id], nil
}

func (m *memStore) GetResults(_ context.Context, _ string) ([]domain.TrialResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows, nil
}

func smallConfig() runner.Config {
	cfg := runner.DefaultConfig()
	cfg.StartYear, cfg.EndYear = 2015, 2016
	cfg.Teams = []runner.TeamSpec{
		{Kind: policy.KindBaseline, Count: 4},
		{Kind: policy.KindSmartCap, Count: 1},
		{Kind: policy.KindPredictive, Count: 1},
	}
	cfg.Workers = 2
	return cfg
}

// --- identities and rotation ---

func TestIdentities_NamesByPrefix(t *testing.T) {
	ids, err := runner.Identities([]runner.TeamSpec{
		{Kind: policy.KindBaseline, Count: 2},
		{Kind: policy.KindValueGap, Count: 1},
	})
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, "team1", ids[0].Name)
	assert.Equal(t, "team2", ids[1].Name)
	assert.Equal(t, "perfect1", ids[2].Name)
	assert.Equal(t, policy.KindValueGap, ids[2].Kind)
}

func TestIdentities_RejectsDuplicates(t *testing.T) {
	_, err := runner.Identities([]runner.TeamSpec{
		{Kind: policy.KindBaseline, Count: 1},
		{Kind: policy.KindBaseline, Count: 1},
	})
	assert.ErrorIs(t, err, runner.ErrDuplicateTeam)
}

func TestRotate_ShiftsRight(t *testing.T) {
	ids := []runner.Identity{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}

	names := func(in []runner.Identity) []string {
		out := make([]string, len(in))
		for i, id := range in {
			out[i] = id.Name
		}
		return out
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(runner.Rotate(ids, 0)))
	assert.Equal(t, []string{"d", "a", "b", "c"}, names(runner.Rotate(ids, 1)))
	assert.Equal(t, []string{"c", "d", "a", "b"}, names(runner.Rotate(ids, 2)))
	assert.Equal(t, names(ids), names(runner.Rotate(ids, 4)))
	assert.Empty(t, runner.Rotate(nil, 3))
}

// --- full run ---

func TestRun_EveryTeamHoldsEverySlot(t *testing.T) {
	store := newMemStore()
	cfg := smallConfig()

	run, rows, err := runner.New(cfg, newFakeSource(2015, 2016), store).Run(context.Background())
	require.NoError(t, err)

	// 2 years x 6 rotations x 6 teams
	require.Len(t, rows, 2*6*6)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.FinishedAt.IsZero())
	assert.Equal(t, "baseline=4,smartcap=1,predictive=1", run.Teams)

	assert.True(t, store.finished[run.ID])
	assert.Len(t, store.rows, len(rows))

	slots := make(map[string]map[int]bool)
	for _, r := range rows {
		assert.Equal(t, run.ID, r.RunID)
		if r.Year != 2015 {
			continue
		}
		if slots[r.Team] == nil {
			slots[r.Team] = make(map[int]bool)
		}
		slots[r.Team][r.DraftPos] = true
	}
	require.Len(t, slots, 6)
	for team, seen := range slots {
		assert.Len(t, seen, 6, "%s should draft from every slot", team)
	}
}

func TestRun_RowsOrderedByTrialAndRank(t *testing.T) {
	cfg := smallConfig()
	cfg.EndYear = cfg.StartYear
	cfg.Repeats = 2

	_, rows, err := runner.New(cfg, newFakeSource(2015), nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 6*2*6)

	for i, r := range rows {
		assert.Equal(t, i/6, r.Trial)
		assert.Equal(t, i%6, r.Rank)
	}
}

func TestRun_MissingYearFails(t *testing.T) {
	store := newMemStore()
	cfg := smallConfig()
	_, rows, err := runner.New(cfg, newFakeSource(2015), store).Run(context.Background())
	require.ErrorIs(t, err, runner.ErrYearUnavailable)
	assert.ErrorContains(t, err, "year 2016")

	// nothing is simulated or stored for a partial range
	assert.Empty(t, rows)
	assert.Empty(t, store.runs)
}

func TestRunTrial_PoliciesReported(t *testing.T) {
	cfg := smallConfig()
	src := newFakeSource(2015)
	board, err := domain.NewBoard(src.players)
	require.NoError(t, err)

	ids, err := runner.Identities(cfg.Teams)
	require.NoError(t, err)

	rows, err := runner.New(cfg, src, nil).RunTrial(context.Background(), board, src.weekly, ids)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	policies := make(map[string]string)
	for _, r := range rows {
		policies[r.Team] = r.Policy
	}
	assert.Equal(t, "baseline", policies["team1"])
	assert.Equal(t, "smartcap", policies["smart1"])
	assert.Equal(t, "predictive", policies["predictive1"])
}
