// Package runner repeats the draft and season across years and trials, rotating
// which named team holds which draft slot.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alejandrodnm/draftsim/internal/application/draft"
	"github.com/alejandrodnm/draftsim/internal/application/season"
	"github.com/alejandrodnm/draftsim/internal/domain"
	"github.com/alejandrodnm/draftsim/internal/domain/policy"
	"github.com/alejandrodnm/draftsim/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var (
	// ErrDuplicateTeam is returned when two identities share a name.
	ErrDuplicateTeam = errors.New("duplicate team name")
	// ErrYearUnavailable is returned when the source has no season for a configured year.
	ErrYearUnavailable = errors.New("season not available")
)

// TeamSpec asks for Count teams running the Kind heuristic.
type TeamSpec struct {
	Kind  policy.Kind
	Count int
}

// Config holds everything an outer simulation loop needs.
type Config struct {
	Slots        domain.SlotCaps
	TeamCaps     domain.PositionCaps
	SmartCaps    domain.PositionCaps
	Scoring      domain.Scoring
	RegularWeeks int
	StartYear    int
	EndYear      int
	Repeats      int
	Teams        []TeamSpec
	Workers      int // trials in parallel (0 = NumCPU)
}

// DefaultConfig returns the standard league: 10 baseline teams, one repeat.
func DefaultConfig() Config {
	return Config{
		Slots:        domain.DefaultSlotCaps(),
		TeamCaps:     domain.TeamCaps(),
		SmartCaps:    domain.SmartCaps(),
		Scoring:      domain.ScoringStandard,
		RegularWeeks: season.DefaultRegularWeeks,
		Repeats:      1,
		Teams:        []TeamSpec{{Kind: policy.KindBaseline, Count: 10}},
	}
}

// Identity is a team label and heuristic that survives across trials.
type Identity struct {
	Name string
	Kind policy.Kind
}

// Identities expands the team specs into named identities: each kind's teams are
// numbered from 1 with the kind's prefix, e.g. team1..team9, predictive1.
func Identities(specs []TeamSpec) ([]Identity, error) {
	var ids []Identity
	seen := make(map[string]bool)
	for _, s := range specs {
		for i := 1; i <= s.Count; i++ {
			name := fmt.Sprintf("%s%d", s.Kind.TeamPrefix(), i)
			if seen[name] {
				return nil, fmt.Errorf("runner.Identities: %q: %w", name, ErrDuplicateTeam)
			}
			seen[name] = true
			ids = append(ids, Identity{Name: name, Kind: s.Kind})
		}
	}
	return ids, nil
}

// Rotate returns ids shifted right by k: the last k identities move to the front.
func Rotate(ids []Identity, k int) []Identity {
	n := len(ids)
	out := make([]Identity, n)
	if n == 0 {
		return out
	}
	for j := range ids {
		out[j] = ids[((j-k)%n+n)%n]
	}
	return out
}

// Runner drives the full simulation.
type Runner struct {
	cfg      Config
	source   ports.SeasonSource
	store    ports.ResultStorage
	progress *rate.Sometimes
}

// New creates a Runner. store may be nil to skip persistence.
func New(cfg Config, source ports.SeasonSource, store ports.ResultStorage) *Runner {
	if cfg.Repeats <= 0 {
		cfg.Repeats = 1
	}
	if cfg.Slots == nil {
		cfg.Slots = domain.DefaultSlotCaps()
	}
	if cfg.TeamCaps == nil {
		cfg.TeamCaps = domain.TeamCaps()
	}
	if cfg.SmartCaps == nil {
		cfg.SmartCaps = domain.SmartCaps()
	}
	return &Runner{
		cfg:      cfg,
		source:   source,
		store:    store,
		progress: &rate.Sometimes{First: 1, Interval: 2 * time.Second},
	}
}

// Run simulates every year in range: for each of the n draft-slot rotations it
// runs Repeats independent trials. Results come back ordered by year, trial and rank.
func (r *Runner) Run(ctx context.Context) (domain.Run, []domain.TrialResult, error) {
	ids, err := Identities(r.cfg.Teams)
	if err != nil {
		return domain.Run{}, nil, err
	}
	if err := r.checkYears(ctx); err != nil {
		return domain.Run{}, nil, err
	}

	run := domain.Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
		StartYear: r.cfg.StartYear,
		EndYear:   r.cfg.EndYear,
		Repeats:   r.cfg.Repeats,
		Teams:     describeTeams(r.cfg.Teams),
	}
	if r.store != nil {
		if err := r.store.SaveRun(ctx, run); err != nil {
			return run, nil, fmt.Errorf("runner.Run: save run: %w", err)
		}
	}

	slog.Info("simulation starting",
		"run_id", run.ID,
		"years", fmt.Sprintf("%d-%d", r.cfg.StartYear, r.cfg.EndYear),
		"teams", len(ids),
		"repeats", r.cfg.Repeats,
		"workers", r.cfg.Workers,
	)

	var all []domain.TrialResult
	for year := r.cfg.StartYear; year <= r.cfg.EndYear; year++ {
		rows, err := r.runYear(ctx, run.ID, year, ids)
		if err != nil {
			return run, all, fmt.Errorf("runner.Run: year %d: %w", year, err)
		}
		if r.store != nil {
			if err := r.store.SaveResults(ctx, rows); err != nil {
				return run, all, fmt.Errorf("runner.Run: save year %d: %w", year, err)
			}
		}
		all = append(all, rows...)
	}

	run.FinishedAt = time.Now().UTC()
	if r.store != nil {
		if err := r.store.FinishRun(ctx, run); err != nil {
			return run, all, fmt.Errorf("runner.Run: finish run: %w", err)
		}
	}

	slog.Info("simulation complete",
		"run_id", run.ID,
		"rows", len(all),
		"duration", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
	)
	return run, all, nil
}

// checkYears fails before anything is persisted if a year in range has no season.
func (r *Runner) checkYears(ctx context.Context) error {
	years, err := r.source.Years(ctx)
	if err != nil {
		return fmt.Errorf("runner.Run: list years: %w", err)
	}
	have := make(map[int]bool, len(years))
	for _, y := range years {
		have[y] = true
	}
	for year := r.cfg.StartYear; year <= r.cfg.EndYear; year++ {
		if !have[year] {
			return fmt.Errorf("runner.Run: year %d: %w", year, ErrYearUnavailable)
		}
	}
	return nil
}

// runYear loads one season and runs its trials in parallel.
func (r *Runner) runYear(ctx context.Context, runID string, year int, ids []Identity) ([]domain.TrialResult, error) {
	players, err := r.source.LoadPlayers(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	weekly, err := r.source.LoadWeekly(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("load weekly: %w", err)
	}
	base, err := domain.NewBoard(players)
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}

	var trials []trial
	for rot := 0; rot < len(ids); rot++ {
		order := Rotate(ids, rot)
		for rep := 0; rep < r.cfg.Repeats; rep++ {
			trials = append(trials, trial{
				year:  year,
				index: len(trials),
				order: order,
			})
		}
	}

	slog.Info("season loaded",
		"year", year,
		"players", base.Len(),
		"weeks", len(weekly.Weeks()),
		"trials", len(trials),
	)

	batches, err := r.runTrialsConcurrent(ctx, trials, func(ctx context.Context, t trial) ([]domain.TrialResult, error) {
		rows, err := r.RunTrial(ctx, base.Clone(), weekly, t.order)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", t.index, err)
		}
		for i := range rows {
			rows[i].RunID = runID
			rows[i].Year = year
			rows[i].Trial = t.index
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.TrialResult, 0, len(trials)*len(ids))
	for _, b := range batches {
		out = append(out, b...)
	}
	return out, nil
}

// RunTrial drafts and plays one season with freshly built teams in the given
// draft order. The board must be owned by this trial.
func (r *Runner) RunTrial(ctx context.Context, board *domain.Board, weekly *domain.WeeklyTable, order []Identity) ([]domain.TrialResult, error) {
	teams, err := r.buildTeams(order)
	if err != nil {
		return nil, err
	}

	d, err := draft.New(teams, board, r.cfg.Slots)
	if err != nil {
		return nil, err
	}
	if _, err := d.Run(ctx); err != nil {
		return nil, err
	}

	sim := season.New(season.Config{
		Slots:        r.cfg.Slots,
		Scoring:      r.cfg.Scoring,
		RegularWeeks: r.cfg.RegularWeeks,
	}, weekly)
	res, err := sim.Run(ctx, teams)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.TrialResult, 0, len(res.Standings))
	for _, s := range res.Standings {
		rows = append(rows, domain.TrialResult{
			Team:     s.Team.Name(),
			Policy:   s.Team.PolicyName(),
			DraftPos: s.Team.DraftPosition(),
			Rank:     s.Rank,
			Points:   s.Points,
		})
	}
	return rows, nil
}

func (r *Runner) buildTeams(order []Identity) ([]*domain.Team, error) {
	teams := make([]*domain.Team, 0, len(order))
	for _, id := range order {
		p, err := policy.New(id.Kind)
		if err != nil {
			return nil, err
		}
		caps := r.cfg.TeamCaps
		if id.Kind.UsesSmartCaps() {
			caps = r.cfg.SmartCaps
		}
		teams = append(teams, domain.NewTeam(id.Name, r.cfg.Slots, caps, p))
	}
	return teams, nil
}

func describeTeams(specs []TeamSpec) string {
	parts := make([]string, 0, len(specs))
	for _, s := range specs {
		parts = append(parts, fmt.Sprintf("%s=%d", s.Kind, s.Count))
	}
	return strings.Join(parts, ",")
}
