// Package season converts weekly optimal lineups into win credit, standings and
// a 4-team playoff bracket.
package season

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alejandrodnm/draftsim/internal/domain"
)

// DefaultRegularWeeks is the length of the regular season.
const DefaultRegularWeeks = 14

var (
	// ErrTooFewTeams is returned when the league cannot fill the playoff bracket.
	ErrTooFewTeams = errors.New("league smaller than playoff bracket")
	// ErrUnknownTeam is returned when asking for scores of a team not in the season.
	ErrUnknownTeam = errors.New("team not in season")
)

// Config controls scoring and season length.
type Config struct {
	Slots        domain.SlotCaps
	Scoring      domain.Scoring
	RegularWeeks int // 0 = DefaultRegularWeeks
}

// Simulator plays one season for a drafted league.
type Simulator struct {
	cfg    Config
	weekly *domain.WeeklyTable
}

// New creates a season simulator over the season's weekly table.
func New(cfg Config, weekly *domain.WeeklyTable) *Simulator {
	if cfg.RegularWeeks <= 0 {
		cfg.RegularWeeks = DefaultRegularWeeks
	}
	if cfg.Scoring == "" {
		cfg.Scoring = domain.ScoringStandard
	}
	if cfg.Slots == nil {
		cfg.Slots = domain.DefaultSlotCaps()
	}
	return &Simulator{cfg: cfg, weekly: weekly}
}

// Result is the outcome of one season.
type Result struct {
	Standings []domain.Standing
	Bracket   *Bracket
	weekly    map[string][]float64
}

// Scores returns a team's lineup score for every week played, in week order.
func (r *Result) Scores(team string) ([]float64, error) {
	s, ok := r.weekly[team]
	if !ok {
		return nil, fmt.Errorf("season.Result.Scores: %q: %w", team, ErrUnknownTeam)
	}
	return s, nil
}

// WinCredits returns the fractional win credit for each score: teams are ranked
// ascending and rank i earns i/n. Equal scores keep input order, so the earlier
// team takes the lower credit.
func WinCredits(scores []float64) []float64 {
	n := len(scores)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	credits := make([]float64, n)
	for rank, i := range idx {
		credits[i] = float64(rank) / float64(n)
	}
	return credits
}

// Run plays the regular season, the semifinal week and the final week.
func (s *Simulator) Run(ctx context.Context, teams []*domain.Team) (*Result, error) {
	if len(teams) < domain.PlayoffTeams {
		return nil, fmt.Errorf("season.Run: %d teams: %w", len(teams), ErrTooFewTeams)
	}

	res := &Result{weekly: make(map[string][]float64, len(teams))}
	for _, t := range teams {
		res.weekly[t.Name()] = make([]float64, 0, s.cfg.RegularWeeks+2)
	}

	for week := 1; week <= s.cfg.RegularWeeks; week++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("season.Run: week %d: %w", week, err)
		}
		scores := s.scoreWeek(res, teams, week)
		for i, credit := range WinCredits(scores) {
			teams[i].AddWins(credit)
		}
	}

	order := make([]*domain.Team, len(teams))
	copy(order, teams)
	sort.SliceStable(order, func(a, b int) bool { return order[a].Wins() > order[b].Wins() })

	var seeds [domain.PlayoffTeams]*domain.Team
	copy(seeds[:], order[:domain.PlayoffTeams])
	res.Bracket = NewBracket(seeds)

	semiWeek := s.cfg.RegularWeeks + 1
	semi := s.scoreWeek(res, teams, semiWeek)
	res.Bracket.PlaySemifinals(lookup(teams, semi))

	finalWeek := s.cfg.RegularWeeks + 2
	final := s.scoreWeek(res, teams, finalWeek)
	res.Bracket.PlayFinals(lookup(teams, final))

	placed := res.Bracket.Placings()
	ranked := append(placed[:], order[domain.PlayoffTeams:]...)
	res.Standings = make([]domain.Standing, len(ranked))
	for rank, t := range ranked {
		res.Standings[rank] = domain.Standing{
			Rank:   rank,
			Team:   t,
			Points: sum(res.weekly[t.Name()]),
		}
	}

	slog.Debug("season complete",
		"champion", placed[0].Name(),
		"runner_up", placed[1].Name(),
		"top_seed", seeds[0].Name(),
	)
	return res, nil
}

// LineupScore returns a team's optimal lineup score for a week.
func (s *Simulator) LineupScore(team *domain.Team, week int) float64 {
	return domain.OptimalLineup(team.PlayerNames(), s.weekly.Week(week), s.cfg.Slots, s.cfg.Scoring)
}

// scoreWeek scores every team for the week and appends it to their weekly totals.
func (s *Simulator) scoreWeek(res *Result, teams []*domain.Team, week int) []float64 {
	scores := make([]float64, len(teams))
	for i, t := range teams {
		scores[i] = s.LineupScore(t, week)
		res.weekly[t.Name()] = append(res.weekly[t.Name()], scores[i])
	}
	return scores
}

func lookup(teams []*domain.Team, scores []float64) func(*domain.Team) float64 {
	byTeam := make(map[*domain.Team]float64, len(teams))
	for i, t := range teams {
		byTeam[t] = scores[i]
	}
	return func(t *domain.Team) float64 { return byTeam[t] }
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
