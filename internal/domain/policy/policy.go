// Package policy implements the drafting heuristics a team can use.
//
// Every policy satisfies domain.Policy: it reads the live board and the team's
// roster/pick state and returns one player, without mutating either.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alejandrodnm/draftsim/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrUnknownPolicy is returned when a configured policy name matches no heuristic.
var ErrUnknownPolicy = errors.New("unknown policy")

// Kind identifies a drafting heuristic.
type Kind string

const (
	KindBaseline   Kind = "baseline"
	KindSmartCap   Kind = "smartcap"
	KindValueGap   Kind = "valuegap"
	KindPredictive Kind = "predictive"
)

// Kinds lists every supported heuristic in display order.
var Kinds = []Kind{KindBaseline, KindSmartCap, KindValueGap, KindPredictive}

// aliases maps the historical names of each heuristic.
var aliases = map[string]Kind{
	"team":                 KindBaseline,
	"adp":                  KindBaseline,
	"smart":                KindSmartCap,
	"smart_adp":            KindSmartCap,
	"smart_cap":            KindSmartCap,
	"perfect":              KindValueGap,
	"value_gap":            KindValueGap,
	"predictive_value_gap": KindPredictive,
}

// ParseKind resolves a configured policy name, case-insensitively.
// Unknown names fail with ErrUnknownPolicy and a closest-match suggestion when one exists.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds {
		if string(k) == n {
			return k, nil
		}
	}
	if k, ok := aliases[n]; ok {
		return k, nil
	}

	if hint := suggest(n); hint != "" {
		return "", fmt.Errorf("policy.ParseKind: %q (did you mean %q?): %w", name, hint, ErrUnknownPolicy)
	}
	return "", fmt.Errorf("policy.ParseKind: %q: %w", name, ErrUnknownPolicy)
}

// suggest returns the known name closest to n by Levenshtein distance.
func suggest(n string) string {
	if n == "" {
		return ""
	}
	known := make([]string, 0, len(Kinds)+len(aliases))
	for _, k := range Kinds {
		known = append(known, string(k))
	}
	for a := range aliases {
		known = append(known, a)
	}

	if ranks := fuzzy.RankFindNormalizedFold(n, known); len(ranks) > 0 {
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r.Distance < best.Distance || (r.Distance == best.Distance && r.Target < best.Target) {
				best = r
			}
		}
		return best.Target
	}

	best, bestDist := "", len(n)/2+1
	for _, k := range known {
		d := fuzzy.LevenshteinDistance(n, k)
		if d < bestDist || (d == bestDist && k < best) {
			best, bestDist = k, d
		}
	}
	return best
}

// TeamPrefix is the name prefix given to teams running this heuristic.
func (k Kind) TeamPrefix() string {
	switch k {
	case KindSmartCap:
		return "smart"
	case KindValueGap:
		return "perfect"
	case KindPredictive:
		return "predictive"
	}
	return "team"
}

// UsesSmartCaps reports whether the heuristic drafts under the tighter position caps.
func (k Kind) UsesSmartCaps() bool {
	return k != KindBaseline
}

// New builds the policy for a kind.
func New(k Kind) (domain.Policy, error) {
	switch k {
	case KindBaseline:
		return NewBaseline(), nil
	case KindSmartCap:
		return NewSmartCap(), nil
	case KindValueGap:
		return NewValueGap(), nil
	case KindPredictive:
		return NewPredictiveValueGap(), nil
	}
	return nil, fmt.Errorf("policy.New: %q: %w", k, ErrUnknownPolicy)
}

// unfilledStarters returns the positions whose own starting slot still has room.
func unfilledStarters(team *domain.Team) []domain.Position {
	var out []domain.Position
	for _, p := range domain.Positions {
		if team.Roster().StarterOpen(p) {
			out = append(out, p)
		}
	}
	return out
}

func flexEligible() []domain.Position {
	var out []domain.Position
	for _, p := range domain.Positions {
		if p.FlexEligible() {
			out = append(out, p)
		}
	}
	return out
}

// uncapped returns the positions the team may still draft under its caps.
func uncapped(team *domain.Team) []domain.Position {
	var out []domain.Position
	for _, p := range domain.Positions {
		if !team.AtCap(p) {
			out = append(out, p)
		}
	}
	return out
}

// bestRanked returns the best-ranked player among the allowed positions.
func bestRanked(board *domain.Board, allowed []domain.Position) (domain.Player, error) {
	p, ok := board.Filter(allowed...).BestByRank()
	if !ok {
		return domain.Player{}, fmt.Errorf("restricted to %v: %w", allowed, domain.ErrNoCandidates)
	}
	return p, nil
}
