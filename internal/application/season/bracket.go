package season

import "github.com/alejandrodnm/draftsim/internal/domain"

// Matchup is a head-to-head postseason game. High is the better-seeded side and
// wins exact ties.
type Matchup struct {
	High      *domain.Team
	Low       *domain.Team
	HighScore float64
	LowScore  float64
}

// Play scores both sides for the week.
func (m *Matchup) Play(score func(*domain.Team) float64) {
	m.HighScore = score(m.High)
	m.LowScore = score(m.Low)
}

// Winner returns the side with the higher score.
func (m Matchup) Winner() *domain.Team {
	if m.LowScore > m.HighScore {
		return m.Low
	}
	return m.High
}

// Loser returns the side with the lower score.
func (m Matchup) Loser() *domain.Team {
	if m.LowScore > m.HighScore {
		return m.High
	}
	return m.Low
}

// Bracket is the 4-team postseason: semifinals 1v4 and 2v3, then a championship
// between the winners and a consolation game between the losers.
type Bracket struct {
	Seeds       [domain.PlayoffTeams]*domain.Team
	Semis       [2]Matchup
	Final       Matchup
	Consolation Matchup
}

// NewBracket seeds the semifinals.
func NewBracket(seeds [domain.PlayoffTeams]*domain.Team) *Bracket {
	return &Bracket{
		Seeds: seeds,
		Semis: [2]Matchup{
			{High: seeds[0], Low: seeds[3]},
			{High: seeds[1], Low: seeds[2]},
		},
	}
}

// PlaySemifinals resolves the semifinal week and sets up the final week.
// The 1v4 winner takes the high side of the championship.
func (b *Bracket) PlaySemifinals(score func(*domain.Team) float64) {
	for i := range b.Semis {
		b.Semis[i].Play(score)
	}
	b.Final = Matchup{High: b.Semis[0].Winner(), Low: b.Semis[1].Winner()}
	b.Consolation = Matchup{High: b.Semis[0].Loser(), Low: b.Semis[1].Loser()}
}

// PlayFinals resolves the championship and consolation games.
func (b *Bracket) PlayFinals(score func(*domain.Team) float64) {
	b.Final.Play(score)
	b.Consolation.Play(score)
}

// Placings returns first through fourth place.
func (b *Bracket) Placings() [domain.PlayoffTeams]*domain.Team {
	return [domain.PlayoffTeams]*domain.Team{
		b.Final.Winner(),
		b.Final.Loser(),
		b.Consolation.Winner(),
		b.Consolation.Loser(),
	}
}
