package domain

import "time"

// PlayoffTeams es el tamaño del bracket de postemporada.
const PlayoffTeams = 4

// Standing es una posición final de la temporada.
type Standing struct {
	Rank   int // 0 = campeón
	Team   *Team
	Points float64 // suma de los lineups óptimos de todas las semanas jugadas
}

// TrialResult es una fila del output: un equipo en un trial de un año.
type TrialResult struct {
	RunID    string
	Team     string
	Policy   string
	Year     int
	Trial    int
	DraftPos int // número del primer pick del equipo
	Rank     int
	Points   float64
}

// Run describe una ejecución completa del simulador.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	StartYear  int
	EndYear    int
	Repeats    int
	Teams      string // resumen "policy=count,..."
}

// PolicySummary agrega los resultados de una política sobre todos los trials.
type PolicySummary struct {
	Policy        string
	Teams         int // filas agregadas
	AvgRank       float64
	AvgPoints     float64
	Championships int
	PlayoffApps   int
	BestRank      int
	WorstRank     int
}

// Summarize agrega los resultados por política, en orden de primera aparición.
func Summarize(results []TrialResult) []PolicySummary {
	order := make([]string, 0)
	acc := make(map[string]*PolicySummary)
	for _, r := range results {
		s, ok := acc[r.Policy]
		if !ok {
			s = &PolicySummary{Policy: r.Policy, BestRank: r.Rank, WorstRank: r.Rank}
			acc[r.Policy] = s
			order = append(order, r.Policy)
		}
		s.Teams++
		s.AvgRank += float64(r.Rank)
		s.AvgPoints += r.Points
		if r.Rank == 0 {
			s.Championships++
		}
		if r.Rank < PlayoffTeams {
			s.PlayoffApps++
		}
		s.BestRank = min(s.BestRank, r.Rank)
		s.WorstRank = max(s.WorstRank, r.Rank)
	}

	out := make([]PolicySummary, 0, len(order))
	for _, name := range order {
		s := acc[name]
		s.AvgRank /= float64(s.Teams)
		s.AvgPoints /= float64(s.Teams)
		out = append(out, *s)
	}
	return out
}
