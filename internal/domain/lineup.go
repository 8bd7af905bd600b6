package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScoring indica un sistema de puntuación no soportado.
var ErrUnknownScoring = errors.New("unknown scoring system")

// Scoring identifica las reglas de puntuación de la liga.
type Scoring string

// ScoringStandard es la puntuación estándar (sin PPR). Único modo soportado hoy.
const ScoringStandard Scoring = "standard"

// ParseScoring valida el selector de puntuación.
func ParseScoring(s string) (Scoring, error) {
	if Scoring(s) == ScoringStandard {
		return ScoringStandard, nil
	}
	return "", fmt.Errorf("domain.ParseScoring: %q: %w", s, ErrUnknownScoring)
}

// rbAliases son las sub-designaciones del weekly table que cuentan como RB.
var rbAliases = map[string]bool{
	"FB": true, "HB": true, "RB/K": true, "FB/R": true, "RB/F": true, "FB/T": true,
}

// NormalizePosition colapsa las variantes de RB a una sola etiqueta.
func NormalizePosition(pos string) Position {
	if rbAliases[pos] {
		return RB
	}
	return Position(pos)
}

// WeekLine es la actuación de un jugador en una semana.
type WeekLine struct {
	Player         string
	Position       Position // ya normalizada
	StandardPoints float64
}

// Points devuelve los puntos de la línea según el sistema de puntuación.
func (l WeekLine) Points(s Scoring) float64 {
	switch s {
	case ScoringStandard:
		return l.StandardPoints
	}
	return 0
}

// WeekStats son las líneas de una semana indexadas por jugador.
type WeekStats map[string]WeekLine

// WeeklyTable es el weekly performance table de una temporada.
type WeeklyTable struct {
	weeks map[int]WeekStats
}

// NewWeeklyTable crea una tabla vacía.
func NewWeeklyTable() *WeeklyTable {
	return &WeeklyTable{weeks: make(map[int]WeekStats)}
}

// Add registra una línea normalizando la posición. La última fila gana si se repite.
func (w *WeeklyTable) Add(week int, player, position string, standard float64) {
	stats, ok := w.weeks[week]
	if !ok {
		stats = make(WeekStats)
		w.weeks[week] = stats
	}
	stats[player] = WeekLine{
		Player:         player,
		Position:       NormalizePosition(position),
		StandardPoints: standard,
	}
}

// Week devuelve las líneas de la semana. Una semana sin datos devuelve un mapa vacío.
func (w *WeeklyTable) Week(week int) WeekStats {
	if stats, ok := w.weeks[week]; ok {
		return stats
	}
	return WeekStats{}
}

// Weeks devuelve las semanas con datos, ordenadas.
func (w *WeeklyTable) Weeks() []int {
	out := make([]int, 0, len(w.weeks))
	for wk := range w.weeks {
		out = append(out, wk)
	}
	sort.Ints(out)
	return out
}

// OptimalLineup calcula los puntos del mejor lineup posible de la semana.
//
// Para QB, RB, WR y TE toma los mejores starter_cap[pos] y los retira;
// con los RB/WR/TE sobrantes llena FLEX. Los jugadores sin línea esa semana
// no suman nada. Los empates respetan el orden del roster.
func OptimalLineup(roster []string, week WeekStats, caps SlotCaps, scoring Scoring) float64 {
	lines := make([]WeekLine, 0, len(roster))
	for _, name := range roster {
		if l, ok := week[name]; ok {
			lines = append(lines, l)
		}
	}

	used := make([]bool, len(lines))
	total := 0.0

	take := func(n int, eligible func(Position) bool) {
		if n <= 0 {
			return
		}
		idx := make([]int, 0, len(lines))
		for i, l := range lines {
			if !used[i] && eligible(l.Position) {
				idx = append(idx, i)
			}
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return lines[idx[a]].Points(scoring) > lines[idx[b]].Points(scoring)
		})
		if n > len(idx) {
			n = len(idx)
		}
		for _, i := range idx[:n] {
			total += lines[i].Points(scoring)
			used[i] = true
		}
	}

	for _, pos := range Positions {
		take(caps[SlotFor(pos)], func(p Position) bool { return p == pos })
	}
	take(caps[SlotFlex], Position.FlexEligible)

	return total
}
