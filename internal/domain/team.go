package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCandidates indica que las restricciones del roster vaciaron el tablero.
	// Es una configuración inconsistente: los slots deben poder cubrirse siempre.
	ErrNoCandidates = errors.New("no draftable candidates")
	// ErrNoPicksLeft indica que se pidió un pick a un equipo sin picks pendientes.
	ErrNoPicksLeft = errors.New("team has no picks left")
)

// Policy decide qué jugador draftea un equipo en su turno.
// Las implementaciones viven en domain/policy.
type Policy interface {
	// Name devuelve el identificador de la política (baseline, smartcap, valuegap, predictive).
	Name() string
	// Select elige un jugador del tablero sin modificarlo.
	Select(board *Board, team *Team) (Player, error)
}

// Selection es un pick hecho por el equipo.
type Selection struct {
	Pick   int
	Player string
}

// Team es un participante de la liga: roster, cola de picks y política de draft.
// Se crea vacío antes de cada draft y no se comparte entre trials.
type Team struct {
	name      string
	policy    Policy
	caps      PositionCaps
	roster    *Roster
	posCounts map[Position]int
	picks     []int
	selected  []Selection
	wins      float64
}

// NewTeam crea un equipo vacío.
func NewTeam(name string, slots SlotCaps, caps PositionCaps, policy Policy) *Team {
	counts := make(map[Position]int, len(Positions))
	for _, p := range Positions {
		counts[p] = 0
	}
	return &Team{
		name:      name,
		policy:    policy,
		caps:      caps,
		roster:    NewRoster(slots),
		posCounts: counts,
	}
}

// Name devuelve el nombre del equipo.
func (t *Team) Name() string { return t.name }

// PolicyName devuelve el identificador de la política del equipo.
func (t *Team) PolicyName() string { return t.policy.Name() }

// Roster devuelve el roster en modo lectura; solo Draft lo modifica.
func (t *Team) Roster() *Roster { return t.roster }

// Wins devuelve el crédito de victoria acumulado.
func (t *Team) Wins() float64 { return t.wins }

// RemainingPicks devuelve cuántos picks le quedan por hacer.
func (t *Team) RemainingPicks() int { return len(t.picks) }

// PositionCap devuelve el límite total del equipo para una posición.
func (t *Team) PositionCap(p Position) int { return t.caps[p] }

// PosCount devuelve cuántos jugadores de la posición tiene el equipo.
func (t *Team) PosCount(p Position) int { return t.posCounts[p] }

// AtCap devuelve true si el equipo ya alcanzó el límite de la posición.
func (t *Team) AtCap(p Position) bool { return t.posCounts[p] >= t.caps[p] }

// Picks devuelve una copia de los picks pendientes, el actual primero.
func (t *Team) Picks() []int {
	out := make([]int, len(t.picks))
	copy(out, t.picks)
	return out
}

// Selected devuelve los picks hechos en orden cronológico.
func (t *Team) Selected() []Selection {
	out := make([]Selection, len(t.selected))
	copy(out, t.selected)
	return out
}

// PlayerNames devuelve los nombres draftados en orden de selección.
func (t *Team) PlayerNames() []string {
	out := make([]string, len(t.selected))
	for i, s := range t.selected {
		out[i] = s.Player
	}
	return out
}

// DraftPosition devuelve el número del primer pick del equipo, o -1 si no tiene.
func (t *Team) DraftPosition() int {
	if len(t.selected) > 0 {
		return t.selected[0].Pick
	}
	if len(t.picks) > 0 {
		return t.picks[0]
	}
	return -1
}

// AddPick asigna un número de pick al equipo antes del draft.
func (t *Team) AddPick(pick int) {
	t.picks = append(t.picks, pick)
}

// AddWins acumula crédito de victoria fraccional.
func (t *Team) AddWins(n float64) {
	t.wins += n
}

// Draft pide a la política un jugador, lo coloca en el roster y consume el pick actual.
// No modifica el tablero: retirarlo es responsabilidad del scheduler.
func (t *Team) Draft(board *Board) (Player, error) {
	if len(t.picks) == 0 {
		return Player{}, fmt.Errorf("domain.Team.Draft: %s: %w", t.name, ErrNoPicksLeft)
	}
	p, err := t.policy.Select(board, t)
	if err != nil {
		return Player{}, fmt.Errorf("domain.Team.Draft: %s pick %d: %w", t.name, t.picks[0], err)
	}
	if !board.Contains(p.Name) {
		return Player{}, fmt.Errorf("domain.Team.Draft: %s selected %q: %w", t.name, p.Name, ErrPlayerNotFound)
	}

	t.posCounts[p.Position]++
	t.roster.place(p)
	t.selected = append(t.selected, Selection{Pick: t.picks[0], Player: p.Name})
	t.picks = t.picks[1:]
	return p, nil
}
