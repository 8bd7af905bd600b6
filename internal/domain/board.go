package domain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicatePlayer indica que el player table trae dos filas con el mismo nombre en un año.
	ErrDuplicatePlayer = errors.New("duplicate player")
	// ErrPlayerNotFound indica que el jugador no está en el tablero.
	ErrPlayerNotFound = errors.New("player not found on board")
)

// Board es el tablero de jugadores disponibles de una temporada.
// Conserva el orden de carga: ante empates gana el primero encontrado.
// Remove es la única escritura permitida; el resto de operaciones devuelven copias.
type Board struct {
	players []Player
	index   map[string]int // nombre → posición en players
}

// NewBoard construye el tablero aplicando el sentinel de rank.
// Rechaza nombres duplicados: la clave (name, year) debe ser única.
func NewBoard(players []Player) (*Board, error) {
	b := &Board{
		players: make([]Player, 0, len(players)),
		index:   make(map[string]int, len(players)),
	}
	for _, p := range players {
		if _, dup := b.index[p.Name]; dup {
			return nil, fmt.Errorf("domain.NewBoard: %q: %w", p.Name, ErrDuplicatePlayer)
		}
		p.Overall = NormalizeRank(p.Overall)
		b.index[p.Name] = len(b.players)
		b.players = append(b.players, p)
	}
	return b, nil
}

// newBoardFrom construye un tablero a partir de jugadores ya normalizados y únicos.
func newBoardFrom(players []Player) *Board {
	b := &Board{
		players: players,
		index:   make(map[string]int, len(players)),
	}
	for i, p := range players {
		b.index[p.Name] = i
	}
	return b
}

// Len devuelve el número de jugadores disponibles.
func (b *Board) Len() int { return len(b.players) }

// Players devuelve una copia de los jugadores en orden de tablero.
func (b *Board) Players() []Player {
	out := make([]Player, len(b.players))
	copy(out, b.players)
	return out
}

// Contains devuelve true si el jugador sigue disponible.
func (b *Board) Contains(name string) bool {
	_, ok := b.index[name]
	return ok
}

// get devuelve el jugador por nombre.
func (b *Board) get(name string) (Player, bool) {
	i, ok := b.index[name]
	if !ok {
		return Player{}, false
	}
	return b.players[i], true
}

// Clone devuelve una copia independiente del tablero.
func (b *Board) Clone() *Board {
	return newBoardFrom(b.Players())
}

// Filter devuelve el sub-tablero con las posiciones permitidas.
func (b *Board) Filter(allowed ...Position) *Board {
	set := make(map[Position]bool, len(allowed))
	for _, p := range allowed {
		set[p] = true
	}
	out := make([]Player, 0, len(b.players))
	for _, p := range b.players {
		if set[p.Position] {
			out = append(out, p)
		}
	}
	return newBoardFrom(out)
}

// BestByRank devuelve el jugador con menor rank. Empates: el primero del tablero.
func (b *Board) BestByRank() (Player, bool) {
	if len(b.players) == 0 {
		return Player{}, false
	}
	best := b.players[0]
	for _, p := range b.players[1:] {
		if p.Overall < best.Overall {
			best = p
		}
	}
	return best, true
}

// BestByPoints devuelve el jugador con mayor valor según metric. Empates: el primero del tablero.
func (b *Board) BestByPoints(metric Metric) (Player, bool) {
	if len(b.players) == 0 {
		return Player{}, false
	}
	best := b.players[0]
	for _, p := range b.players[1:] {
		if metric(p) > metric(best) {
			best = p
		}
	}
	return best, true
}

// WithoutTopRanked devuelve una copia sin los n jugadores mejor rankeados.
// Simula los picks de los rivales antes del próximo turno.
func (b *Board) WithoutTopRanked(n int) *Board {
	if n <= 0 {
		return b.Clone()
	}
	order := make([]int, len(b.players))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return b.players[order[i]].Overall < b.players[order[j]].Overall
	})
	if n > len(order) {
		n = len(order)
	}
	drop := make(map[int]bool, n)
	for _, i := range order[:n] {
		drop[i] = true
	}
	out := make([]Player, 0, len(b.players)-n)
	for i, p := range b.players {
		if !drop[i] {
			out = append(out, p)
		}
	}
	return newBoardFrom(out)
}

// Remove saca al jugador del tablero (lo draftea).
func (b *Board) Remove(name string) error {
	i, ok := b.index[name]
	if !ok {
		return fmt.Errorf("domain.Board.Remove: %q: %w", name, ErrPlayerNotFound)
	}
	b.players = append(b.players[:i], b.players[i+1:]...)
	delete(b.index, name)
	for j := i; j < len(b.players); j++ {
		b.index[b.players[j].Name] = j
	}
	return nil
}
