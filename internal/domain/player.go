package domain

import "fmt"

// UnrankedSentinel es el rank asignado a jugadores sin ranking (rank <= 0 o ausente).
// Ordena siempre detrás de cualquier jugador rankeado.
const UnrankedSentinel = 999999

// Position es la posición de un jugador en el tablero del draft.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
)

// Positions es el orden canónico de posiciones draftables.
// También fija el desempate cuando dos posiciones valen lo mismo.
var Positions = []Position{QB, RB, WR, TE}

// ParsePosition valida una posición del player table.
func ParsePosition(s string) (Position, error) {
	switch p := Position(s); p {
	case QB, RB, WR, TE:
		return p, nil
	}
	return "", fmt.Errorf("domain.ParsePosition: unsupported position %q", s)
}

// FlexEligible devuelve true si la posición puede ocupar el slot FLEX.
func (p Position) FlexEligible() bool {
	return p == RB || p == WR || p == TE
}

// Player es una fila del player table para una temporada. Inmutable una vez cargado.
type Player struct {
	Name      string
	Position  Position
	Overall   float64 // rank de consenso pre-temporada, menor = mejor
	Points    float64 // puntos fantasy reales de la temporada
	Projected float64 // puntos proyectados antes del draft
}

// NormalizeRank aplica el sentinel a ranks no positivos.
func NormalizeRank(overall float64) float64 {
	if overall > 0 {
		return overall
	}
	return UnrankedSentinel
}

// Metric selecciona el valor de un jugador que una política compara.
type Metric func(Player) float64

// RealizedPoints usa los puntos reales (conocimiento perfecto de la temporada).
func RealizedPoints(p Player) float64 { return p.Points }

// ProjectedPoints usa la proyección de pre-temporada.
func ProjectedPoints(p Player) float64 { return p.Projected }
