package ports

import (
	"context"

	"github.com/alejandrodnm/draftsim/internal/domain"
)

// SeasonSource entrega las tablas ya limpias de una temporada.
type SeasonSource interface {
	// LoadPlayers devuelve el player table del año, solo QB/RB/WR/TE.
	LoadPlayers(ctx context.Context, year int) ([]domain.Player, error)

	// LoadWeekly devuelve el weekly performance table del año.
	LoadWeekly(ctx context.Context, year int) (*domain.WeeklyTable, error)

	// Years devuelve los años disponibles en orden ascendente.
	Years(ctx context.Context) ([]int, error)
}
