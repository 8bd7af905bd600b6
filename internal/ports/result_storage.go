package ports

import (
	"context"

	"github.com/alejandrodnm/draftsim/internal/domain"
)

// ResultStorage persiste las ejecuciones del simulador y sus filas de resultado.
type ResultStorage interface {
	// SaveRun registra el inicio de una ejecución.
	SaveRun(ctx context.Context, run domain.Run) error

	// FinishRun marca la ejecución como terminada.
	FinishRun(ctx context.Context, run domain.Run) error

	// SaveResults persiste las filas de un lote de trials.
	SaveResults(ctx context.Context, results []domain.TrialResult) error

	// GetRun devuelve la ejecución por ID.
	GetRun(ctx context.Context, runID string) (domain.Run, error)

	// GetResults devuelve las filas de una ejecución en orden de inserción.
	GetResults(ctx context.Context, runID string) ([]domain.TrialResult, error)
}
