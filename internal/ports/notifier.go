package ports

import (
	"context"

	"github.com/alejandrodnm/draftsim/internal/domain"
)

// Notifier presenta al usuario el resultado de una ejecución.
type Notifier interface {
	// Notify muestra el resumen por política de los resultados dados.
	Notify(ctx context.Context, run domain.Run, results []domain.TrialResult) error
}
