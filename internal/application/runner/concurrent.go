package runner

// concurrent.go: pool acotado de trials independientes.
//
// Cada trial construye sus propios Teams y clona el tablero; jugadores y weekly
// table se comparten solo en lectura. El primer error cancela el resto.

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/alejandrodnm/draftsim/internal/domain"
	"golang.org/x/sync/errgroup"
)

// trial es una combinación (año, orden de draft) a simular.
type trial struct {
	year  int
	index int
	order []Identity
}

type trialFunc func(ctx context.Context, t trial) ([]domain.TrialResult, error)

// runTrialsConcurrent ejecuta fn para cada trial con a lo sumo cfg.Workers goroutines.
// El resultado i corresponde a trials[i], independientemente del orden de ejecución.
//
// Si workers <= 0 usa runtime.NumCPU(): el trabajo es CPU-bound.
func (r *Runner) runTrialsConcurrent(ctx context.Context, trials []trial, fn trialFunc) ([][]domain.TrialResult, error) {
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	out := make([][]domain.TrialResult, len(trials))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, t := range trials {
		g.Go(func() error {
			rows, err := fn(gctx, t)
			if err != nil {
				return err
			}
			out[i] = rows

			n := done.Add(1)
			r.progress.Do(func() {
				slog.Info("simulation progress",
					"year", t.year,
					"trials_done", n,
					"trials_total", len(trials),
				)
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("concurrent trials complete",
		"trials", len(trials),
		"workers", workers,
	)
	return out, nil
}
