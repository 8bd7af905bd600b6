package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/draftsim/internal/adapters/storage"
	"github.com/alejandrodnm/draftsim/internal/ports"
)

// runReport reprints a stored run. "latest" picks the most recent one.
func runReport(ctx context.Context, store *storage.SQLiteStorage, notifier ports.Notifier, id string) error {
	if id == "latest" {
		latest, err := store.LatestRunID(ctx)
		if err != nil {
			return err
		}
		id = latest
	}

	run, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	rows, err := store.GetResults(ctx, run.ID)
	if err != nil {
		return err
	}
	if run.FinishedAt.IsZero() {
		slog.Warn("run did not finish, showing partial results", "run_id", run.ID, "rows", len(rows))
	}

	if err := notifier.Notify(ctx, run, rows); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
