package storage

// sqlite.go: fuente de temporadas y destino de resultados.
//
// Tablas:
//   - `players` / `weekly_stats`: tablas ya limpias que deja el paso externo de
//     preparación de datos. La clave (name, year) garantiza jugadores únicos.
//   - `runs`: una fila por ejecución (UUID).
//   - `results`: una fila por equipo, trial y año.
//
// El schema lo gestiona golang-migrate con migraciones embebidas.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alejandrodnm/draftsim/internal/domain"
	_ "modernc.org/sqlite"
)

var (
	// ErrSeasonNotFound indica que no hay jugadores cargados para el año.
	ErrSeasonNotFound = errors.New("season not found")
	// ErrRunNotFound indica que no existe la ejecución pedida.
	ErrRunNotFound = errors.New("run not found")
)

// WeeklyRow es una fila del weekly performance table tal como se guarda.
type WeeklyRow struct {
	Player         string
	Week           int
	Position       string // sin normalizar: puede traer alias de RB
	StandardPoints float64
}

// SQLiteStorage implementa ports.SeasonSource y ports.ResultStorage (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica las migraciones.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer; ":memory:" necesita una sola conexión
	db.SetMaxIdleConns(1)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// SchemaVersion devuelve la versión de migración aplicada.
func (s *SQLiteStorage) SchemaVersion() (uint, error) {
	v, dirty, err := schemaVersion(s.db)
	if err != nil {
		return 0, fmt.Errorf("storage.SchemaVersion: %w", err)
	}
	if dirty {
		return v, fmt.Errorf("storage.SchemaVersion: version %d is dirty", v)
	}
	return v, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- season source ---

// LoadPlayers devuelve los QB/RB/WR/TE del año en orden de carga.
// El orden importa: los empates de rank los gana el primero.
func (s *SQLiteStorage) LoadPlayers(ctx context.Context, year int) ([]domain.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, position, COALESCE(overall, 0), points, projected
		FROM players
		WHERE year = ? AND position IN ('QB', 'RB', 'WR', 'TE')
		ORDER BY rowid
	`, year)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadPlayers: query: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		var pos string
		if err := rows.Scan(&p.Name, &pos, &p.Overall, &p.Points, &p.Projected); err != nil {
			return nil, fmt.Errorf("storage.LoadPlayers: scan row: %w", err)
		}
		p.Position = domain.Position(pos)
		p.Overall = domain.NormalizeRank(p.Overall)
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.LoadPlayers: %w", err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("storage.LoadPlayers: year %d: %w", year, ErrSeasonNotFound)
	}
	return players, nil
}

// LoadWeekly devuelve todas las semanas del año con las posiciones normalizadas.
func (s *SQLiteStorage) LoadWeekly(ctx context.Context, year int) (*domain.WeeklyTable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player, week, position, standard_points
		FROM weekly_stats
		WHERE year = ?
		ORDER BY week, rowid
	`, year)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadWeekly: query: %w", err)
	}
	defer rows.Close()

	table := domain.NewWeeklyTable()
	for rows.Next() {
		var r WeeklyRow
		if err := rows.Scan(&r.Player, &r.Week, &r.Position, &r.StandardPoints); err != nil {
			return nil, fmt.Errorf("storage.LoadWeekly: scan row: %w", err)
		}
		table.Add(r.Week, r.Player, r.Position, r.StandardPoints)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.LoadWeekly: %w", err)
	}
	return table, nil
}

// Years devuelve los años con player table cargado.
func (s *SQLiteStorage) Years(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT year FROM players ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("storage.Years: query: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("storage.Years: scan row: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.Years: %w", err)
	}
	return years, nil
}

// ImportPlayers inserta el player table de un año. Un nombre repetido en el
// mismo año viola la clave primaria y aborta la transacción completa.
func (s *SQLiteStorage) ImportPlayers(ctx context.Context, year int, players []domain.Player) error {
	return s.inTx(ctx, "storage.ImportPlayers", `
		INSERT INTO players (name, year, position, overall, points, projected)
		VALUES (?, ?, ?, ?, ?, ?)
	`, len(players), func(stmt *sql.Stmt, i int) error {
		p := players[i]
		var overall *float64
		if p.Overall > 0 {
			overall = &p.Overall
		}
		_, err := stmt.ExecContext(ctx, p.Name, year, string(p.Position), overall, p.Points, p.Projected)
		return err
	})
}

// ImportWeekly inserta el weekly table de un año.
func (s *SQLiteStorage) ImportWeekly(ctx context.Context, year int, lines []WeeklyRow) error {
	return s.inTx(ctx, "storage.ImportWeekly", `
		INSERT INTO weekly_stats (player, year, week, position, standard_points)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player, year, week) DO UPDATE SET
			position        = excluded.position,
			standard_points = excluded.standard_points
	`, len(lines), func(stmt *sql.Stmt, i int) error {
		l := lines[i]
		_, err := stmt.ExecContext(ctx, l.Player, year, l.Week, l.Position, l.StandardPoints)
		return err
	})
}

// --- result storage ---

// SaveRun registra el inicio de una ejecución.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run domain.Run) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, start_year, end_year, repeats, teams)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC(), run.StartYear, run.EndYear, run.Repeats, run.Teams); err != nil {
		return fmt.Errorf("storage.SaveRun: insert %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun guarda la hora de fin de la ejecución.
func (s *SQLiteStorage) FinishRun(ctx context.Context, run domain.Run) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ? WHERE id = ?`,
		run.FinishedAt.UTC(), run.ID,
	)
	if err != nil {
		return fmt.Errorf("storage.FinishRun: update %s: %w", run.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("storage.FinishRun: %s: %w", run.ID, ErrRunNotFound)
	}
	return nil
}

// SaveResults persiste un lote de filas en una sola transacción.
func (s *SQLiteStorage) SaveResults(ctx context.Context, results []domain.TrialResult) error {
	if len(results) == 0 {
		return nil
	}
	return s.inTx(ctx, "storage.SaveResults", `
		INSERT INTO results (run_id, team, policy, year, trial, draft_pos, rank, points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, len(results), func(stmt *sql.Stmt, i int) error {
		r := results[i]
		_, err := stmt.ExecContext(ctx, r.RunID, r.Team, r.Policy, r.Year, r.Trial, r.DraftPos, r.Rank, r.Points)
		return err
	})
}

// GetRun devuelve la ejecución por ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, runID string) (domain.Run, error) {
	var run domain.Run
	var finished sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, start_year, end_year, repeats, teams
		FROM runs WHERE id = ?
	`, runID).Scan(&run.ID, &run.StartedAt, &finished, &run.StartYear, &run.EndYear, &run.Repeats, &run.Teams)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Run{}, fmt.Errorf("storage.GetRun: %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return domain.Run{}, fmt.Errorf("storage.GetRun: scan: %w", err)
	}
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	return run, nil
}

// LatestRunID devuelve la ejecución más reciente.
func (s *SQLiteStorage) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY started_at DESC LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("storage.LatestRunID: %w", ErrRunNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("storage.LatestRunID: %w", err)
	}
	return id, nil
}

// GetResults devuelve las filas de una ejecución en orden de inserción.
func (s *SQLiteStorage) GetResults(ctx context.Context, runID string) ([]domain.TrialResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, team, policy, year, trial, draft_pos, rank, points
		FROM results
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage.GetResults: query: %w", err)
	}
	defer rows.Close()

	var out []domain.TrialResult
	for rows.Next() {
		var r domain.TrialResult
		if err := rows.Scan(&r.RunID, &r.Team, &r.Policy, &r.Year, &r.Trial, &r.DraftPos, &r.Rank, &r.Points); err != nil {
			return nil, fmt.Errorf("storage.GetResults: scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.GetResults: %w", err)
	}
	return out, nil
}

// --- helpers internos ---

// inTx prepara query una vez y la ejecuta n veces dentro de una transacción.
func (s *SQLiteStorage) inTx(ctx context.Context, op, query string, n int, exec func(*sql.Stmt, int) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("%s: row %d: %w", op, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
