package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alejandrodnm/draftsim/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime el resumen en el modo configurado.
func (c *Console) Notify(_ context.Context, run domain.Run, results []domain.TrialResult) error {
	if len(results) == 0 {
		fmt.Fprintf(c.out, "[%s] no results\n", shortID(run.ID))
		return nil
	}

	if c.table {
		c.printFull(run, results)
	} else {
		c.printCompact(run, results)
	}
	return nil
}

// printCompact imprime una línea por política.
func (c *Console) printCompact(run domain.Run, results []domain.TrialResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d-%d %d rows", shortID(run.ID), run.StartYear, run.EndYear, len(results))
	for _, s := range domain.Summarize(results) {
		fmt.Fprintf(&sb, " | %s rank:%.2f pts:%.1f titles:%d",
			s.Policy, s.AvgRank+1, s.AvgPoints, s.Championships)
	}
	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime las tablas por política, por año y por posición de draft.
func (c *Console) printFull(run domain.Run, results []domain.TrialResult) {
	fmt.Fprintf(c.out, "\n=== RUN %s  %d-%d, repeats %d, teams %s ===\n",
		run.ID, run.StartYear, run.EndYear, run.Repeats, run.Teams)

	c.printPolicyTable(results)
	c.printYearTable(results)
	c.printDraftPosTable(results)
}

// printPolicyTable agrega por política.
func (c *Console) printPolicyTable(results []domain.TrialResult) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Policy", "Rows", "Avg finish", "Avg points", "Titles", "Playoffs", "Best", "Worst")

	for _, s := range domain.Summarize(results) {
		table.Append(
			s.Policy,
			fmt.Sprintf("%d", s.Teams),
			fmt.Sprintf("%.2f", s.AvgRank+1),
			fmt.Sprintf("%.1f", s.AvgPoints),
			fmt.Sprintf("%d (%s)", s.Championships, pct(s.Championships, s.Teams)),
			fmt.Sprintf("%d (%s)", s.PlayoffApps, pct(s.PlayoffApps, s.Teams)),
			fmt.Sprintf("%d", s.BestRank+1),
			fmt.Sprintf("%d", s.WorstRank+1),
		)
	}
	table.Render()
	fmt.Fprintln(c.out, "  finish 1 = campeón | Playoffs = top 4 tras la postemporada")
}

// printYearTable muestra, por año, la política con mejor finish medio.
func (c *Console) printYearTable(results []domain.TrialResult) {
	byYear := make(map[int][]domain.TrialResult)
	for _, r := range results {
		byYear[r.Year] = append(byYear[r.Year], r)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	table := tablewriter.NewWriter(c.out)
	table.Header("Year", "Trials", "Best policy", "Avg finish", "Max points")

	for _, y := range years {
		rows := byYear[y]
		summaries := domain.Summarize(rows)
		best := summaries[0]
		for _, s := range summaries[1:] {
			if s.AvgRank < best.AvgRank {
				best = s
			}
		}
		trials, maxPts := 0, 0.0
		for _, r := range rows {
			trials = max(trials, r.Trial+1)
			maxPts = max(maxPts, r.Points)
		}
		table.Append(
			fmt.Sprintf("%d", y),
			fmt.Sprintf("%d", trials),
			best.Policy,
			fmt.Sprintf("%.2f", best.AvgRank+1),
			fmt.Sprintf("%.1f", maxPts),
		)
	}
	table.Render()
}

// printDraftPosTable muestra el finish medio según el primer pick del equipo.
func (c *Console) printDraftPosTable(results []domain.TrialResult) {
	type acc struct {
		n     int
		rank  float64
		title int
	}
	byPos := make(map[int]*acc)
	for _, r := range results {
		a, ok := byPos[r.DraftPos]
		if !ok {
			a = &acc{}
			byPos[r.DraftPos] = a
		}
		a.n++
		a.rank += float64(r.Rank)
		if r.Rank == 0 {
			a.title++
		}
	}
	positions := make([]int, 0, len(byPos))
	for p := range byPos {
		positions = append(positions, p)
	}
	sort.Ints(positions)

	table := tablewriter.NewWriter(c.out)
	table.Header("Draft pos", "Rows", "Avg finish", "Titles")
	for _, p := range positions {
		a := byPos[p]
		table.Append(
			fmt.Sprintf("%d", p+1),
			fmt.Sprintf("%d", a.n),
			fmt.Sprintf("%.2f", a.rank/float64(a.n)+1),
			fmt.Sprintf("%d", a.title),
		)
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// --- helpers ---

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func pct(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(n)/float64(total)*100)
}
