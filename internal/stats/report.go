package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/geodrill/internal/model"
)

// DivisionRow is one line of the per-division report.
type DivisionRow struct {
	ID          model.DivisionID
	Name        string
	Stats       model.DivisionStats
	Probability float64
}

// BuildDivisionRows lists every candidate with its counters and selection
// probability, weakest first. weights must align with candidates; names
// resolves display names.
func BuildDivisionRows(candidates []model.DivisionID, data model.StatsData, weights []float64, names func(model.DivisionID) string) []DivisionRow {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	rows := make([]DivisionRow, len(candidates))
	for i, id := range candidates {
		row := DivisionRow{ID: id, Name: names(id), Stats: Ensure(data, id)}
		if total > 0 && i < len(weights) {
			row.Probability = weights[i] / total
		}
		rows[i] = row
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ai, aj := rows[i].Stats.Attempts(), rows[j].Stats.Attempts()
		if (ai == 0) != (aj == 0) {
			return ai > 0
		}
		acci, accj := rows[i].Stats.Accuracy(), rows[j].Stats.Accuracy()
		if acci != accj {
			return acci < accj
		}
		return rows[i].Stats.Seen > rows[j].Stats.Seen
	})
	return rows
}

// RenderDivisionTable prints rows as an aligned table. A positive nameWidth
// caps the name column.
func RenderDivisionTable(w io.Writer, rows []DivisionRow, nameWidth int) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No divisions found.")
		return err
	}
	headers := []string{"Division", "Seen", "Correct", "Wrong", "Accuracy", "Odds"}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		accuracy := "-"
		if row.Stats.Attempts() > 0 {
			accuracy = fmt.Sprintf("%.1f%%", row.Stats.Accuracy()*100)
		}
		cells = append(cells, []string{
			truncate(row.Name, nameWidth),
			fmt.Sprintf("%d", row.Stats.Seen),
			fmt.Sprintf("%d", row.Stats.Correct),
			fmt.Sprintf("%d", row.Stats.Wrong),
			accuracy,
			fmt.Sprintf("%.1f%%", row.Probability*100),
		})
	}
	for _, line := range formatTable(headers, cells, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRoundSummary prints an overview of completed rounds.
func RenderRoundSummary(w io.Writer, rounds []model.RoundResult) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	var totalPct float64
	best := 0.0
	var correct, wrong int
	for _, r := range rounds {
		pct := r.Percent()
		totalPct += pct
		if pct > best {
			best = pct
		}
		correct += r.Correct
		wrong += r.Wrong
	}
	last := rounds[len(rounds)-1]
	lines := []string{
		"Rounds",
		fmt.Sprintf("Count: %d", len(rounds)),
		fmt.Sprintf("Avg score: %.1f%%", totalPct/float64(len(rounds))),
		fmt.Sprintf("Best score: %.1f%%", best),
		fmt.Sprintf("Answers: %d correct, %d wrong", correct, wrong),
		fmt.Sprintf("Last: %.1f%% in %s", last.Percent(), FormatDuration(last.Duration())),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
