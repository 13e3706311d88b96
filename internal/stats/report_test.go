package stats

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/geodrill/internal/model"
)

func TestBuildDivisionRowsOrdersWeakestFirst(t *testing.T) {
	data := model.StatsData{
		"good": {Seen: 4, Correct: 4},
		"bad":  {Seen: 4, Correct: 1, Wrong: 3},
	}
	candidates := []model.DivisionID{"good", "new", "bad"}
	weights := []float64{1, 2, 1}
	rows := BuildDivisionRows(candidates, data, weights, func(id model.DivisionID) string {
		return strings.ToUpper(string(id))
	})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].ID != "bad" || rows[1].ID != "good" || rows[2].ID != "new" {
		t.Fatalf("unexpected order: %s %s %s", rows[0].ID, rows[1].ID, rows[2].ID)
	}
	if rows[2].Probability != 0.5 || rows[2].Name != "NEW" {
		t.Fatalf("unexpected row: %+v", rows[2])
	}
}

func TestRenderDivisionTable(t *testing.T) {
	rows := []DivisionRow{
		{ID: "d1", Name: "Kent", Stats: model.DivisionStats{Seen: 2, Correct: 1, Wrong: 1}, Probability: 0.25},
		{ID: "d2", Name: "Essex", Probability: 0.75},
	}
	var buf bytes.Buffer
	if err := RenderDivisionTable(&buf, rows, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Division", "Kent", "50.0%", "25.0%", "75.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderRoundSummary(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rounds := []model.RoundResult{
		{StartedAt: start, EndedAt: start.Add(30 * time.Second), Correct: 5, Wrong: 5},
		{StartedAt: start, EndedAt: start.Add(187 * time.Second), Correct: 9, Wrong: 1},
	}
	var buf bytes.Buffer
	if err := RenderRoundSummary(&buf, rounds); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Count: 2", "Avg score: 70.0%", "Best score: 90.0%", "Last: 90.0% in 3m 07s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = RenderRoundSummary(&buf, nil)
	if buf.String() != "No rounds found.\n" {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}

func TestResultMessageBuckets(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	inBucket := func(msg string, threshold float64) bool {
		for _, b := range resultMessages {
			if b.threshold != threshold {
				continue
			}
			for _, m := range b.messages {
				if m == msg {
					return true
				}
			}
		}
		return false
	}
	cases := map[float64]float64{100: 100, 99.9: 95, 85: 85, 72: 70, 50: 50, 10: 0}
	for percent, threshold := range cases {
		if msg := ResultMessage(percent, rnd); !inBucket(msg, threshold) {
			t.Fatalf("percent %.1f: %q not in bucket %.0f", percent, msg, threshold)
		}
	}
	if msg := ResultMessage(-5, rnd); msg != "Great effort!" {
		t.Fatalf("unexpected fallback: %q", msg)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		-time.Second:            "0s",
		42 * time.Second:        "42s",
		1500 * time.Millisecond: "2s",
		3*time.Minute + 7*time.Second: "3m 07s",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", in, got, want)
		}
	}
}
