package stats

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/wps/internal/model"
	"github.com/verte-zerg/wps/internal/store"
)

func seedStore(t *testing.T, wpms ...int) *store.Store {
	t.Helper()
	st, err := store.Open(store.MemoryPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()
	for i, wpm := range wpms {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(12 * time.Second)
		res := model.RoundResult{
			Round:      i + 1,
			StartedAt:  start,
			EndedAt:    end,
			Target:     "go•fast",
			Chars:      7,
			WPM:        wpm,
			DurationMs: end.Sub(start).Milliseconds(),
			CharStats: []model.CharStats{
				{Char: "g", Correct: 1, Incorrect: 1},
				{Char: "o", Correct: 1},
			},
		}
		if _, err := st.InsertRound(ctx, res); err != nil {
			t.Fatalf("insert round: %v", err)
		}
	}
	return st
}

func TestBuildReport(t *testing.T) {
	st := seedStore(t, 40, 50, 60)
	report, err := BuildReport(context.Background(), st, 2)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(report.Rounds))
	}
	if report.Rounds[0].WPM != 50 || report.Rounds[1].WPM != 60 {
		t.Fatalf("unexpected rounds: %+v", report.Rounds)
	}
	if len(report.CharAggs) != 2 {
		t.Fatalf("expected char aggregates, got %+v", report.CharAggs)
	}
	if report.CharAggs[0].Char != "g" || report.CharAggs[0].Incorrect != 2 {
		t.Fatalf("expected tallies limited to the window: %+v", report.CharAggs[0])
	}
}

func TestReportRender(t *testing.T) {
	st := seedStore(t, 40, 60)
	report, err := BuildReport(context.Background(), st, 0)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, 20); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rounds: 2", "Avg WPM: 50.0", "Best WPM: 60", "Trend: ", "Most missed: g", "Per-Character"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestReportRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (Report{}).Render(&buf, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No rounds completed." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
