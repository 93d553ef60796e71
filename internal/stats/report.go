package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/wps/internal/model"
	"github.com/verte-zerg/wps/internal/store"
)

const weakTop = 5

// Report contains precomputed data for the end-of-session summary.
type Report struct {
	Rounds   []model.RoundAggregate
	CharAggs []model.CharAggregate
}

// BuildReport loads rounds and their character tallies. When last > 0 only
// the most recent rounds are included.
func BuildReport(ctx context.Context, st *store.Store, last int) (Report, error) {
	rounds, err := st.ListRounds(ctx, last)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list rounds: %w", err)
	}
	ids := make([]int64, len(rounds))
	for i, r := range rounds {
		ids[i] = r.ID
	}
	aggs, err := st.ListCharAggregates(ctx, ids)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list char stats: %w", err)
	}
	return Report{Rounds: rounds, CharAggs: aggs}, nil
}

// Render prints the summary, the round table and the character table.
func (r Report) Render(w io.Writer, sparkWidth int) error {
	if err := RenderSummary(w, r.Rounds, sparkWidth); err != nil {
		return err
	}
	if len(r.Rounds) == 0 {
		return nil
	}
	if err := RenderRoundTable(w, r.Rounds); err != nil {
		return err
	}
	if weak := WeakestChars(r.CharAggs, weakTop); len(weak) > 0 {
		if _, err := fmt.Fprintf(w, "Most missed: %s\n\n", strings.Join(weak, " ")); err != nil {
			return err
		}
	}
	return RenderCharTable(w, r.CharAggs)
}
