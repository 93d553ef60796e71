package stats

import (
	"sort"

	"github.com/verte-zerg/wps/internal/model"
)

// WeakestChars returns up to top characters with at least one miss, lowest
// accuracy first.
func WeakestChars(aggs []model.CharAggregate, top int) []string {
	var out []string
	for _, agg := range sortByAccuracy(aggs) {
		if top > 0 && len(out) >= top {
			break
		}
		if agg.Incorrect == 0 {
			continue
		}
		out = append(out, agg.Char)
	}
	return out
}

func sortByAccuracy(aggs []model.CharAggregate) []model.CharAggregate {
	candidates := make([]model.CharAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai == aj {
			return candidates[i].Char < candidates[j].Char
		}
		return ai < aj
	})
	return candidates
}

func accuracy(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
