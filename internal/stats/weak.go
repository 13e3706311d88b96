package stats

import (
	"sort"

	"github.com/verte-zerg/geodrill/internal/model"
)

// WeakestDivisions returns up to top answered divisions, lowest accuracy
// first. Divisions without attempts are skipped.
func WeakestDivisions(data model.StatsData, top int) []model.DivisionID {
	candidates := make([]model.DivisionID, 0, len(data))
	for id, entry := range data {
		if entry.Attempts() > 0 {
			candidates = append(candidates, id)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := data[candidates[i]].Accuracy()
		aj := data[candidates[j]].Accuracy()
		if ai == aj {
			return candidates[i] < candidates[j]
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	return candidates[:top]
}
