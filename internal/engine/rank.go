package engine

import (
	"sort"

	"github.com/jask/jaskplan/internal/database/repository"
)

// Ranks assigns 1-based WSJF priority ranks, 1 = most economically urgent.
// Only items with both aggregates defined and positive participate; the
// sentinel and anything with an incomplete triad are simply absent from
// the map, not ranked zero. Density ties break by item id so the
// assignment is reproducible.
func Ranks(items []repository.Item) map[string]int {
	type scored struct {
		id      string
		density float64
	}
	var eligible []scored
	for _, it := range items {
		if it.Kind == repository.KindSentinel {
			continue
		}
		d := Derive(it)
		if !d.WSJFDefined || d.JobSize <= 0 || d.CoD <= 0 {
			continue
		}
		eligible = append(eligible, scored{id: it.ID, density: d.WSJF})
	}
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].density != eligible[j].density {
			return eligible[i].density > eligible[j].density
		}
		return eligible[i].id < eligible[j].id
	})
	ranks := make(map[string]int, len(eligible))
	for i, s := range eligible {
		ranks[s.id] = i + 1
	}
	return ranks
}
