package engine

import (
	"math"
	"sort"

	"github.com/jask/jaskplan/internal/database/repository"
)

// Comparison reports the economic overhead of the currently selected
// ordering relative to the WSJF-optimal one over the same items.
type Comparison struct {
	OptimalOrder    []repository.Item
	CurrentOrder    []repository.Item
	OptimalCost     float64
	CurrentCost     float64
	OverheadPercent int
}

// Eligible filters items to those the cost model can price: both triads
// complete and a positive job size. The sentinel is never eligible.
func Eligible(items []repository.Item) []repository.Item {
	var out []repository.Item
	for _, it := range items {
		if it.Kind == repository.KindSentinel {
			continue
		}
		d := Derive(it)
		if d.JobSizeComplete && d.CoDComplete && d.JobSize > 0 {
			out = append(out, it)
		}
	}
	return out
}

// Compare prices the WSJF-optimal order (density descending, title ties
// ascending; by Smith's rule this minimizes total cost) and the order
// the given view settings produce over the eligible subset. Reference
// pinning and the sentinel do not apply here; only the body-ordering
// rules run. When the optimal cost is 0 the overhead is reported as 0 to
// avoid dividing by zero.
func Compare(items []repository.Item, c Criterion, dir Direction, sizeLabels, lockedOrder []string) Comparison {
	eligible := Eligible(items)

	optimal := make([]repository.Item, len(eligible))
	copy(optimal, eligible)
	sort.SliceStable(optimal, func(i, j int) bool {
		di, dj := density(optimal[i]), density(optimal[j])
		if di != dj {
			return di > dj
		}
		return lessTitle(optimal[i], optimal[j])
	})

	current := orderBody(eligible, c, dir, sizeLabels, lockedOrder)

	cmp := Comparison{
		OptimalOrder: optimal,
		CurrentOrder: current,
		OptimalCost:  Simulate(toJobs(optimal)).TotalCost,
		CurrentCost:  Simulate(toJobs(current)).TotalCost,
	}
	if cmp.OptimalCost > 0 && cmp.CurrentCost > cmp.OptimalCost {
		cmp.OverheadPercent = int(math.Round((cmp.CurrentCost - cmp.OptimalCost) / cmp.OptimalCost * 100))
	}
	return cmp
}

// toJobs reduces eligible items to (duration, weight) pairs: duration is
// the job size, weight the cost of delay.
func toJobs(items []repository.Item) []Job {
	jobs := make([]Job, 0, len(items))
	for _, it := range items {
		d := Derive(it)
		jobs = append(jobs, Job{ID: it.ID, Duration: d.JobSize, Weight: d.CoD})
	}
	return jobs
}
