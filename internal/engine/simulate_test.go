package engine

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// The running example: A(duration 2, weight 10), C(1, 3), B(4, 8).
// Densities are A=5, C=3, B=2, so [A, C, B] is the optimal order.
func workedJobs() []Job {
	return []Job{
		{ID: "A", Duration: 2, Weight: 10},
		{ID: "C", Duration: 1, Weight: 3},
		{ID: "B", Duration: 4, Weight: 8},
	}
}

func TestSimulateWorkedExample(t *testing.T) {
	t.Parallel()

	res := Simulate(workedJobs())
	// segment A: 2 × (3+8) = 22; segment C: 1 × 8 = 8; segment B: 0
	require.InDelta(t, 22.0, res.Segments[0].Cost, 1e-9)
	require.InDelta(t, 8.0, res.Segments[1].Cost, 1e-9)
	require.InDelta(t, 0.0, res.Segments[2].Cost, 1e-9)
	require.InDelta(t, 30.0, res.TotalCost, 1e-9)

	// billed-so-far: weight × processing time elapsed before start
	require.InDelta(t, 0.0, res.Billed["A"], 1e-9)
	require.InDelta(t, 3.0*2, res.Billed["C"], 1e-9)
	require.InDelta(t, 8.0*3, res.Billed["B"], 1e-9)
}

func TestSimulateWorstOrderCostsMore(t *testing.T) {
	t.Parallel()

	// [B, A, C]: 4 × (10+3) = 52; 2 × 3 = 6; 0 → 58
	jobs := []Job{
		{ID: "B", Duration: 4, Weight: 8},
		{ID: "A", Duration: 2, Weight: 10},
		{ID: "C", Duration: 1, Weight: 3},
	}
	res := Simulate(jobs)
	require.InDelta(t, 58.0, res.TotalCost, 1e-9)
	require.Greater(t, res.TotalCost, Simulate(workedJobs()).TotalCost)
}

func TestSimulateDegenerateCases(t *testing.T) {
	t.Parallel()

	require.Zero(t, Simulate(nil).TotalCost)
	require.Zero(t, Simulate([]Job{}).TotalCost)

	// nothing ever waits behind a single job
	single := Simulate([]Job{{ID: "only", Duration: 9, Weight: 9}})
	require.Zero(t, single.TotalCost)
	require.Zero(t, single.Billed["only"])

	zeros := Simulate([]Job{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	require.Zero(t, zeros.TotalCost)
}

func TestSimulateIsPure(t *testing.T) {
	t.Parallel()

	jobs := workedJobs()
	first := Simulate(jobs)
	second := Simulate(jobs)
	require.Equal(t, first, second)
}

func TestSimulateMalformedInputsReadAsZero(t *testing.T) {
	t.Parallel()

	jobs := []Job{
		{ID: "a", Duration: math.NaN(), Weight: -5},
		{ID: "b", Duration: 2, Weight: 3},
		{ID: "c", Duration: 1, Weight: math.Inf(1)},
	}
	res := Simulate(jobs)
	// only b's weight survives sanitizing: segment a = 0 × 3, segment b = 2 × 0
	require.Zero(t, res.TotalCost)
	require.False(t, math.IsNaN(res.TotalCost))
}

// Smith's rule: sorting by weight/duration descending minimizes total
// cost over all permutations. Brute-forced for small n with randomized
// pairs.
func TestSimulateDensityOrderIsOptimal(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(5) // 2..6
		jobs := make([]Job, n)
		for i := range jobs {
			jobs[i] = Job{
				ID:       string(rune('a' + i)),
				Duration: float64(1 + rng.Intn(13)),
				Weight:   float64(1 + rng.Intn(13)),
			}
		}

		ordered := make([]Job, n)
		copy(ordered, jobs)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Weight/ordered[i].Duration > ordered[j].Weight/ordered[j].Duration
		})
		wsjfCost := Simulate(ordered).TotalCost

		minCost := math.Inf(1)
		permute(jobs, 0, func(p []Job) {
			if c := Simulate(p).TotalCost; c < minCost {
				minCost = c
			}
		})
		require.InDelta(t, minCost, wsjfCost, 1e-6,
			"trial %d: density order must attain the permutation minimum", trial)
	}
}

func permute(jobs []Job, k int, visit func([]Job)) {
	if k == len(jobs) {
		visit(jobs)
		return
	}
	for i := k; i < len(jobs); i++ {
		jobs[k], jobs[i] = jobs[i], jobs[k]
		permute(jobs, k+1, visit)
		jobs[k], jobs[i] = jobs[i], jobs[k]
	}
}
