package engine

// Job is one scheduled unit of work: how long it occupies the queue head
// and the delay cost per time unit it accrues while waiting.
type Job struct {
	ID       string
	Duration float64
	Weight   float64
}

// Segment records the cost accrued by all still-waiting jobs while one
// job processed.
type Segment struct {
	ID   string
	Cost float64
}

// SimulationResult is the outcome of pricing one concrete ordering.
type SimulationResult struct {
	TotalCost float64
	Segments  []Segment
	// Billed is the delay cost each job accrued across all segments
	// before it reached the head of the queue.
	Billed map[string]float64
}

// Simulate computes the total queueing cost of processing jobs strictly
// in the given order, one at a time, non-preemptively. While job k
// processes for Duration_k, every job positioned after it accrues cost at
// its own weight:
//
//	segmentCost_k = Duration_k * Σ Weight_j  (j after k)
//
// The waiting-set sums use a suffix sum of weights, and each job's billed
// total equals its weight times the processing time elapsed before it
// starts, so the whole run is O(n). Empty input, a single job, or
// all-zero weights/durations cost 0.
func Simulate(jobs []Job) SimulationResult {
	res := SimulationResult{Billed: make(map[string]float64, len(jobs))}
	if len(jobs) == 0 {
		return res
	}

	suffix := make([]float64, len(jobs)+1)
	for i := len(jobs) - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1] + sanitize(jobs[i].Weight)
	}

	res.Segments = make([]Segment, 0, len(jobs))
	elapsed := 0.0
	for i, j := range jobs {
		dur := sanitize(j.Duration)
		res.Billed[j.ID] = sanitize(j.Weight) * elapsed
		cost := dur * suffix[i+1]
		res.Segments = append(res.Segments, Segment{ID: j.ID, Cost: cost})
		res.TotalCost += cost
		elapsed += dur
	}
	return res
}
