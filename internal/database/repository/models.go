package repository

import "time"

// Kind classifies a backlog item.
type Kind string

const (
	KindNormal   Kind = "normal"
	KindRefMin   Kind = "reference_min"
	KindRefMax   Kind = "reference_max"
	KindSentinel Kind = "sentinel"
)

// Item represents a backlog item row. The six raw sub-metrics use 0 for
// "unset"; aggregate fields (job size, cost of delay, WSJF density) are
// derived by the engine on read and never stored.
type Item struct {
	ID         string
	Title      string
	Kind       Kind
	SizeLabel  string
	Complexity float64
	Effort     float64
	Doubt      float64
	CostBV     float64
	CostTC     float64
	CostRROE   float64
	SortIndex  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Metric names a single raw sub-metric on an item.
type Metric string

const (
	MetricComplexity Metric = "complexity"
	MetricEffort     Metric = "effort"
	MetricDoubt      Metric = "doubt"
	MetricCostBV     Metric = "cost_bv"
	MetricCostTC     Metric = "cost_tc"
	MetricCostRROE   Metric = "cost_rroe"
)

// Metrics lists all raw sub-metrics in display order: the job-size triad
// first, then the cost-of-delay triad.
var Metrics = []Metric{
	MetricComplexity, MetricEffort, MetricDoubt,
	MetricCostBV, MetricCostTC, MetricCostRROE,
}

// Value returns the named raw sub-metric, 0 for an unknown name.
func (it Item) Value(m Metric) float64 {
	switch m {
	case MetricComplexity:
		return it.Complexity
	case MetricEffort:
		return it.Effort
	case MetricDoubt:
		return it.Doubt
	case MetricCostBV:
		return it.CostBV
	case MetricCostTC:
		return it.CostTC
	case MetricCostRROE:
		return it.CostRROE
	default:
		return 0
	}
}
