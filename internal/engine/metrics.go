package engine

import (
	"math"

	"github.com/jask/jaskplan/internal/database/repository"
)

// Derived holds the aggregate fields computed from an item's raw
// sub-metrics. Triad completeness is all-or-nothing: one missing
// sub-metric invalidates the whole aggregate even when the other two are
// set, so partial estimates never leak into totals.
type Derived struct {
	JobSizeComplete bool
	JobSize         float64
	CoDComplete     bool
	CoD             float64
	WSJFDefined     bool
	WSJF            float64
}

// Derive computes the aggregates for one item. It is the only place that
// interprets the zero-as-unset convention of the raw sub-metrics.
func Derive(it repository.Item) Derived {
	cx := sanitize(it.Complexity)
	ef := sanitize(it.Effort)
	db := sanitize(it.Doubt)
	bv := sanitize(it.CostBV)
	tc := sanitize(it.CostTC)
	rr := sanitize(it.CostRROE)

	var d Derived
	if cx > 0 && ef > 0 && db > 0 {
		d.JobSizeComplete = true
		d.JobSize = cx + ef + db
	}
	if bv > 0 && tc > 0 && rr > 0 {
		d.CoDComplete = true
		d.CoD = bv + tc + rr
	}
	if d.JobSizeComplete && d.CoDComplete && d.JobSize > 0 {
		d.WSJFDefined = true
		d.WSJF = d.CoD / d.JobSize
	}
	return d
}

// density returns the WSJF density used for sorting: 0 whenever either
// triad is incomplete, so unestimated items cluster at the low end
// instead of erroring.
func density(it repository.Item) float64 {
	d := Derive(it)
	if !d.WSJFDefined {
		return 0
	}
	return d.WSJF
}

// sanitize maps malformed numeric input (negative, NaN, Inf) to 0.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
