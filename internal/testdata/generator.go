package testdata

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jask/jaskplan/internal/database/repository"
)

// scale is the estimation scale used for sample sub-metrics.
var scale = []float64{1, 2, 3, 5, 8, 13}

var sizeLabels = []string{"XS", "S", "M", "L", "XL", "XXL"}

var sampleTitles = []string{
	"Checkout flow rewrite",
	"Search relevance tuning",
	"Billing reconciliation job",
	"Mobile onboarding polish",
	"Audit log export",
	"Rate limiter for public API",
	"Duplicate account merge tool",
	"Notification digest emails",
	"Self-serve data deletion",
	"Dashboard load time fix",
	"Partner webhook retries",
	"Dark mode",
}

// Seed creates a randomized sample backlog. Roughly a quarter of the
// items are left partially estimated so incomplete-triad handling shows
// up in the UI immediately.
func Seed(ctx context.Context, items *repository.ItemRepo) error {
	idx, err := items.NextSortIndex(ctx)
	if err != nil {
		return err
	}
	for i, title := range sampleTitles {
		it := repository.Item{
			ID:        uuid.NewString(),
			Title:     title,
			Kind:      repository.KindNormal,
			SizeLabel: sizeLabels[rand.Intn(len(sizeLabels))],
			SortIndex: idx + i,
		}
		it.Complexity = pick()
		it.Effort = pick()
		it.Doubt = pick()
		it.CostBV = pick()
		it.CostTC = pick()
		it.CostRROE = pick()
		if rand.Intn(4) == 0 {
			// drop one sub-metric from a random triad
			if rand.Intn(2) == 0 {
				it.Doubt = 0
			} else {
				it.CostTC = 0
			}
		}
		if err := items.Insert(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func pick() float64 {
	return scale[rand.Intn(len(scale))]
}
