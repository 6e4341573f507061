package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskplan/internal/database/repository"
)

// The worked items again, as backlog rows. Creation order is B, A, C.
func comparisonFixture() []repository.Item {
	return []repository.Item{
		{ID: "B", Title: "bulk work", Kind: repository.KindNormal,
			Complexity: 2, Effort: 1, Doubt: 1, // job size 4
			CostBV: 6, CostTC: 1, CostRROE: 1}, // cod 8, density 2
		{ID: "A", Title: "quick win", Kind: repository.KindNormal,
			Complexity: 0.5, Effort: 1, Doubt: 0.5, // job size 2
			CostBV: 8, CostTC: 1, CostRROE: 1}, // cod 10, density 5
		{ID: "C", Title: "small favor", Kind: repository.KindNormal,
			Complexity: 0.4, Effort: 0.3, Doubt: 0.3, // job size 1
			CostBV: 1, CostTC: 1, CostRROE: 1}, // cod 3, density 3
	}
}

func TestEligibleFiltering(t *testing.T) {
	t.Parallel()

	items := append(comparisonFixture(),
		repository.Item{ID: "end", Title: "…", Kind: repository.KindSentinel},
		repository.Item{ID: "part", Title: "partial", Kind: repository.KindNormal,
			Complexity: 1, Effort: 1, Doubt: 1}, // no cod triad
		repository.Item{ID: "blank", Title: "unestimated", Kind: repository.KindNormal},
	)
	eligible := Eligible(items)
	require.Equal(t, []string{"B", "A", "C"}, ids(eligible))
}

func TestCompareWorkedExample(t *testing.T) {
	t.Parallel()

	cmp := Compare(comparisonFixture(), ByCreation, Asc, testLabels, nil)

	require.Equal(t, []string{"A", "C", "B"}, ids(cmp.OptimalOrder))
	require.Equal(t, []string{"B", "A", "C"}, ids(cmp.CurrentOrder))
	require.InDelta(t, 30.0, cmp.OptimalCost, 1e-9)
	require.InDelta(t, 58.0, cmp.CurrentCost, 1e-9)
	// (58-30)/30 = 93.33% → rounds to 93
	require.Equal(t, 93, cmp.OverheadPercent)
}

func TestCompareOptimalSelectionHasZeroOverhead(t *testing.T) {
	t.Parallel()

	cmp := Compare(comparisonFixture(), ByWSJF, Desc, testLabels, nil)
	require.Equal(t, ids(cmp.OptimalOrder), ids(cmp.CurrentOrder))
	require.InDelta(t, cmp.OptimalCost, cmp.CurrentCost, 1e-9)
	require.Zero(t, cmp.OverheadPercent)
}

func TestCompareZeroOptimalCostGuard(t *testing.T) {
	t.Parallel()

	// a single eligible item never waits: both costs are 0
	cmp := Compare(comparisonFixture()[:1], ByCreation, Asc, testLabels, nil)
	require.Zero(t, cmp.OptimalCost)
	require.Zero(t, cmp.CurrentCost)
	require.Zero(t, cmp.OverheadPercent)

	require.Empty(t, Compare(nil, ByCreation, Asc, testLabels, nil).OptimalOrder)
}

func TestCompareUsesBodyRulesForCurrentOrder(t *testing.T) {
	t.Parallel()

	// custom criterion: the ledger drives the current order, tail appended
	cmp := Compare(comparisonFixture(), ByCustom, Asc, testLabels, []string{"C", "B"})
	require.Equal(t, []string{"C", "B", "A"}, ids(cmp.CurrentOrder))
	require.Equal(t, []string{"A", "C", "B"}, ids(cmp.OptimalOrder))
}

func TestCompareReferenceItemsAreNotPinned(t *testing.T) {
	t.Parallel()

	items := comparisonFixture()
	// a fully estimated reference anchor joins the eligible body
	items = append(items, repository.Item{
		ID: "min", Title: "anchor", Kind: repository.KindRefMin,
		Complexity: 1, Effort: 1, Doubt: 1, // job size 3
		CostBV: 10, CostTC: 10, CostRROE: 10, // cod 30, density 10
	})
	cmp := Compare(items, ByCreation, Asc, testLabels, nil)
	// highest density leads the optimal order; no pinning applies here
	require.Equal(t, "min", cmp.OptimalOrder[0].ID)
	// current order keeps creation order, anchor last
	require.Equal(t, []string{"B", "A", "C", "min"}, ids(cmp.CurrentOrder))
}
