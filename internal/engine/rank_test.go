package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskplan/internal/database/repository"
)

func TestRanksOrderAndExclusion(t *testing.T) {
	t.Parallel()

	items := []repository.Item{
		estimated("slow", "slow burner", 10, 5),  // 0.5
		estimated("hot", "do me first", 4, 20),   // 5.0
		estimated("mid", "middling", 5, 10),      // 2.0
		{ID: "end", Title: "…", Kind: repository.KindSentinel},
		{ID: "part", Title: "partial", Kind: repository.KindNormal,
			Complexity: 3, Effort: 3, CostBV: 9, CostTC: 9, CostRROE: 9}, // doubt unset
		{ID: "blank", Title: "unestimated", Kind: repository.KindNormal},
	}
	ranks := Ranks(items)
	require.Len(t, ranks, 3)
	require.Equal(t, 1, ranks["hot"])
	require.Equal(t, 2, ranks["mid"])
	require.Equal(t, 3, ranks["slow"])

	// failing the filter means absent, not zero
	_, ok := ranks["end"]
	require.False(t, ok)
	_, ok = ranks["part"]
	require.False(t, ok)
	_, ok = ranks["blank"]
	require.False(t, ok)
}

func TestRanksTieBreakByID(t *testing.T) {
	t.Parallel()

	// identical density 2.0 on all three
	items := []repository.Item{
		estimated("c", "third", 5, 10),
		estimated("a", "first", 5, 10),
		estimated("b", "second", 5, 10),
	}
	ranks := Ranks(items)
	require.Equal(t, 1, ranks["a"])
	require.Equal(t, 2, ranks["b"])
	require.Equal(t, 3, ranks["c"])
}

func TestRanksEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, Ranks(nil))
}
