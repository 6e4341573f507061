package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskplan/internal/database/repository"
)

func TestNormalizeFabricatesMissingSentinel(t *testing.T) {
	t.Parallel()

	items := []repository.Item{
		{ID: "a", Title: "alpha", Kind: repository.KindNormal},
	}
	out := Normalize(items)
	require.Len(t, out, 2)
	require.Equal(t, repository.KindSentinel, out[1].Kind)
	require.Equal(t, SentinelID, out[1].ID)
}

func TestNormalizeDropsDuplicateSentinels(t *testing.T) {
	t.Parallel()

	items := []repository.Item{
		{ID: "s1", Kind: repository.KindSentinel},
		{ID: "a", Title: "alpha", Kind: repository.KindNormal},
		{ID: "s2", Kind: repository.KindSentinel},
	}
	out := Normalize(items)
	count := 0
	for _, it := range out {
		if it.Kind == repository.KindSentinel {
			count++
			require.Equal(t, "s1", it.ID, "first sentinel wins")
		}
	}
	require.Equal(t, 1, count)
}

func TestNormalizeDemotesExtraReferences(t *testing.T) {
	t.Parallel()

	items := []repository.Item{
		{ID: "m1", Kind: repository.KindRefMin},
		{ID: "m2", Kind: repository.KindRefMin},
		{ID: "x1", Kind: repository.KindRefMax},
		{ID: "x2", Kind: repository.KindRefMax},
	}
	out := Normalize(items)
	require.Equal(t, repository.KindRefMin, out[0].Kind)
	require.Equal(t, repository.KindNormal, out[1].Kind)
	require.Equal(t, repository.KindRefMax, out[2].Kind)
	require.Equal(t, repository.KindNormal, out[3].Kind)

	// input slice untouched
	require.Equal(t, repository.KindRefMin, items[1].Kind)
	require.Equal(t, repository.KindRefMax, items[3].Kind)
}
