package service

import (
	"github.com/google/uuid"

	"github.com/jask/jaskplan/internal/database/repository"
)

// SentinelID is the stable id of the synthetic trailing placeholder.
var SentinelID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("item:sentinel")).String()

// Normalize enforces the structural invariants every item list must hold
// before it reaches the engine: exactly one sentinel (fabricated when
// missing, duplicates dropped) and at most one reference anchor of each
// kind (extras demoted to normal). It returns a new slice and never
// mutates its input.
func Normalize(items []repository.Item) []repository.Item {
	out := make([]repository.Item, 0, len(items)+1)
	haveSentinel := false
	haveMin, haveMax := false, false
	for _, it := range items {
		switch it.Kind {
		case repository.KindSentinel:
			if haveSentinel {
				continue
			}
			haveSentinel = true
		case repository.KindRefMin:
			if haveMin {
				it.Kind = repository.KindNormal
			}
			haveMin = true
		case repository.KindRefMax:
			if haveMax {
				it.Kind = repository.KindNormal
			}
			haveMax = true
		}
		out = append(out, it)
	}
	if !haveSentinel {
		out = append(out, repository.Item{
			ID:    SentinelID,
			Title: "…",
			Kind:  repository.KindSentinel,
		})
	}
	return out
}
