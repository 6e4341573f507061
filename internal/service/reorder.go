package service

import (
	"context"

	"github.com/jask/jaskplan/internal/database/repository"
)

// Reorder persists manual drag-style moves. Every move snapshots the full
// body order into the locked-order ledger, so switching to the custom
// criterion reproduces exactly what the user saw when they moved.
type Reorder struct {
	Ledger *repository.LedgerRepo
}

// Move shifts id by delta positions within bodyIDs (the currently
// displayed body order, references and sentinel excluded) and replaces
// the ledger with the result. It returns the new order; an unknown id or
// a move past either end leaves the order unchanged.
func (r *Reorder) Move(ctx context.Context, bodyIDs []string, id string, delta int) ([]string, error) {
	idx := -1
	for i, existing := range bodyIDs {
		if existing == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return bodyIDs, nil
	}
	target := idx + delta
	if target < 0 || target >= len(bodyIDs) {
		return bodyIDs, nil
	}

	out := make([]string, len(bodyIDs))
	copy(out, bodyIDs)
	step := 1
	if target < idx {
		step = -1
	}
	for i := idx; i != target; i += step {
		out[i], out[i+step] = out[i+step], out[i]
	}
	if err := r.Ledger.Replace(ctx, out); err != nil {
		return bodyIDs, err
	}
	return out, nil
}
