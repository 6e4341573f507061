package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/jaskplan/internal/database"
	"github.com/jask/jaskplan/internal/database/repository"
)

// Editor owns all item mutations. Derived aggregates are never written;
// the engine recomputes them from the raw sub-metrics on every read.
type Editor struct {
	Items      *repository.ItemRepo
	Ledger     *repository.LedgerRepo
	SizeLabels []string
}

// Create inserts a new normal item at the end of the creation order.
func (e *Editor) Create(ctx context.Context, title string) (repository.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return repository.Item{}, fmt.Errorf("create item: empty title")
	}
	idx, err := e.Items.NextSortIndex(ctx)
	if err != nil {
		return repository.Item{}, err
	}
	it := repository.Item{
		ID:        uuid.NewString(),
		Title:     title,
		Kind:      repository.KindNormal,
		SortIndex: idx,
		CreatedAt: database.Now(),
		UpdatedAt: database.Now(),
	}
	if err := e.Items.Insert(ctx, it); err != nil {
		return repository.Item{}, err
	}
	return it, nil
}

// Rename updates an item's title.
func (e *Editor) Rename(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("rename item: empty title")
	}
	return e.Items.UpdateTitle(ctx, id, title)
}

// SetMetric stores one raw sub-metric. Malformed values (negative, NaN,
// Inf) are stored as 0, the "unset" marker, rather than rejected.
func (e *Editor) SetMetric(ctx context.Context, id string, m repository.Metric, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		value = 0
	}
	return e.Items.UpdateMetric(ctx, id, m, value)
}

// SetSizeLabel canonicalizes and stores the t-shirt size label, returning
// the label actually stored.
func (e *Editor) SetSizeLabel(ctx context.Context, id, raw string) (string, error) {
	label := e.CanonicalLabel(raw)
	return label, e.Items.UpdateSizeLabel(ctx, id, label)
}

// SetKind reclassifies an item (normal / reference anchors).
func (e *Editor) SetKind(ctx context.Context, id string, kind repository.Kind) error {
	return e.Items.UpdateKind(ctx, id, kind)
}

// Delete removes an item and scrubs it from the locked-order ledger so
// the manual permutation never references it again.
func (e *Editor) Delete(ctx context.Context, id string) error {
	if err := e.Items.Delete(ctx, id); err != nil {
		return err
	}
	return e.Ledger.Remove(ctx, id)
}

// CanonicalLabel maps free-typed input onto the configured size-label
// table: exact case-insensitive matches win, then the closest label
// within a small edit distance. Unmatched input is kept as typed and will
// sort with the shared trailing fallback rank.
func (e *Editor) CanonicalLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	for _, label := range e.SizeLabels {
		if strings.ToLower(label) == lower {
			return label
		}
	}
	best, bestDist := "", 3
	for _, label := range e.SizeLabels {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(label))
		if d < bestDist {
			best, bestDist = label, d
		}
	}
	if best != "" {
		return best
	}
	return raw
}
