package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/jaskplan/internal/database/repository"
)

// SeedDefaults ensures the baseline rows exist for new databases: the two
// reference anchors used for relative estimation and the trailing
// sentinel. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	itemRepo := repository.NewItemRepo(db)
	existing, err := itemRepo.List(ctx)
	if err != nil {
		return err
	}
	have := map[repository.Kind]bool{}
	for _, it := range existing {
		have[it.Kind] = true
	}

	defaults := []struct {
		kind  repository.Kind
		title string
		index int
	}{
		{repository.KindRefMin, "Smallest reference story", -3},
		{repository.KindRefMax, "Largest reference story", -2},
		{repository.KindSentinel, "…", -1},
	}
	for _, d := range defaults {
		if have[d.kind] {
			continue
		}
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("item:"+string(d.kind))).String()
		it := repository.Item{ID: id, Title: d.title, Kind: d.kind, SortIndex: d.index}
		if err := itemRepo.Insert(ctx, it); err != nil {
			return err
		}
	}
	return nil
}
