package repository

import (
	"context"
	"database/sql"
)

// LedgerRepo persists the locked-order ledger: the manually defined
// permutation of item ids, as an ordered list. The ledger may reference
// ids that no longer exist and may omit ids that do; the engine tolerates
// both.
type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo { return &LedgerRepo{db: db} }

// Load returns the ledger ids in position order.
func (r *LedgerRepo) Load(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT item_id FROM locked_order ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Replace swaps the full ledger for the given snapshot.
func (r *LedgerRepo) Replace(ctx context.Context, ids []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM locked_order`); err != nil {
		_ = tx.Rollback()
		return err
	}
	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx, `INSERT INTO locked_order(position, item_id) VALUES(?, ?)`, pos, id); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Remove drops one id from the ledger, compacting positions.
func (r *LedgerRepo) Remove(ctx context.Context, id string) error {
	ids, err := r.Load(ctx)
	if err != nil {
		return err
	}
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return r.Replace(ctx, out)
}
