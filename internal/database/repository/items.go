package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ItemRepo handles backlog items.
type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

func (r *ItemRepo) Insert(ctx context.Context, it Item) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO items(
	 id, title, kind, size_label, complexity, effort, doubt,
	 cost_bv, cost_tc, cost_rroe, sort_index, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		it.ID, it.Title, string(it.Kind), it.SizeLabel, it.Complexity, it.Effort, it.Doubt,
		it.CostBV, it.CostTC, it.CostRROE, it.SortIndex)
	return err
}

func (r *ItemRepo) Get(ctx context.Context, id string) (Item, error) {
	row := r.db.QueryRowContext(ctx, selectItems+` WHERE id = ?`, id)
	return scanItem(row)
}

func (r *ItemRepo) UpdateTitle(ctx context.Context, id, title string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET title = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, title, id)
	return err
}

func (r *ItemRepo) UpdateKind(ctx context.Context, id string, kind Kind) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET kind = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, string(kind), id)
	return err
}

func (r *ItemRepo) UpdateSizeLabel(ctx context.Context, id, label string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET size_label = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, label, id)
	return err
}

// UpdateMetric sets one raw sub-metric column. The metric name maps 1:1 to
// a column and is validated against the closed Metric set before splicing
// into the statement.
func (r *ItemRepo) UpdateMetric(ctx context.Context, id string, m Metric, value float64) error {
	valid := false
	for _, known := range Metrics {
		if m == known {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown metric %q", m)
	}
	q := fmt.Sprintf(`UPDATE items SET %s = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, string(m))
	_, err := r.db.ExecContext(ctx, q, value, id)
	return err
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	return err
}

// List returns all items in creation order.
func (r *ItemRepo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, selectItems+` ORDER BY sort_index, created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// NextSortIndex returns the creation index for a new item.
func (r *ItemRepo) NextSortIndex(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(sort_index) FROM items`).Scan(&max); err != nil {
		return 0, err
	}
	return int(max.Int64) + 1, nil
}

const selectItems = `SELECT id, title, kind, size_label, complexity, effort, doubt, cost_bv, cost_tc, cost_rroe, sort_index, created_at, updated_at FROM items`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (Item, error) {
	var it Item
	var kind string
	err := row.Scan(&it.ID, &it.Title, &kind, &it.SizeLabel,
		&it.Complexity, &it.Effort, &it.Doubt,
		&it.CostBV, &it.CostTC, &it.CostRROE,
		&it.SortIndex, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return Item{}, err
	}
	it.Kind = Kind(kind)
	return it, nil
}
