// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Overview {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (*StoreCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM product)  AS products,
			(SELECT COUNT(*) FROM category) AS categories,
			(SELECT COUNT(*) FROM customer) AS customers,
			(SELECT COUNT(*) FROM employee) AS employees,
			(SELECT COUNT(*) FROM manager)  AS managers`

	var counts StoreCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("store counts: %w", err)
	}

	return &counts, nil
}
