// AngelaMos | 2026
// repository_test.go

package catalog

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/carterperez-dev/bakery-backoffice/internal/core"
	"github.com/carterperez-dev/bakery-backoffice/internal/core/sqltest"
)

// A concurrent transaction can insert the category between the lookup and
// the ON CONFLICT insert; the insert then returns no row and the second
// lookup must resolve the winner's id.
func TestAddProductCategoryRaceFallsBackToLookup(t *testing.T) {
	db, conn := sqltest.Open(
		sqltest.Step{
			Match:   "SELECT id FROM category",
			Columns: []string{"id"},
		},
		sqltest.Step{
			Match:   "INSERT INTO category",
			Columns: []string{"id"},
		},
		sqltest.Step{
			Match:   "SELECT id FROM category",
			Columns: []string{"id"},
			Rows:    [][]driver.Value{{int64(7)}},
		},
		sqltest.Step{
			Match:    "INSERT INTO product",
			Affected: 1,
		},
	)

	repo := NewRepository(db)
	err := repo.AddProduct(context.Background(), NewProduct{
		SKU:          "brd-001",
		Name:         "Sourdough Boule",
		Category:     "Breads",
		CategorySlug: "breads",
		Price:        6.5,
		Stock:        12,
		Status:       "active",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !conn.Committed {
		t.Error("transaction was not committed")
	}
	if conn.RolledBack {
		t.Error("transaction was rolled back")
	}
	if remaining := conn.Remaining(); remaining != 0 {
		t.Errorf("%d scripted statements never ran", remaining)
	}

	insert := conn.Calls[len(conn.Calls)-1]
	if got := insert.Args[2]; got != int64(7) {
		t.Errorf("product insert category_id = %v, want 7", got)
	}
}

func TestUpdateReturnsRowFromWritingStatement(t *testing.T) {
	db, conn := sqltest.Open(
		sqltest.Step{
			Match: "UPDATE product",
			Columns: []string{
				"id", "name", "category_id", "price", "stock",
				"description", "status", "images", "ingredients",
				"nutrition_info", "provide_id", "category",
			},
			Rows: [][]driver.Value{
				{
					"brd-001", "Sourdough Boule", int64(3), 6.5, int64(12),
					"naturally leavened", "active", "boule.png",
					"flour, water, salt", nil, int64(1), "Breads",
				},
			},
		},
	)

	repo := NewRepository(db)
	view, err := repo.Update(context.Background(), ProductUpdate{
		SKU:         "brd-001",
		Name:        "Sourdough Boule",
		Price:       6.5,
		Stock:       12,
		Description: "naturally leavened",
		Status:      "active",
		Image:       "boule.png",
		Ingredients: "flour, water, salt",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(conn.Calls) != 1 {
		t.Fatalf("update issued %d statements, want 1", len(conn.Calls))
	}
	if view.Category != "Breads" {
		t.Errorf("category = %q, want %q", view.Category, "Breads")
	}
	if view.Stock != 12 {
		t.Errorf("stock = %d, want 12", view.Stock)
	}
	if view.NutritionInfo != nil {
		t.Errorf("nutrition_info = %v, want nil", *view.NutritionInfo)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	db, _ := sqltest.Open(
		sqltest.Step{
			Match:   "UPDATE product",
			Columns: []string{"id"},
		},
	)

	repo := NewRepository(db)
	_, err := repo.Update(context.Background(), ProductUpdate{SKU: "gone"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
