// AngelaMos | 2026
// entity.go

package catalog

// Category rows exist only while at least one product references them: they
// are created implicitly by the first product insert and deleted implicitly
// when the last referencing product goes away. There is no standalone
// category CRUD surface.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`
}

// Product is keyed by a caller-supplied SKU rather than a generated id.
type Product struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	CategoryID    int64   `db:"category_id"`
	Price         float64 `db:"price"`
	Stock         int     `db:"stock"`
	Description   *string `db:"description"`
	Status        string  `db:"status"`
	Images        *string `db:"images"`
	Ingredients   *string `db:"ingredients"`
	NutritionInfo *string `db:"nutrition_info"`
	ProviderID    int64   `db:"provide_id"`
}

const defaultProviderID = 1
