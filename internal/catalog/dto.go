// AngelaMos | 2026
// dto.go

package catalog

// groupedRow is the flat product⋈category projection behind the grouped
// listing.
type groupedRow struct {
	CategoryName string  `db:"category_name"`
	CategorySlug string  `db:"category_slug"`
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Images       *string `db:"images"`
	Price        float64 `db:"price"`
}

type GroupItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
	Price float64 `json:"price"`
}

type CategoryGroup struct {
	Category string      `json:"category"`
	Slug     string      `json:"slug"`
	Items    []GroupItem `json:"items"`
}

// buildGroups coalesces flat rows into one group per category name. Grouping
// is by name equality, not physical adjacency: rows for the same category may
// arrive interleaved, so groups accumulate through a lookup while first-seen
// order is preserved.
func buildGroups(rows []groupedRow) []CategoryGroup {
	groups := make([]CategoryGroup, 0)
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.CategoryName]
		if !ok {
			i = len(groups)
			index[row.CategoryName] = i
			groups = append(groups, CategoryGroup{
				Category: row.CategoryName,
				Slug:     row.CategorySlug,
				Items:    make([]GroupItem, 0, 4),
			})
		}

		groups[i].Items = append(groups[i].Items, GroupItem{
			ID:    row.ID,
			Name:  row.Name,
			Image: row.Images,
			Price: row.Price,
		})
	}

	return groups
}

// StockItem backs the inventory screen.
type StockItem struct {
	ID            string  `db:"id"             json:"id"`
	Name          string  `db:"name"           json:"name"`
	Price         float64 `db:"price"          json:"price"`
	Stock         int     `db:"stock"          json:"stock"`
	Category      string  `db:"category"       json:"category"`
	Description   *string `db:"description"    json:"description"`
	Images        *string `db:"images"         json:"images"`
	Status        string  `db:"status"         json:"status"`
	Ingredients   *string `db:"ingredients"    json:"ingredients"`
	NutritionInfo *string `db:"nutrition_info" json:"nutrition_info"`
}

// ProductView is the full product row joined with its category name; served
// by the menu, search, and details endpoints.
type ProductView struct {
	ID            string  `db:"id"             json:"id"`
	Name          string  `db:"name"           json:"name"`
	CategoryID    int64   `db:"category_id"    json:"category_id"`
	Price         float64 `db:"price"          json:"price"`
	Stock         int     `db:"stock"          json:"stock"`
	Description   *string `db:"description"    json:"description"`
	Status        string  `db:"status"         json:"status"`
	Images        *string `db:"images"         json:"images"`
	Ingredients   *string `db:"ingredients"    json:"ingredients"`
	NutritionInfo *string `db:"nutrition_info" json:"nutrition_info"`
	ProviderID    int64   `db:"provide_id"     json:"provide_id"`
	Category      string  `db:"category"       json:"category"`
}

// NewProduct carries a product insert together with the category it should
// land in; the category is resolved get-or-create by exact name.
type NewProduct struct {
	SKU           string
	Name          string
	Category      string
	CategorySlug  string
	Price         float64
	Stock         int
	Description   string
	Status        string
	Image         string
	Ingredients   string
	NutritionInfo string
}

type ProductUpdate struct {
	SKU           string
	Name          string
	Price         float64
	Stock         int
	Description   string
	Status        string
	Image         string
	Ingredients   string
	NutritionInfo string
}

type CreateProductRequest struct {
	SKU           string  `json:"sku"            validate:"required,min=1,max=64"`
	ProductName   string  `json:"productName"    validate:"required,min=1,max=150"`
	Category      string  `json:"category"       validate:"required,min=1,max=100"`
	Slug          string  `json:"slug"           validate:"omitempty,max=120"`
	Price         float64 `json:"price"          validate:"gte=0"`
	Count         int     `json:"count"          validate:"gte=0"`
	Description   string  `json:"description"    validate:"max=2000"`
	Status        string  `json:"status"         validate:"required,max=32"`
	Image         string  `json:"image"          validate:"max=500"`
	Ingredients   string  `json:"ingredients"    validate:"max=2000"`
	NutritionInfo string  `json:"nutritionInfo"  validate:"max=2000"`
}

type UpdateProductRequest struct {
	ProductName   string  `json:"productName"   validate:"required,min=1,max=150"`
	Price         float64 `json:"price"         validate:"gte=0"`
	Count         int     `json:"count"         validate:"gte=0"`
	Description   string  `json:"description"   validate:"max=2000"`
	Status        string  `json:"status"        validate:"required,max=32"`
	Image         string  `json:"image"         validate:"max=500"`
	Ingredients   string  `json:"ingredients"   validate:"max=2000"`
	NutritionInfo string  `json:"nutritionInfo" validate:"max=2000"`
}
