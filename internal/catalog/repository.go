// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/bakery-backoffice/internal/core"
)

type Repository interface {
	ListGrouped(ctx context.Context) ([]CategoryGroup, error)
	ListStock(ctx context.Context) ([]StockItem, error)
	ListMenu(ctx context.Context) ([]ProductView, error)
	Search(ctx context.Context, keyword string) ([]ProductView, error)
	AddProduct(ctx context.Context, product NewProduct) error
	DeleteProduct(ctx context.Context, id string) (int64, error)
	CategoryHasProducts(ctx context.Context, categoryID int64) (bool, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
	GetDetails(ctx context.Context, id string) (*ProductView, error)
	Update(ctx context.Context, update ProductUpdate) (*ProductView, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListGrouped(ctx context.Context) ([]CategoryGroup, error) {
	query := `
		SELECT c.name AS category_name, c.slug AS category_slug,
		       p.id, p.name, p.images, p.price
		FROM product p
		INNER JOIN category c ON p.category_id = c.id
		ORDER BY c.name, p.name`

	var rows []groupedRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list grouped products: %w", err)
	}

	return buildGroups(rows), nil
}

func (r *repository) ListStock(ctx context.Context) ([]StockItem, error) {
	query := `
		SELECT p.id, p.name, p.price, p.stock, c.name AS category,
		       p.description, p.images, p.status, p.ingredients,
		       p.nutrition_info
		FROM product p
		JOIN category c ON p.category_id = c.id
		ORDER BY p.id ASC`

	var items []StockItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}

	return items, nil
}

func (r *repository) ListMenu(ctx context.Context) ([]ProductView, error) {
	query := `
		SELECT p.id, p.name, p.category_id, p.price, p.stock, p.description,
		       p.status, p.images, p.ingredients, p.nutrition_info,
		       p.provide_id, c.name AS category
		FROM product p
		JOIN category c ON p.category_id = c.id
		ORDER BY p.name`

	var items []ProductView
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}

	return items, nil
}

// Search matches the keyword as a case-insensitive pattern against product
// names (~*), so "ros" matches "Rosemary Focaccia" but not "Croissant".
func (r *repository) Search(
	ctx context.Context,
	keyword string,
) ([]ProductView, error) {
	query := `
		SELECT p.id, p.name, p.category_id, p.price, p.stock, p.description,
		       p.status, p.images, p.ingredients, p.nutrition_info,
		       p.provide_id, c.name AS category
		FROM product p
		JOIN category c ON p.category_id = c.id
		WHERE p.name ~* $1
		ORDER BY p.name`

	var items []ProductView
	if err := r.db.SelectContext(ctx, &items, query, keyword); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	return items, nil
}

// AddProduct resolves the category get-or-create and inserts the product on
// one transactional client, so a failed product insert never leaves behind an
// orphan category.
func (r *repository) AddProduct(
	ctx context.Context,
	product NewProduct,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		categoryID, err := getOrCreateCategory(
			ctx,
			tx,
			product.Category,
			product.CategorySlug,
		)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO product (
				id, name, category_id, price, provide_id, images,
				stock, description, status, ingredients, nutrition_info
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

		_, err = tx.ExecContext(ctx, query,
			product.SKU,
			product.Name,
			categoryID,
			product.Price,
			defaultProviderID,
			product.Image,
			product.Stock,
			product.Description,
			product.Status,
			product.Ingredients,
			product.NutritionInfo,
		)
		if err != nil {
			if core.IsUniqueViolation(err) {
				return fmt.Errorf("insert product: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("insert product: %w", err)
		}

		return nil
	})
}

// getOrCreateCategory looks the category up by exact name and inserts it when
// absent. The insert uses ON CONFLICT DO NOTHING so a concurrent insert of
// the same new name cannot abort the surrounding transaction; losing the race
// falls through to a second lookup, leaving exactly one row per name either
// way.
func getOrCreateCategory(
	ctx context.Context,
	tx *sqlx.Tx,
	name, slug string,
) (int64, error) {
	selectQuery := `SELECT id FROM category WHERE name = $1`

	var id int64
	err := tx.GetContext(ctx, &id, selectQuery, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("find category: %w", err)
	}

	insertQuery := `
		INSERT INTO category (name, slug)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`

	err = tx.GetContext(ctx, &id, insertQuery, name, slug)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("insert category: %w", err)
	}

	// A concurrent transaction inserted the name first; its row is the one.
	if err := tx.GetContext(ctx, &id, selectQuery, name); err != nil {
		return 0, fmt.Errorf("re-find category: %w", err)
	}

	return id, nil
}

// DeleteProduct removes the product and reports the category it referenced.
// The orphan check runs separately, after this delete is committed, via
// CategoryHasProducts and DeleteCategory.
func (r *repository) DeleteProduct(
	ctx context.Context,
	id string,
) (int64, error) {
	query := `DELETE FROM product WHERE id = $1 RETURNING category_id`

	var categoryID int64
	err := r.db.GetContext(ctx, &categoryID, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("delete product: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}

	return categoryID, nil
}

func (r *repository) CategoryHasProducts(
	ctx context.Context,
	categoryID int64,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM product WHERE category_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, categoryID); err != nil {
		return false, fmt.Errorf("check category products: %w", err)
	}

	return exists, nil
}

func (r *repository) DeleteCategory(
	ctx context.Context,
	categoryID int64,
) error {
	query := `DELETE FROM category WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	return nil
}

func (r *repository) GetDetails(
	ctx context.Context,
	id string,
) (*ProductView, error) {
	query := `
		SELECT p.id, p.name, p.category_id, p.price, p.stock, p.description,
		       p.status, p.images, p.ingredients, p.nutrition_info,
		       p.provide_id, c.name AS category
		FROM product p
		JOIN category c ON p.category_id = c.id
		WHERE p.id = $1`

	var view ProductView
	err := r.db.GetContext(ctx, &view, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product details: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product details: %w", err)
	}

	return &view, nil
}

// Update returns the updated row from the same statement that writes it, so
// a concurrent delete can never turn a committed update into a miss.
func (r *repository) Update(
	ctx context.Context,
	update ProductUpdate,
) (*ProductView, error) {
	query := `
		WITH updated AS (
			UPDATE product
			SET name = $1, price = $2, description = $3, stock = $4,
			    status = $5, images = $6, ingredients = $7,
			    nutrition_info = $8
			WHERE id = $9
			RETURNING id, name, category_id, price, stock, description,
			          status, images, ingredients, nutrition_info, provide_id
		)
		SELECT u.id, u.name, u.category_id, u.price, u.stock, u.description,
		       u.status, u.images, u.ingredients, u.nutrition_info,
		       u.provide_id, c.name AS category
		FROM updated u
		JOIN category c ON u.category_id = c.id`

	var view ProductView
	err := r.db.GetContext(ctx, &view, query,
		update.Name,
		update.Price,
		update.Description,
		update.Stock,
		update.Status,
		update.Image,
		update.Ingredients,
		update.NutritionInfo,
		update.SKU,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	return &view, nil
}
