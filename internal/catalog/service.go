// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"strings"
	"unicode"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListGrouped(ctx context.Context) ([]CategoryGroup, error) {
	return s.repo.ListGrouped(ctx)
}

func (s *Service) ListStock(ctx context.Context) ([]StockItem, error) {
	return s.repo.ListStock(ctx)
}

func (s *Service) ListMenu(ctx context.Context) ([]ProductView, error) {
	return s.repo.ListMenu(ctx)
}

func (s *Service) Search(
	ctx context.Context,
	keyword string,
) ([]ProductView, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.repo.ListMenu(ctx)
	}

	return s.repo.Search(ctx, keyword)
}

func (s *Service) AddProduct(
	ctx context.Context,
	req CreateProductRequest,
) error {
	category := strings.TrimSpace(req.Category)

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = Slugify(category)
	}

	return s.repo.AddProduct(ctx, NewProduct{
		SKU:           strings.TrimSpace(req.SKU),
		Name:          strings.TrimSpace(req.ProductName),
		Category:      category,
		CategorySlug:  slug,
		Price:         req.Price,
		Stock:         req.Count,
		Description:   req.Description,
		Status:        req.Status,
		Image:         req.Image,
		Ingredients:   req.Ingredients,
		NutritionInfo: req.NutritionInfo,
	})
}

// DeleteProduct removes the product, then reclaims its category when no other
// product references it. The check runs against committed post-delete state;
// a category keeps existing as long as one product still points at it.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	categoryID, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.repo.CategoryHasProducts(ctx, categoryID)
	if err != nil {
		return err
	}

	if !inUse {
		return s.repo.DeleteCategory(ctx, categoryID)
	}

	return nil
}

func (s *Service) GetDetails(
	ctx context.Context,
	id string,
) (*ProductView, error) {
	return s.repo.GetDetails(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	sku string,
	req UpdateProductRequest,
) (*ProductView, error) {
	return s.repo.Update(ctx, ProductUpdate{
		SKU:           sku,
		Name:          strings.TrimSpace(req.ProductName),
		Price:         req.Price,
		Stock:         req.Count,
		Description:   req.Description,
		Status:        req.Status,
		Image:         req.Image,
		Ingredients:   req.Ingredients,
		NutritionInfo: req.NutritionInfo,
	})
}

// Slugify lowercases the name and collapses every run of non-alphanumerics
// into a single hyphen: "Sourdough & Rye" becomes "sourdough-rye".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}

	return b.String()
}
