package repositories

import (
	"context"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
)

// ProductServiceRepositoryFacade combines all product/service persistence operations.
type ProductServiceRepositoryFacade interface {
	FindProductByID(ctx context.Context, productID string) (*domain.ProductService, error)
	ListProducts(ctx context.Context, opts domain.ListOptions) ([]domain.ProductService, error)
	SaveProduct(ctx context.Context, product domain.ProductService) error
	UpdateProduct(ctx context.Context, product domain.ProductService) error
	LifecycleManager
}

// CategoryRepositoryFacade combines all income/expense category persistence operations.
type CategoryRepositoryFacade interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	// ListCategories lists categories, optionally of a single kind.
	ListCategories(ctx context.Context, kind *domain.CategoryKind, opts domain.ListOptions) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	LifecycleManager
}
