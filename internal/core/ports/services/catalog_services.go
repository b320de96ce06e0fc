package services

import (
	"context"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/SscSPs/cashflow_backend/internal/dto"
)

type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.ProductService, error)
	GetProductByID(ctx context.Context, productID string, includeDeleted bool) (*domain.ProductService, error)
	ListProducts(ctx context.Context, opts domain.ListOptions) ([]domain.ProductService, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.ProductService, error)
	LifecycleSvc
}

type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string, includeDeleted bool) (*domain.Category, error)
	ListCategories(ctx context.Context, kind *domain.CategoryKind, opts domain.ListOptions) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error)
	LifecycleSvc
}
