package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/google/uuid"
)

type productService struct {
	lifecycleService
	repo portsrepo.ProductServiceRepositoryFacade
}

func NewProductService(repo portsrepo.ProductServiceRepositoryFacade, audit portsrepo.AuditLogRepository) portssvc.ProductSvcFacade {
	return &productService{
		lifecycleService: newLifecycleService(repo, domain.EntityProductService, audit),
		repo:             repo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.ProductService, error) {
	product := domain.ProductService{
		ProductID:     uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Cost:          req.Cost,
		StockQuantity: req.StockQuantity,
		AuditFields:   domain.NewAuditFields(time.Now().UTC(), userID),
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		s.LogUnexpected(ctx, err, "Failed to save product", slog.String("product_id", product.ProductID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditCreate, domain.EntityProductService, product.ProductID, userID)
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string, includeDeleted bool) (*domain.ProductService, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return visible(product, includeDeleted)
}

func (s *productService) ListProducts(ctx context.Context, opts domain.ListOptions) ([]domain.ProductService, error) {
	products, err := s.repo.ListProducts(ctx, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, err
	}
	if products == nil {
		return []domain.ProductService{}, nil
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.ProductService, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(product, domain.EntityProductService); err != nil {
		return nil, err
	}

	setIfPresent(&product.Name, req.Name)
	setIfPresent(&product.Description, req.Description)
	setIfPresent(&product.Price, req.Price)
	setIfPresent(&product.Cost, req.Cost)
	if req.StockQuantity != nil {
		qty := *req.StockQuantity
		product.StockQuantity = &qty
	}
	if err := validateProduct(*product); err != nil {
		return nil, err
	}
	product.Touch(time.Now().UTC(), userID)

	if err := s.repo.UpdateProduct(ctx, *product); err != nil {
		s.LogUnexpected(ctx, err, "Failed to update product", slog.String("product_id", productID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditUpdate, domain.EntityProductService, productID, userID)
	return product, nil
}

func validateProduct(p domain.ProductService) error {
	switch {
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidation)
	case p.Cost.IsNegative():
		return fmt.Errorf("%w: cost cannot be negative", apperrors.ErrValidation)
	case p.StockQuantity != nil && *p.StockQuantity < 0:
		return fmt.Errorf("%w: stock quantity cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

type categoryService struct {
	lifecycleService
	repo portsrepo.CategoryRepositoryFacade
}

func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, audit portsrepo.AuditLogRepository) portssvc.CategorySvcFacade {
	return &categoryService{
		lifecycleService: newLifecycleService(repo, domain.EntityCategory, audit),
		repo:             repo,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Kind:        req.Kind,
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(time.Now().UTC(), userID),
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		s.LogUnexpected(ctx, err, "Failed to save category", slog.String("category_id", category.CategoryID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditCreate, domain.EntityCategory, category.CategoryID, userID)
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string, includeDeleted bool) (*domain.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return visible(category, includeDeleted)
}

func (s *categoryService) ListCategories(ctx context.Context, kind *domain.CategoryKind, opts domain.ListOptions) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx, kind, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(category, domain.EntityCategory); err != nil {
		return nil, err
	}

	setIfPresent(&category.Name, req.Name)
	setIfPresent(&category.Description, req.Description)
	category.Touch(time.Now().UTC(), userID)

	if err := s.repo.UpdateCategory(ctx, *category); err != nil {
		s.LogUnexpected(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditUpdate, domain.EntityCategory, categoryID, userID)
	return category, nil
}
