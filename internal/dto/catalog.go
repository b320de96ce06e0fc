package dto

import (
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	Description   string          `json:"description" binding:"max=255"`
	Price         decimal.Decimal `json:"price" binding:"decimalgte0" swaggertype:"string" example:"9.99"`
	Cost          decimal.Decimal `json:"cost" binding:"decimalgte0" swaggertype:"string" example:"4.50"`
	StockQuantity *int            `json:"stockQuantity" binding:"omitempty,min=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Description   *string          `json:"description" binding:"omitempty,max=255"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty,decimalgte0" swaggertype:"string"`
	Cost          *decimal.Decimal `json:"cost" binding:"omitempty,decimalgte0" swaggertype:"string"`
	StockQuantity *int             `json:"stockQuantity" binding:"omitempty,min=0"`
}

type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" swaggertype:"string"`
	Cost          decimal.Decimal `json:"cost" swaggertype:"string"`
	StockQuantity *int            `json:"stockQuantity,omitempty"`
	RecordMeta
}

func ToProductResponse(p *domain.ProductService) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Cost:          p.Cost,
		StockQuantity: p.StockQuantity,
		RecordMeta:    toRecordMeta(p.AuditFields, p.SoftDeleteFields),
	}
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

func ToListProductResponse(products []domain.ProductService) ListProductsResponse {
	return ListProductsResponse{Products: mapList(products, ToProductResponse)}
}

type CreateCategoryRequest struct {
	Kind        domain.CategoryKind `json:"kind" binding:"required,oneof=income expense"`
	Name        string              `json:"name" binding:"required,max=100"`
	Description string              `json:"description" binding:"max=255"`
}

// UpdateCategoryRequest cannot change the kind; create a new category instead.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type ListCategoriesParams struct {
	ListParams
	Kind *domain.CategoryKind `form:"kind" binding:"omitempty,oneof=income expense"`
}

type CategoryResponse struct {
	CategoryID  string              `json:"categoryID"`
	Kind        domain.CategoryKind `json:"kind"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	RecordMeta
}

func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:  c.CategoryID,
		Kind:        c.Kind,
		Name:        c.Name,
		Description: c.Description,
		RecordMeta:  toRecordMeta(c.AuditFields, c.SoftDeleteFields),
	}
}

type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func ToListCategoryResponse(categories []domain.Category) ListCategoriesResponse {
	return ListCategoriesResponse{Categories: mapList(categories, ToCategoryResponse)}
}
