package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	productColumns = `product_id, name, description, price, cost, stock_quantity,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertProductQuery = `
		INSERT INTO product_services (product_id, name, description, price, cost, stock_quantity, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	updateProductQuery = `
		UPDATE product_services
		SET name = $2, description = $3, price = $4, cost = $5, stock_quantity = $6,
			last_updated_at = GREATEST(last_updated_at, $7), last_updated_by = $8
		WHERE product_id = $1`

	categoryColumns = `category_id, kind, name, description,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertCategoryQuery = `
		INSERT INTO categories (category_id, kind, name, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	updateCategoryQuery = `
		UPDATE categories
		SET name = $2, description = $3, last_updated_at = GREATEST(last_updated_at, $4), last_updated_by = $5
		WHERE category_id = $1`
)

type PgxProductServiceRepository struct {
	pgxLifecycleStore
}

func newPgxProductServiceRepository(pool *pgxpool.Pool) portsrepo.ProductServiceRepositoryFacade {
	return &PgxProductServiceRepository{
		pgxLifecycleStore: newLifecycleStore(BaseRepository{Pool: pool}, "product_services", "product_id"),
	}
}

var _ portsrepo.ProductServiceRepositoryFacade = (*PgxProductServiceRepository)(nil)

func (r *PgxProductServiceRepository) SaveProduct(ctx context.Context, p domain.ProductService) error {
	_, err := r.Pool.Exec(ctx, insertProductQuery,
		p.ProductID, p.Name, p.Description, p.Price, p.Cost, p.StockQuantity,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", p.ProductID, translatePgError(err))
	}
	return nil
}

func (r *PgxProductServiceRepository) FindProductByID(ctx context.Context, productID string) (*domain.ProductService, error) {
	return collectOne[domain.ProductService](ctx, r.Pool, `SELECT `+productColumns+` FROM product_services WHERE product_id = $1`, productID)
}

func (r *PgxProductServiceRepository) ListProducts(ctx context.Context, opts domain.ListOptions) ([]domain.ProductService, error) {
	opts = opts.Normalize()
	query := `SELECT ` + productColumns + ` FROM product_services` + activeClause(opts.IncludeDeleted, "WHERE") +
		` ORDER BY name, product_id LIMIT $1 OFFSET $2`
	products, err := collectMany[domain.ProductService](ctx, r.Pool, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *PgxProductServiceRepository) UpdateProduct(ctx context.Context, p domain.ProductService) error {
	return execOne(ctx, r.Pool, updateProductQuery,
		p.ProductID, p.Name, p.Description, p.Price, p.Cost, p.StockQuantity,
		p.LastUpdatedAt, p.LastUpdatedBy,
	)
}

type PgxCategoryRepository struct {
	pgxLifecycleStore
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		pgxLifecycleStore: newLifecycleStore(BaseRepository{Pool: pool}, "categories", "category_id"),
	}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, c domain.Category) error {
	_, err := r.Pool.Exec(ctx, insertCategoryQuery,
		c.CategoryID, c.Kind, c.Name, c.Description,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", c.CategoryID, translatePgError(err))
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return collectOne[domain.Category](ctx, r.Pool, `SELECT `+categoryColumns+` FROM categories WHERE category_id = $1`, categoryID)
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, kind *domain.CategoryKind, opts domain.ListOptions) ([]domain.Category, error) {
	opts = opts.Normalize()
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ($3::text IS NULL OR kind = $3)` +
		activeClause(opts.IncludeDeleted, "AND") +
		` ORDER BY kind, name LIMIT $1 OFFSET $2`
	categories, err := collectMany[domain.Category](ctx, r.Pool, query, opts.Limit, opts.Offset, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, c domain.Category) error {
	return execOne(ctx, r.Pool, updateCategoryQuery, c.CategoryID, c.Name, c.Description, c.LastUpdatedAt, c.LastUpdatedBy)
}
