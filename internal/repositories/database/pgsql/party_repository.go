package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	customerColumns = `customer_id, first_name, last_name, email, phone, address, description,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertCustomerQuery = `
		INSERT INTO customers (customer_id, first_name, last_name, email, phone, address, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	updateCustomerQuery = `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, phone = $5, address = $6, description = $7,
			last_updated_at = GREATEST(last_updated_at, $8), last_updated_by = $9
		WHERE customer_id = $1`

	vendorColumns = `vendor_id, first_name, last_name, email, phone, address, description,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertVendorQuery = `
		INSERT INTO vendors (vendor_id, first_name, last_name, email, phone, address, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	updateVendorQuery = `
		UPDATE vendors
		SET first_name = $2, last_name = $3, email = $4, phone = $5, address = $6, description = $7,
			last_updated_at = GREATEST(last_updated_at, $8), last_updated_by = $9
		WHERE vendor_id = $1`
)

type PgxCustomerRepository struct {
	pgxLifecycleStore
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		pgxLifecycleStore: newLifecycleStore(BaseRepository{Pool: pool}, "customers", "customer_id"),
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.Pool.Exec(ctx, insertCustomerQuery,
		c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.Description,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer %s: %w", c.CustomerID, translatePgError(err))
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return collectOne[domain.Customer](ctx, r.Pool, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, customerID)
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, opts domain.ListOptions) ([]domain.Customer, error) {
	opts = opts.Normalize()
	query := `SELECT ` + customerColumns + ` FROM customers` + activeClause(opts.IncludeDeleted, "WHERE") +
		` ORDER BY last_name, first_name, customer_id LIMIT $1 OFFSET $2`
	customers, err := collectMany[domain.Customer](ctx, r.Pool, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	return execOne(ctx, r.Pool, updateCustomerQuery,
		c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.Description,
		c.LastUpdatedAt, c.LastUpdatedBy,
	)
}

type PgxVendorRepository struct {
	pgxLifecycleStore
}

func newPgxVendorRepository(pool *pgxpool.Pool) portsrepo.VendorRepositoryFacade {
	return &PgxVendorRepository{
		pgxLifecycleStore: newLifecycleStore(BaseRepository{Pool: pool}, "vendors", "vendor_id"),
	}
}

var _ portsrepo.VendorRepositoryFacade = (*PgxVendorRepository)(nil)

func (r *PgxVendorRepository) SaveVendor(ctx context.Context, v domain.Vendor) error {
	_, err := r.Pool.Exec(ctx, insertVendorQuery,
		v.VendorID, v.FirstName, v.LastName, v.Email, v.Phone, v.Address, v.Description,
		v.CreatedAt, v.CreatedBy, v.LastUpdatedAt, v.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save vendor %s: %w", v.VendorID, translatePgError(err))
	}
	return nil
}

func (r *PgxVendorRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	return collectOne[domain.Vendor](ctx, r.Pool, `SELECT `+vendorColumns+` FROM vendors WHERE vendor_id = $1`, vendorID)
}

func (r *PgxVendorRepository) ListVendors(ctx context.Context, opts domain.ListOptions) ([]domain.Vendor, error) {
	opts = opts.Normalize()
	query := `SELECT ` + vendorColumns + ` FROM vendors` + activeClause(opts.IncludeDeleted, "WHERE") +
		` ORDER BY last_name, first_name, vendor_id LIMIT $1 OFFSET $2`
	vendors, err := collectMany[domain.Vendor](ctx, r.Pool, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

func (r *PgxVendorRepository) UpdateVendor(ctx context.Context, v domain.Vendor) error {
	return execOne(ctx, r.Pool, updateVendorQuery,
		v.VendorID, v.FirstName, v.LastName, v.Email, v.Phone, v.Address, v.Description,
		v.LastUpdatedAt, v.LastUpdatedBy,
	)
}
