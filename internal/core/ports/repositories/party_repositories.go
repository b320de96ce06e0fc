package repositories

import (
	"context"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
)

// CustomerRepositoryFacade combines all customer persistence operations.
type CustomerRepositoryFacade interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, opts domain.ListOptions) ([]domain.Customer, error)
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	LifecycleManager
}

// VendorRepositoryFacade combines all vendor persistence operations.
type VendorRepositoryFacade interface {
	FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error)
	ListVendors(ctx context.Context, opts domain.ListOptions) ([]domain.Vendor, error)
	SaveVendor(ctx context.Context, vendor domain.Vendor) error
	UpdateVendor(ctx context.Context, vendor domain.Vendor) error
	LifecycleManager
}

// ContactRepositoryFacade persists the contacts of one owner kind (customer or vendor).
type ContactRepositoryFacade interface {
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	// ListContacts lists contacts, optionally only those of one owner.
	ListContacts(ctx context.Context, ownerID *string, opts domain.ListOptions) ([]domain.Contact, error)
	SaveContact(ctx context.Context, contact domain.Contact) error
	UpdateContact(ctx context.Context, contact domain.Contact) error
	LifecycleManager
}
