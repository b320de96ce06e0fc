package services

import (
	"context"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/SscSPs/cashflow_backend/internal/dto"
)

type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string, includeDeleted bool) (*domain.Customer, error)
	ListCustomers(ctx context.Context, opts domain.ListOptions) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	LifecycleSvc
}

type VendorSvcFacade interface {
	CreateVendor(ctx context.Context, req dto.CreateVendorRequest, userID string) (*domain.Vendor, error)
	GetVendorByID(ctx context.Context, vendorID string, includeDeleted bool) (*domain.Vendor, error)
	ListVendors(ctx context.Context, opts domain.ListOptions) ([]domain.Vendor, error)
	UpdateVendor(ctx context.Context, vendorID string, req dto.UpdateVendorRequest, userID string) (*domain.Vendor, error)
	LifecycleSvc
}

// ContactSvcFacade manages the contacts of one owner kind; Owner tells which.
type ContactSvcFacade interface {
	Owner() domain.ContactOwner
	CreateContact(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Contact, error)
	GetContactByID(ctx context.Context, contactID string, includeDeleted bool) (*domain.Contact, error)
	ListContacts(ctx context.Context, ownerID *string, opts domain.ListOptions) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, contactID string, req dto.UpdateContactRequest, userID string) (*domain.Contact, error)
	LifecycleSvc
}
