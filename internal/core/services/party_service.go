package services

import (
	"context"
	"errors"
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

type customerService struct {
	lifecycleService
	repo portsrepo.CustomerRepositoryFacade
}

func NewCustomerService(repo portsrepo.CustomerRepositoryFacade, audit portsrepo.AuditLogRepository) portssvc.CustomerSvcFacade {
	return &customerService{
		lifecycleService: newLifecycleService(repo, domain.EntityCustomer, audit),
		repo:             repo,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(time.Now().UTC(), userID),
	}
	if err := s.repo.SaveCustomer(ctx, customer); err != nil {
		s.LogUnexpected(ctx, err, "Failed to save customer", slog.String("customer_id", customer.CustomerID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditCreate, domain.EntityCustomer, customer.CustomerID, userID)
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string, includeDeleted bool) (*domain.Customer, error) {
	customer, err := s.repo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return visible(customer, includeDeleted)
}

func (s *customerService) ListCustomers(ctx context.Context, opts domain.ListOptions) ([]domain.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, err
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	customer, err := s.repo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(customer, domain.EntityCustomer); err != nil {
		return nil, err
	}

	setIfPresent(&customer.FirstName, req.FirstName)
	setIfPresent(&customer.LastName, req.LastName)
	setIfPresent(&customer.Email, req.Email)
	setIfPresent(&customer.Phone, req.Phone)
	setIfPresent(&customer.Address, req.Address)
	setIfPresent(&customer.Description, req.Description)
	customer.Touch(time.Now().UTC(), userID)

	if err := s.repo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogUnexpected(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditUpdate, domain.EntityCustomer, customerID, userID)
	return customer, nil
}

type vendorService struct {
	lifecycleService
	repo portsrepo.VendorRepositoryFacade
}

func NewVendorService(repo portsrepo.VendorRepositoryFacade, audit portsrepo.AuditLogRepository) portssvc.VendorSvcFacade {
	return &vendorService{
		lifecycleService: newLifecycleService(repo, domain.EntityVendor, audit),
		repo:             repo,
	}
}

func (s *vendorService) CreateVendor(ctx context.Context, req dto.CreateVendorRequest, userID string) (*domain.Vendor, error) {
	vendor := domain.Vendor{
		VendorID:    uuid.NewString(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(time.Now().UTC(), userID),
	}
	if err := s.repo.SaveVendor(ctx, vendor); err != nil {
		s.LogUnexpected(ctx, err, "Failed to save vendor", slog.String("vendor_id", vendor.VendorID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditCreate, domain.EntityVendor, vendor.VendorID, userID)
	return &vendor, nil
}

func (s *vendorService) GetVendorByID(ctx context.Context, vendorID string, includeDeleted bool) (*domain.Vendor, error) {
	vendor, err := s.repo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return visible(vendor, includeDeleted)
}

func (s *vendorService) ListVendors(ctx context.Context, opts domain.ListOptions) ([]domain.Vendor, error) {
	vendors, err := s.repo.ListVendors(ctx, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vendors")
		return nil, err
	}
	if vendors == nil {
		return []domain.Vendor{}, nil
	}
	return vendors, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, vendorID string, req dto.UpdateVendorRequest, userID string) (*domain.Vendor, error) {
	vendor, err := s.repo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(vendor, domain.EntityVendor); err != nil {
		return nil, err
	}

	setIfPresent(&vendor.FirstName, req.FirstName)
	setIfPresent(&vendor.LastName, req.LastName)
	setIfPresent(&vendor.Description, req.Description)
	// Optional columns: an empty string clears them.
	setOptional(&vendor.Email, req.Email)
	setOptional(&vendor.Phone, req.Phone)
	setOptional(&vendor.Address, req.Address)
	vendor.Touch(time.Now().UTC(), userID)

	if err := s.repo.UpdateVendor(ctx, *vendor); err != nil {
		s.LogUnexpected(ctx, err, "Failed to update vendor", slog.String("vendor_id", vendorID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditUpdate, domain.EntityVendor, vendorID, userID)
	return vendor, nil
}

// contactService serves either customer or vendor contacts.
type contactService struct {
	lifecycleService
	owner        domain.ContactOwner
	repo         portsrepo.ContactRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	vendorRepo   portsrepo.VendorRepositoryFacade
}

func NewContactService(owner domain.ContactOwner, repo portsrepo.ContactRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, vendorRepo portsrepo.VendorRepositoryFacade, audit portsrepo.AuditLogRepository) portssvc.ContactSvcFacade {
	return &contactService{
		lifecycleService: newLifecycleService(repo, owner.EntityType(), audit),
		owner:            owner,
		repo:             repo,
		customerRepo:     customerRepo,
		vendorRepo:       vendorRepo,
	}
}

func (s *contactService) Owner() domain.ContactOwner {
	return s.owner
}

func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Contact, error) {
	if err := s.checkOwner(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	contact := domain.Contact{
		ContactID:    uuid.NewString(),
		OwnerID:      req.OwnerID,
		ContactType:  req.ContactType,
		ContactValue: req.ContactValue,
		AuditFields:  domain.NewAuditFields(time.Now().UTC(), userID),
	}
	if err := s.repo.SaveContact(ctx, contact); err != nil {
		s.LogUnexpected(ctx, err, "Failed to save contact",
			slog.String("owner", string(s.owner)),
			slog.String("owner_id", req.OwnerID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditCreate, s.entityType, contact.ContactID, userID)
	return &contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, contactID string, includeDeleted bool) (*domain.Contact, error) {
	contact, err := s.repo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	return visible(contact, includeDeleted)
}

func (s *contactService) ListContacts(ctx context.Context, ownerID *string, opts domain.ListOptions) ([]domain.Contact, error) {
	contacts, err := s.repo.ListContacts(ctx, ownerID, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contacts", slog.String("owner", string(s.owner)))
		return nil, err
	}
	if contacts == nil {
		return []domain.Contact{}, nil
	}
	return contacts, nil
}

func (s *contactService) UpdateContact(ctx context.Context, contactID string, req dto.UpdateContactRequest, userID string) (*domain.Contact, error) {
	contact, err := s.repo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(contact, s.entityType); err != nil {
		return nil, err
	}

	setIfPresent(&contact.ContactType, req.ContactType)
	setIfPresent(&contact.ContactValue, req.ContactValue)
	contact.Touch(time.Now().UTC(), userID)

	if err := s.repo.UpdateContact(ctx, *contact); err != nil {
		s.LogUnexpected(ctx, err, "Failed to update contact", slog.String("contact_id", contactID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditUpdate, s.entityType, contactID, userID)
	return contact, nil
}

// checkOwner requires the parent customer or vendor to exist and be active.
func (s *contactService) checkOwner(ctx context.Context, ownerID string) error {
	var (
		parent domain.SoftDeletable
		err    error
	)
	switch s.owner {
	case domain.ContactOwnerVendor:
		var v *domain.Vendor
		v, err = s.vendorRepo.FindVendorByID(ctx, ownerID)
		if err == nil {
			parent = v
		}
	default:
		var c *domain.Customer
		c, err = s.customerRepo.FindCustomerByID(ctx, ownerID)
		if err == nil {
			parent = c
		}
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s %s does not exist", apperrors.ErrValidation, s.owner, ownerID)
	}
	if err != nil {
		return err
	}
	if parent.IsDeleted() {
		return fmt.Errorf("%w: %s %s is deleted", apperrors.ErrValidation, s.owner, ownerID)
	}
	return nil
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	val := *v
	*dst = &val
}
