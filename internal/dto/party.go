package dto

import "github.com/SscSPs/cashflow_backend/internal/core/domain"

type CreateCustomerRequest struct {
	FirstName   string `json:"firstName" binding:"required,max=100"`
	LastName    string `json:"lastName" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=120"`
	Phone       string `json:"phone" binding:"required,max=20"`
	Address     string `json:"address" binding:"required,max=255"`
	Description string `json:"description" binding:"max=255"`
}

type UpdateCustomerRequest struct {
	FirstName   *string `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"lastName" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=120"`
	Phone       *string `json:"phone" binding:"omitempty,min=1,max=20"`
	Address     *string `json:"address" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type CustomerResponse struct {
	CustomerID  string `json:"customerID"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
	RecordMeta
}

func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:  c.CustomerID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Description: c.Description,
		RecordMeta:  toRecordMeta(c.AuditFields, c.SoftDeleteFields),
	}
}

type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

func ToListCustomerResponse(customers []domain.Customer) ListCustomersResponse {
	return ListCustomersResponse{Customers: mapList(customers, ToCustomerResponse)}
}

// CreateVendorRequest creates a vendor. Email, phone and address are optional.
type CreateVendorRequest struct {
	FirstName   string  `json:"firstName" binding:"required,max=100"`
	LastName    string  `json:"lastName" binding:"required,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=120"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Description string  `json:"description" binding:"max=255"`
}

type UpdateVendorRequest struct {
	FirstName   *string `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"lastName" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=120"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type VendorResponse struct {
	VendorID    string  `json:"vendorID"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Description string  `json:"description"`
	RecordMeta
}

func ToVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{
		VendorID:    v.VendorID,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Email:       v.Email,
		Phone:       v.Phone,
		Address:     v.Address,
		Description: v.Description,
		RecordMeta:  toRecordMeta(v.AuditFields, v.SoftDeleteFields),
	}
}

type ListVendorsResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

func ToListVendorResponse(vendors []domain.Vendor) ListVendorsResponse {
	return ListVendorsResponse{Vendors: mapList(vendors, ToVendorResponse)}
}

// CreateContactRequest is the owner-agnostic form used by the contact service.
type CreateContactRequest struct {
	OwnerID      string             `json:"ownerID" binding:"required,uuid"`
	ContactType  domain.ContactType `json:"contactType" binding:"required,oneof=email phone"`
	ContactValue string             `json:"contactValue" binding:"required,max=120"`
}

type CreateCustomerContactRequest struct {
	CustomerID   string             `json:"customerID" binding:"required,uuid"`
	ContactType  domain.ContactType `json:"contactType" binding:"required,oneof=email phone"`
	ContactValue string             `json:"contactValue" binding:"required,max=120"`
}

func (r CreateCustomerContactRequest) ToContactRequest() CreateContactRequest {
	return CreateContactRequest{OwnerID: r.CustomerID, ContactType: r.ContactType, ContactValue: r.ContactValue}
}

type CreateVendorContactRequest struct {
	VendorID     string             `json:"vendorID" binding:"required,uuid"`
	ContactType  domain.ContactType `json:"contactType" binding:"required,oneof=email phone"`
	ContactValue string             `json:"contactValue" binding:"required,max=120"`
}

func (r CreateVendorContactRequest) ToContactRequest() CreateContactRequest {
	return CreateContactRequest{OwnerID: r.VendorID, ContactType: r.ContactType, ContactValue: r.ContactValue}
}

type UpdateContactRequest struct {
	ContactType  *domain.ContactType `json:"contactType" binding:"omitempty,oneof=email phone"`
	ContactValue *string             `json:"contactValue" binding:"omitempty,min=1,max=120"`
}

// ListContactsParams adds an owner filter to the common list parameters.
type ListContactsParams struct {
	ListParams
	OwnerID *string `form:"owner_id" binding:"omitempty,uuid"`
}

type ContactResponse struct {
	ContactID    string              `json:"contactID"`
	OwnerID      string              `json:"ownerID"`
	OwnerType    domain.ContactOwner `json:"ownerType"`
	ContactType  domain.ContactType  `json:"contactType"`
	ContactValue string              `json:"contactValue"`
	RecordMeta
}

func ToContactResponse(owner domain.ContactOwner) func(*domain.Contact) ContactResponse {
	return func(c *domain.Contact) ContactResponse {
		return ContactResponse{
			ContactID:    c.ContactID,
			OwnerID:      c.OwnerID,
			OwnerType:    owner,
			ContactType:  c.ContactType,
			ContactValue: c.ContactValue,
			RecordMeta:   toRecordMeta(c.AuditFields, c.SoftDeleteFields),
		}
	}
}

type ListContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

func ToListContactResponse(owner domain.ContactOwner, contacts []domain.Contact) ListContactsResponse {
	return ListContactsResponse{Contacts: mapList(contacts, ToContactResponse(owner))}
}
