package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/SscSPs/cashflow_backend/internal/core/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContactService_OwnerMustBeActive(t *testing.T) {
	ctx := context.Background()
	contacts := new(MockContactRepository)
	customers := new(MockCustomerRepository)
	vendors := new(MockVendorRepository)
	svc := services.NewContactService(domain.ContactOwnerVendor, contacts, customers, vendors, newAuditMock())

	deletedAt := time.Now()
	active := uuid.NewString()
	deleted := uuid.NewString()
	vendors.On("FindVendorByID", ctx, active).Return(&domain.Vendor{VendorID: active}, nil)
	vendors.On("FindVendorByID", ctx, deleted).Return(&domain.Vendor{VendorID: deleted, SoftDeleteFields: domain.SoftDeleteFields{DeletedAt: &deletedAt}}, nil)
	contacts.On("SaveContact", ctx, mock.MatchedBy(func(c domain.Contact) bool { return c.OwnerID == active })).Return(nil).Once()

	c, err := svc.CreateContact(ctx, dto.CreateContactRequest{OwnerID: active, ContactType: domain.ContactEmail, ContactValue: "v@example.com"}, "u")
	require.NoError(t, err)
	assert.Equal(t, active, c.OwnerID)
	assert.Equal(t, domain.ContactOwnerVendor, svc.Owner())

	_, err = svc.CreateContact(ctx, dto.CreateContactRequest{OwnerID: deleted, ContactType: domain.ContactPhone, ContactValue: "123"}, "u")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	customers.AssertNotCalled(t, "FindCustomerByID", mock.Anything, mock.Anything)
}

func TestVendorService_UpdateClearsOptionalFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVendorRepository)
	svc := services.NewVendorService(repo, newAuditMock())

	email := "old@example.com"
	vendor := &domain.Vendor{VendorID: uuid.NewString(), FirstName: "V", Email: &email}
	empty := ""
	repo.On("FindVendorByID", ctx, vendor.VendorID).Return(vendor, nil).Once()
	repo.On("UpdateVendor", ctx, mock.MatchedBy(func(v domain.Vendor) bool { return v.Email == nil && v.FirstName == "V" })).Return(nil).Once()

	_, err := svc.UpdateVendor(ctx, vendor.VendorID, dto.UpdateVendorRequest{Email: &empty}, "u")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCustomerService_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	svc := services.NewCustomerService(repo, newAuditMock())
	repo.On("SaveCustomer", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := svc.CreateCustomer(ctx, dto.CreateCustomerRequest{FirstName: "A", LastName: "B", Email: "a@example.com", Phone: "1", Address: "x"}, "u")

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestProductService_RejectsNegativeStock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := services.NewProductService(repo, newAuditMock())
	product := &domain.ProductService{ProductID: uuid.NewString(), Price: decimal.NewFromInt(5)}
	neg := -1
	repo.On("FindProductByID", ctx, product.ProductID).Return(product, nil).Once()

	_, err := svc.UpdateProduct(ctx, product.ProductID, dto.UpdateProductRequest{StockQuantity: &neg}, "u")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
}
