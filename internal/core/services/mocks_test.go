package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- transactions and lifecycle, shared by every repository mock ---

// expectTx sets up a transaction that is begun once and may be committed or rolled back.
func expectTx(m *mock.Mock) {
	m.On("Begin", mock.Anything).Return(nil, nil).Once()
	m.On("Commit", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

type mockLifecycle struct {
	mock.Mock
}

func (m *mockLifecycle) MarkDeleted(ctx context.Context, id string, deletedAt time.Time) error {
	return m.Called(ctx, id, deletedAt).Error(0)
}

func (m *mockLifecycle) Restore(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLifecycle) Purge(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLifecycle) MarkDeletedInTx(ctx context.Context, tx pgx.Tx, id string, deletedAt time.Time) error {
	return m.Called(ctx, tx, id, deletedAt).Error(0)
}

func (m *mockLifecycle) RestoreInTx(ctx context.Context, tx pgx.Tx, id string) error {
	return m.Called(ctx, tx, id).Error(0)
}

func (m *mockLifecycle) PurgeInTx(ctx context.Context, tx pgx.Tx, id string) error {
	return m.Called(ctx, tx, id).Error(0)
}

// lifecycleRepo is the shared base of the repository mocks below; they all record on one mock.Mock.
type lifecycleRepo struct {
	mockLifecycle
}

func (m *lifecycleRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *lifecycleRepo) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *lifecycleRepo) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func ptrOrNil[T any](args mock.Arguments, i int) *T {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*T)
}

func sliceOrNil[T any](args mock.Arguments, i int) []T {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]T)
}

// --- accounts and transfers ---

type MockAccountRepository struct {
	lifecycleRepo
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	return ptrOrNil[domain.Account](args, 0), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, opts domain.ListOptions) ([]domain.Account, error) {
	args := m.Called(ctx, opts)
	return sliceOrNil[domain.Account](args, 0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	return m.Called(ctx, tx, balanceChanges, userID, now).Error(0)
}

type MockTransferRepository struct {
	lifecycleRepo
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	return ptrOrNil[domain.Transfer](args, 0), args.Error(1)
}

func (m *MockTransferRepository) ListTransfers(ctx context.Context, opts domain.ListOptions) ([]domain.Transfer, error) {
	args := m.Called(ctx, opts)
	return sliceOrNil[domain.Transfer](args, 0), args.Error(1)
}

func (m *MockTransferRepository) SaveTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	return m.Called(ctx, tx, transfer).Error(0)
}

func (m *MockTransferRepository) UpdateTransfer(ctx context.Context, transfer domain.Transfer) error {
	return m.Called(ctx, transfer).Error(0)
}

// --- customers ---

type MockCustomerRepository struct {
	lifecycleRepo
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	return ptrOrNil[domain.Customer](args, 0), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, opts domain.ListOptions) ([]domain.Customer, error) {
	args := m.Called(ctx, opts)
	return sliceOrNil[domain.Customer](args, 0), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

type MockVendorRepository struct {
	lifecycleRepo
}

func (m *MockVendorRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, vendorID)
	return ptrOrNil[domain.Vendor](args, 0), args.Error(1)
}

func (m *MockVendorRepository) ListVendors(ctx context.Context, opts domain.ListOptions) ([]domain.Vendor, error) {
	args := m.Called(ctx, opts)
	return sliceOrNil[domain.Vendor](args, 0), args.Error(1)
}

func (m *MockVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	return m.Called(ctx, vendor).Error(0)
}

func (m *MockVendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	return m.Called(ctx, vendor).Error(0)
}

type MockContactRepository struct {
	lifecycleRepo
}

func (m *MockContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	return ptrOrNil[domain.Contact](args, 0), args.Error(1)
}

func (m *MockContactRepository) ListContacts(ctx context.Context, ownerID *string, opts domain.ListOptions) ([]domain.Contact, error) {
	args := m.Called(ctx, ownerID, opts)
	return sliceOrNil[domain.Contact](args, 0), args.Error(1)
}

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

// --- catalog ---

type MockProductRepository struct {
	lifecycleRepo
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.ProductService, error) {
	args := m.Called(ctx, productID)
	return ptrOrNil[domain.ProductService](args, 0), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, opts domain.ListOptions) ([]domain.ProductService, error) {
	args := m.Called(ctx, opts)
	return sliceOrNil[domain.ProductService](args, 0), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.ProductService) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.ProductService) error {
	return m.Called(ctx, product).Error(0)
}

// --- invoices and payments ---

type MockInvoiceRepository struct {
	lifecycleRepo
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	return ptrOrNil[domain.Invoice](args, 0), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, customerID *string, opts domain.ListOptions) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerID, opts)
	return sliceOrNil[domain.Invoice](args, 0), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	return ptrOrNil[domain.Invoice](args, 0), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	return m.Called(ctx, tx, invoice).Error(0)
}

type MockPaymentRepository struct {
	lifecycleRepo
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	return ptrOrNil[domain.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, invoiceID *string, opts domain.ListOptions) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID, opts)
	return sliceOrNil[domain.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	return m.Called(ctx, tx, payment).Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	return m.Called(ctx, tx, payment).Error(0)
}

func (m *MockPaymentRepository) ListActivePaymentAmountsInTx(ctx context.Context, tx pgx.Tx, invoiceID string) ([]decimal.Decimal, error) {
	args := m.Called(ctx, tx, invoiceID)
	return sliceOrNil[decimal.Decimal](args, 0), args.Error(1)
}

// --- users, tokens, audit, mail ---

type MockUserRepository struct {
	lifecycleRepo
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return ptrOrNil[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	return ptrOrNil[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return ptrOrNil[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*domain.User, error) {
	args := m.Called(ctx, refreshTokenHash)
	return ptrOrNil[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	return sliceOrNil[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePasswordInTx(ctx context.Context, tx pgx.Tx, userID string, passwordHash string, updatedAt time.Time) error {
	return m.Called(ctx, tx, userID, passwordHash, updatedAt).Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID string, role domain.Role, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, userID, role, updatedBy, updatedAt).Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime).Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockRevokedTokenRepository struct {
	mock.Mock
}

func (m *MockRevokedTokenRepository) RevokeToken(ctx context.Context, token domain.RevokedToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRevokedTokenRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevokedTokenRepository) DeleteExpiredRevokedTokens(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockResetTokenRepository) FindResetToken(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, tokenHash)
	return ptrOrNil[domain.PasswordResetToken](args, 0), args.Error(1)
}

func (m *MockResetTokenRepository) MarkResetTokenUsedInTx(ctx context.Context, tx pgx.Tx, tokenHash string, usedAt time.Time) error {
	return m.Called(ctx, tx, tokenHash, usedAt).Error(0)
}

func (m *MockResetTokenRepository) DeleteResetTokensCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditLogRepository) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[domain.AuditLog](args, 0), args.Error(1)
}

// newAuditMock accepts any number of audit writes.
func newAuditMock() *MockAuditLogRepository {
	m := new(MockAuditLogRepository)
	m.On("SaveAuditLog", mock.Anything, mock.Anything).Return(nil).Maybe()
	return m
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}
