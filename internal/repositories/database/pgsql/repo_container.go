package pgsql

import (
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:            newPgxAccountRepository(dbPool),
		TransferRepo:           newPgxTransferRepository(dbPool),
		CustomerRepo:           newPgxCustomerRepository(dbPool),
		VendorRepo:             newPgxVendorRepository(dbPool),
		CustomerContactRepo:    newPgxContactRepository(dbPool, domain.ContactOwnerCustomer),
		VendorContactRepo:      newPgxContactRepository(dbPool, domain.ContactOwnerVendor),
		ProductRepo:            newPgxProductServiceRepository(dbPool),
		CategoryRepo:           newPgxCategoryRepository(dbPool),
		InvoiceRepo:            newPgxInvoiceRepository(dbPool),
		PaymentRepo:            newPgxPaymentRepository(dbPool),
		UserRepo:               newPgxUserRepository(dbPool),
		RevokedTokenRepo:       newPgxRevokedTokenRepository(dbPool),
		PasswordResetTokenRepo: newPgxPasswordResetTokenRepository(dbPool),
		AuditLogRepo:           newPgxAuditLogRepository(dbPool),
	}
}
