package services

import (
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/platform/config"
	"github.com/SscSPs/cashflow_backend/internal/platform/mailer"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m mailer.Mailer) *portssvc.ServiceContainer {
	audit := repos.AuditLogRepo

	return &portssvc.ServiceContainer{
		Account:  NewAccountService(repos.AccountRepo, audit),
		Transfer: NewTransferService(repos.TransferRepo, repos.AccountRepo, audit),
		Customer: NewCustomerService(repos.CustomerRepo, audit),
		Vendor:   NewVendorService(repos.VendorRepo, audit),
		CustomerContact: NewContactService(domain.ContactOwnerCustomer,
			repos.CustomerContactRepo, repos.CustomerRepo, repos.VendorRepo, audit),
		VendorContact: NewContactService(domain.ContactOwnerVendor,
			repos.VendorContactRepo, repos.CustomerRepo, repos.VendorRepo, audit),
		Product:       NewProductService(repos.ProductRepo, audit),
		Category:      NewCategoryService(repos.CategoryRepo, audit),
		Invoice:       NewInvoiceService(repos.InvoiceRepo, repos.PaymentRepo, repos.CustomerRepo, audit),
		Payment:       NewPaymentService(repos.InvoiceRepo, repos.PaymentRepo, repos.AccountRepo, audit),
		User:          NewUserService(repos.UserRepo, audit),
		TokenService:  NewTokenService(cfg, repos.UserRepo, repos.RevokedTokenRepo),
		PasswordReset: NewPasswordResetService(cfg, repos.UserRepo, repos.PasswordResetTokenRepo, m),
		AuditLog:      NewAuditLogService(audit),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CustomerSvcFacade      = (*customerService)(nil)
	_ portssvc.VendorSvcFacade        = (*vendorService)(nil)
	_ portssvc.ContactSvcFacade       = (*contactService)(nil)
	_ portssvc.ProductSvcFacade       = (*productService)(nil)
	_ portssvc.CategorySvcFacade      = (*categoryService)(nil)
	_ portssvc.TokenSvcFacade         = (*tokenService)(nil)
	_ portssvc.PasswordResetSvcFacade = (*passwordResetService)(nil)
	_ portssvc.AuditLogSvcFacade      = (*auditLogService)(nil)
)
