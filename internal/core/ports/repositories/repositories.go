package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo            AccountRepositoryFacade
	TransferRepo           TransferRepositoryFacade
	CustomerRepo           CustomerRepositoryFacade
	VendorRepo             VendorRepositoryFacade
	CustomerContactRepo    ContactRepositoryFacade
	VendorContactRepo      ContactRepositoryFacade
	ProductRepo            ProductServiceRepositoryFacade
	CategoryRepo           CategoryRepositoryFacade
	InvoiceRepo            InvoiceRepositoryFacade
	PaymentRepo            PaymentRepositoryFacade
	UserRepo               UserRepositoryFacade
	RevokedTokenRepo       RevokedTokenRepository
	PasswordResetTokenRepo PasswordResetTokenRepository
	AuditLogRepo           AuditLogRepository
}
