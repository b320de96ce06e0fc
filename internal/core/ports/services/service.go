package services

// ServiceContainer holds all the services the HTTP layer and the CLI depend on.
type ServiceContainer struct {
	Account         AccountSvcFacade
	Transfer        TransferSvcFacade
	Customer        CustomerSvcFacade
	Vendor          VendorSvcFacade
	CustomerContact ContactSvcFacade
	VendorContact   ContactSvcFacade
	Product         ProductSvcFacade
	Category        CategorySvcFacade
	Invoice         InvoiceSvcFacade
	Payment         PaymentSvcFacade
	User            UserSvcFacade
	TokenService    TokenSvcFacade
	PasswordReset   PasswordResetSvcFacade
	AuditLog        AuditLogSvcFacade
}
