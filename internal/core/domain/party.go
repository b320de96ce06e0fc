package domain

// Customer is someone invoices are raised against.
type Customer struct {
	CustomerID  string `json:"customerID" db:"customer_id"`
	FirstName   string `json:"firstName" db:"first_name"`
	LastName    string `json:"lastName" db:"last_name"`
	Email       string `json:"email" db:"email"`
	Phone       string `json:"phone" db:"phone"`
	Address     string `json:"address" db:"address"`
	Description string `json:"description" db:"description"`
	AuditFields
	SoftDeleteFields
}

// Vendor is a supplier. Contact details are optional.
type Vendor struct {
	VendorID    string  `json:"vendorID" db:"vendor_id"`
	FirstName   string  `json:"firstName" db:"first_name"`
	LastName    string  `json:"lastName" db:"last_name"`
	Email       *string `json:"email,omitempty" db:"email"`
	Phone       *string `json:"phone,omitempty" db:"phone"`
	Address     *string `json:"address,omitempty" db:"address"`
	Description string  `json:"description" db:"description"`
	AuditFields
	SoftDeleteFields
}

// ContactType is the channel of an additional contact entry.
type ContactType string

const (
	ContactEmail ContactType = "email"
	ContactPhone ContactType = "phone"
)

// ContactOwner distinguishes customer contacts from vendor contacts; both share one shape.
type ContactOwner string

const (
	ContactOwnerCustomer ContactOwner = "customer"
	ContactOwnerVendor   ContactOwner = "vendor"
)

// EntityType returns the audit entity type for contacts of this owner.
func (o ContactOwner) EntityType() EntityType {
	if o == ContactOwnerVendor {
		return EntityVendorContact
	}
	return EntityCustomerContact
}

// Contact is an extra email address or phone number of a customer or vendor.
type Contact struct {
	ContactID    string      `json:"contactID" db:"contact_id"`
	OwnerID      string      `json:"ownerID" db:"owner_id"`
	ContactType  ContactType `json:"contactType" db:"contact_type"`
	ContactValue string      `json:"contactValue" db:"contact_value"`
	AuditFields
	SoftDeleteFields
}
