package handlers

import (
	"net/http"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := &customerHandler{customerService: customerService}

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		registerLifecycleRoutes(customers, customerService, domain.EntityCustomer)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 409 {object} ErrorResponse "Email or phone already in use"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce  json
// @Param   id path string true "Customer ID"
// @Param   include_deleted query bool false "Return the customer even if soft deleted"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	withDeleted, ok := includeDeleted(c)
	if !ok {
		return
	}
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"), withDeleted)
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Param   include_deleted query bool false "Include soft deleted customers"
// @Success 200 {object} dto.ListCustomersResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	var params dto.ListParams
	if !bindQuery(c, &params) {
		return
	}
	customers, err := h.customerService.ListCustomers(c.Request.Context(), params.ToOptions())
	if err != nil {
		respondError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCustomerResponse(customers))
}

// updateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   id path string true "Customer ID"
// @Param   customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	var req dto.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

type vendorHandler struct {
	vendorService portssvc.VendorSvcFacade
}

func registerVendorRoutes(rg *gin.RouterGroup, vendorService portssvc.VendorSvcFacade) {
	h := &vendorHandler{vendorService: vendorService}

	vendors := rg.Group("/vendors")
	{
		vendors.POST("", h.createVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/:id", h.getVendor)
		vendors.PUT("/:id", h.updateVendor)
		registerLifecycleRoutes(vendors, vendorService, domain.EntityVendor)
	}
}

// createVendor godoc
// @Summary Create a vendor
// @Tags vendors
// @Accept  json
// @Produce  json
// @Param   vendor body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} dto.VendorResponse
// @Failure 409 {object} ErrorResponse "Email or phone already in use"
// @Security BearerAuth
// @Router /vendors [post]
func (h *vendorHandler) createVendor(c *gin.Context) {
	var req dto.CreateVendorRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create vendor")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVendorResponse(vendor))
}

// getVendor godoc
// @Summary Get a vendor by ID
// @Tags vendors
// @Produce  json
// @Param   id path string true "Vendor ID"
// @Param   include_deleted query bool false "Return the vendor even if soft deleted"
// @Success 200 {object} dto.VendorResponse
// @Security BearerAuth
// @Router /vendors/{id} [get]
func (h *vendorHandler) getVendor(c *gin.Context) {
	withDeleted, ok := includeDeleted(c)
	if !ok {
		return
	}
	vendor, err := h.vendorService.GetVendorByID(c.Request.Context(), c.Param("id"), withDeleted)
	if err != nil {
		respondError(c, err, "Failed to retrieve vendor")
		return
	}
	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// listVendors godoc
// @Summary List vendors
// @Tags vendors
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Param   include_deleted query bool false "Include soft deleted vendors"
// @Success 200 {object} dto.ListVendorsResponse
// @Security BearerAuth
// @Router /vendors [get]
func (h *vendorHandler) listVendors(c *gin.Context) {
	var params dto.ListParams
	if !bindQuery(c, &params) {
		return
	}
	vendors, err := h.vendorService.ListVendors(c.Request.Context(), params.ToOptions())
	if err != nil {
		respondError(c, err, "Failed to list vendors")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVendorResponse(vendors))
}

// updateVendor godoc
// @Summary Update a vendor
// @Description An empty email, phone or address clears the field
// @Tags vendors
// @Accept  json
// @Produce  json
// @Param   id path string true "Vendor ID"
// @Param   vendor body dto.UpdateVendorRequest true "Fields to update"
// @Success 200 {object} dto.VendorResponse
// @Security BearerAuth
// @Router /vendors/{id} [put]
func (h *vendorHandler) updateVendor(c *gin.Context) {
	var req dto.UpdateVendorRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update vendor")
		return
	}
	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// contactHandler serves either /customer-contacts or /vendor-contacts, depending on owner.
type contactHandler struct {
	owner          domain.ContactOwner
	contactService portssvc.ContactSvcFacade
}

func registerContactRoutes(rg *gin.RouterGroup, path string, owner domain.ContactOwner, contactService portssvc.ContactSvcFacade) {
	h := &contactHandler{owner: owner, contactService: contactService}

	contacts := rg.Group(path)
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:id", h.getContact)
		contacts.PUT("/:id", h.updateContact)
		registerLifecycleRoutes(contacts, contactService, owner.EntityType())
	}
}

// createContact godoc
// @Summary Add a contact to a customer or vendor
// @Description Customer contacts take customerID, vendor contacts take vendorID
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   contact body dto.CreateCustomerContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse "Owner missing or deleted"
// @Failure 409 {object} ErrorResponse "Contact value already in use"
// @Security BearerAuth
// @Router /customer-contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	var req dto.CreateContactRequest
	switch h.owner {
	case domain.ContactOwnerVendor:
		var body dto.CreateVendorContactRequest
		if !bindJSON(c, &body) {
			return
		}
		req = body.ToContactRequest()
	default:
		var body dto.CreateCustomerContactRequest
		if !bindJSON(c, &body) {
			return
		}
		req = body.ToContactRequest()
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contact, err := h.contactService.CreateContact(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create contact")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContactResponse(h.owner)(contact))
}

// getContact godoc
// @Summary Get a contact by ID
// @Tags contacts
// @Produce  json
// @Param   id path string true "Contact ID"
// @Param   include_deleted query bool false "Return the contact even if soft deleted"
// @Success 200 {object} dto.ContactResponse
// @Security BearerAuth
// @Router /customer-contacts/{id} [get]
func (h *contactHandler) getContact(c *gin.Context) {
	withDeleted, ok := includeDeleted(c)
	if !ok {
		return
	}
	contact, err := h.contactService.GetContactByID(c.Request.Context(), c.Param("id"), withDeleted)
	if err != nil {
		respondError(c, err, "Failed to retrieve contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(h.owner)(contact))
}

// listContacts godoc
// @Summary List contacts
// @Tags contacts
// @Produce  json
// @Param   owner_id query string false "Only contacts of this customer or vendor"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Param   include_deleted query bool false "Include soft deleted contacts"
// @Success 200 {object} dto.ListContactsResponse
// @Security BearerAuth
// @Router /customer-contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	var params dto.ListContactsParams
	if !bindQuery(c, &params) {
		return
	}
	contacts, err := h.contactService.ListContacts(c.Request.Context(), params.OwnerID, params.ToOptions())
	if err != nil {
		respondError(c, err, "Failed to list contacts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListContactResponse(h.owner, contacts))
}

// updateContact godoc
// @Summary Update a contact
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   id path string true "Contact ID"
// @Param   contact body dto.UpdateContactRequest true "Fields to update"
// @Success 200 {object} dto.ContactResponse
// @Security BearerAuth
// @Router /customer-contacts/{id} [put]
func (h *contactHandler) updateContact(c *gin.Context) {
	var req dto.UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contact, err := h.contactService.UpdateContact(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(h.owner)(contact))
}
