package api

import (
	"errors"
	"net/http"
	"strconv"

	"invoice-dashboard/internal/handler/dto/request"
	resdto "invoice-dashboard/internal/handler/dto/response"
	"invoice-dashboard/internal/handler/forms"
	"invoice-dashboard/internal/usecase/commands"
	"invoice-dashboard/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Flat messages for persistence failures. The underlying error is logged
// but never rendered to the caller.
const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	MsgCreateDBError       = "Database Error: Failed to Create Invoice."
	MsgUpdateDBError       = "Database Error: Failed to Update Invoice."
	MsgDeleteDBError       = "Database Error: Failed to Delete Invoice."
)

type InvoiceHandler struct {
	invoiceCommands commands.InvoiceCommands
	invoiceQueries  queries.InvoiceQueries
	customerQueries queries.CustomerQueries
}

func NewInvoiceHandler(invoiceCommands commands.InvoiceCommands, invoiceQueries queries.InvoiceQueries, customerQueries queries.CustomerQueries) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceCommands: invoiceCommands,
		invoiceQueries:  invoiceQueries,
		customerQueries: customerQueries,
	}
}

// @Summary Create invoice
// @Description Validate an invoice form submission and insert a row. Redirects to the listing on success.
// @Tags invoices
// @Accept x-www-form-urlencoded
// @Accept json
// @Security BearerAuth
// @Param customer_id formData string true "Customer ID"
// @Param amount formData string true "Amount in major units"
// @Param status formData string true "pending or paid"
// @Success 303 "Redirect to the invoice listing"
// @Failure 422 {object} forms.State
// @Failure 500 {object} forms.State
// @Router /dashboard/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var form request.InvoiceForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	draft, fieldErrors := form.ToDomain()
	if fieldErrors != nil {
		c.JSON(http.StatusUnprocessableEntity, forms.NewState(MsgCreateMissingFields, fieldErrors))
		return
	}

	outcome, err := h.invoiceCommands.Create(c.Request.Context(), draft)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, forms.NewState(MsgCreateDBError, nil))
		return
	}

	// Control transfer: nothing may run after this on the success path.
	c.Redirect(http.StatusSeeOther, outcome.RedirectTo)
}

// @Summary Update invoice
// @Description Validate an invoice form submission and update the row. Redirects to the listing on success.
// @Tags invoices
// @Accept x-www-form-urlencoded
// @Accept json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 303 "Redirect to the invoice listing"
// @Failure 422 {object} forms.State
// @Failure 500 {object} forms.State
// @Router /dashboard/invoices/{id} [post]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	var form request.InvoiceForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	draft, fieldErrors := form.ToDomain()
	if fieldErrors != nil {
		c.JSON(http.StatusUnprocessableEntity, forms.NewState(MsgUpdateMissingFields, fieldErrors))
		return
	}

	outcome, err := h.invoiceCommands.Update(c.Request.Context(), id, draft)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, forms.NewState(MsgUpdateDBError, nil))
		return
	}

	c.Redirect(http.StatusSeeOther, outcome.RedirectTo)
}

// @Summary Delete invoice
// @Description Delete an invoice row. Invoked in place from the listing; does not redirect.
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 500 {object} forms.State
// @Router /dashboard/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	if err := h.invoiceCommands.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, forms.NewState(MsgDeleteDBError, nil))
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List invoices
// @Description Paginated invoice listing joined with customer data, served from cache when warm.
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param query query string false "Free-text filter"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} resdto.InvoiceListResponse
// @Router /dashboard/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	filter := queries.ListFilter{
		Query: c.Query("query"),
		Page:  page,
	}

	views, err := h.invoiceQueries.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}

	c.JSON(http.StatusOK, resdto.NewInvoiceListResponse(views, page))
}

// @Summary Get invoice
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} resdto.InvoiceResponse
// @Failure 404 {object} map[string]string
// @Router /dashboard/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	view, err := h.invoiceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice"})
		return
	}

	c.JSON(http.StatusOK, resdto.NewInvoiceResponse(*view))
}

// @Summary List customers
// @Description Customer options for the invoice form's select input.
// @Tags customers
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CustomerListResponse
// @Router /dashboard/customers [get]
func (h *InvoiceHandler) ListCustomers(c *gin.Context) {
	views, err := h.customerQueries.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, resdto.NewCustomerListResponse(views))
}
