//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"invoice-dashboard/internal/handler/api"
	reqdto "invoice-dashboard/internal/handler/dto/request"
	resdto "invoice-dashboard/internal/handler/dto/response"
	"invoice-dashboard/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type InvoiceE2ETestSuite struct {
	suite.Suite
	env        *testEnv
	token      string
	customerID uuid.UUID
}

func (s *InvoiceE2ETestSuite) SetupTest() {
	s.env = setupE2EEnvironment(s.T())

	createTestUser(s.T(), s.env.pool, "editor@nextmail.com", "editor")
	s.token = s.login("editor@nextmail.com")
	s.customerID = createTestCustomer(s.T(), s.env.pool, "Amy Burns", "amy@burns.com")
}

func TestInvoiceE2ESuite(t *testing.T) {
	suite.Run(t, new(InvoiceE2ETestSuite))
}

func (s *InvoiceE2ETestSuite) login(email string) string {
	rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodPost, "/api/auth/login",
		map[string]any{"email": email, "password": testPassword}, "")

	var response resdto.LoginResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Require().NotEmpty(response.AccessToken)
	return response.AccessToken
}

func (s *InvoiceE2ETestSuite) invoiceForm(amount, status string) url.Values {
	form := url.Values{}
	form.Set("customer_id", s.customerID.String())
	form.Set("amount", amount)
	form.Set("status", status)
	return form
}

func (s *InvoiceE2ETestSuite) countInvoices() int {
	var count int
	err := s.env.pool.QueryRow(context.Background(), "SELECT count(*) FROM invoices").Scan(&count)
	s.Require().NoError(err)
	return count
}

func (s *InvoiceE2ETestSuite) TestCreateInvoice() {
	s.Run("valid form inserts a row and redirects to the listing", func() {
		rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
			"/dashboard/invoices", s.invoiceForm("19.99", "pending"), s.token)
		httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, "/dashboard/invoices")

		var amount int64
		var status string
		err := s.env.pool.QueryRow(context.Background(),
			"SELECT amount, status FROM invoices WHERE customer_id = $1", s.customerID).
			Scan(&amount, &status)
		s.Require().NoError(err)
		s.Equal(int64(1999), amount)
		s.Equal("pending", status)
	})

	s.Run("invalid form is rejected with field messages and no row", func() {
		before := s.countInvoices()
		form := url.Values{}
		form.Set("customer_id", "")
		form.Set("amount", "0")
		form.Set("status", "overdue")

		rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
			"/dashboard/invoices", form, s.token)
		state := httptest.AssertFormState(s.T(), rec, http.StatusUnprocessableEntity, api.MsgCreateMissingFields)
		s.Contains(state.Errors["customer_id"], reqdto.MsgSelectCustomer)
		s.Contains(state.Errors["amount"], reqdto.MsgAmountPositive)
		s.Contains(state.Errors["status"], reqdto.MsgSelectStatus)
		s.Equal(before, s.countInvoices())
	})

	s.Run("unknown customer trips the foreign key and reports a database error", func() {
		form := s.invoiceForm("19.99", "pending")
		form.Set("customer_id", uuid.New().String())

		rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
			"/dashboard/invoices", form, s.token)
		httptest.AssertFormState(s.T(), rec, http.StatusInternalServerError, api.MsgCreateDBError)
	})

	s.Run("unauthenticated requests never reach the handler", func() {
		rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
			"/dashboard/invoices", s.invoiceForm("19.99", "pending"), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *InvoiceE2ETestSuite) TestListingCacheInvalidation() {
	listInvoices := func() resdto.InvoiceListResponse {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodGet,
			"/dashboard/invoices", nil, s.token)
		var response resdto.InvoiceListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		return response
	}

	s.Empty(listInvoices().Invoices)

	// The empty listing is now cached; a mutation must sweep it.
	rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
		"/dashboard/invoices", s.invoiceForm("250.00", "paid"), s.token)
	httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, "/dashboard/invoices")

	listing := listInvoices()
	s.Require().Len(listing.Invoices, 1)
	s.Equal("250.00", listing.Invoices[0].Amount)
	s.Equal("paid", listing.Invoices[0].Status)
	s.Equal("Amy Burns", listing.Invoices[0].CustomerName)
}

func (s *InvoiceE2ETestSuite) TestSearchListing() {
	other := createTestCustomer(s.T(), s.env.pool, "Lee Robinson", "lee@robinson.com")

	create := func(customerID uuid.UUID, amount string) {
		form := url.Values{}
		form.Set("customer_id", customerID.String())
		form.Set("amount", amount)
		form.Set("status", "pending")
		rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
			"/dashboard/invoices", form, s.token)
		httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, "/dashboard/invoices")
	}
	create(s.customerID, "10.00")
	create(other, "20.00")

	rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodGet,
		"/dashboard/invoices?query=lee", nil, s.token)
	var response resdto.InvoiceListResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Require().Len(response.Invoices, 1)
	s.Equal("Lee Robinson", response.Invoices[0].CustomerName)
}

func (s *InvoiceE2ETestSuite) TestUpdateInvoice() {
	rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
		"/dashboard/invoices", s.invoiceForm("19.99", "pending"), s.token)
	httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, "/dashboard/invoices")

	var id uuid.UUID
	err := s.env.pool.QueryRow(context.Background(),
		"SELECT id FROM invoices WHERE customer_id = $1", s.customerID).Scan(&id)
	s.Require().NoError(err)

	s.Run("valid form updates the row and redirects", func() {
		rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
			"/dashboard/invoices/"+id.String(), s.invoiceForm("20.50", "paid"), s.token)
		httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, "/dashboard/invoices")

		var amount int64
		var status string
		err := s.env.pool.QueryRow(context.Background(),
			"SELECT amount, status FROM invoices WHERE id = $1", id).Scan(&amount, &status)
		s.Require().NoError(err)
		s.Equal(int64(2050), amount)
		s.Equal("paid", status)
	})

	s.Run("updating a vanished row still redirects", func() {
		rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
			"/dashboard/invoices/"+uuid.New().String(), s.invoiceForm("5.00", "pending"), s.token)
		httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, "/dashboard/invoices")
	})
}

func (s *InvoiceE2ETestSuite) TestDeleteInvoice() {
	rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
		"/dashboard/invoices", s.invoiceForm("19.99", "pending"), s.token)
	httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, "/dashboard/invoices")

	var id uuid.UUID
	err := s.env.pool.QueryRow(context.Background(),
		"SELECT id FROM invoices WHERE customer_id = $1", s.customerID).Scan(&id)
	s.Require().NoError(err)

	s.Run("delete removes the row without navigating", func() {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodDelete,
			"/dashboard/invoices/"+id.String(), nil, s.token)
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Header().Get("Location"))
		s.Equal(0, s.countInvoices())
	})

	s.Run("deleting again is idempotent", func() {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodDelete,
			"/dashboard/invoices/"+id.String(), nil, s.token)
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *InvoiceE2ETestSuite) TestGetInvoiceAndCustomers() {
	rec := httptest.PerformFormRequest(s.T(), s.env.router, http.MethodPost,
		"/dashboard/invoices", s.invoiceForm("19.99", "pending"), s.token)
	httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, "/dashboard/invoices")

	var id uuid.UUID
	err := s.env.pool.QueryRow(context.Background(),
		"SELECT id FROM invoices WHERE customer_id = $1", s.customerID).Scan(&id)
	s.Require().NoError(err)

	s.Run("fetches a single invoice with customer data", func() {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodGet,
			"/dashboard/invoices/"+id.String(), nil, s.token)

		var response resdto.InvoiceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(id, response.ID)
		s.Equal("19.99", response.Amount)
		s.Equal("amy@burns.com", response.CustomerEmail)
	})

	s.Run("missing invoice is a 404", func() {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodGet,
			"/dashboard/invoices/"+uuid.New().String(), nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Invoice not found")
	})

	s.Run("customers are listed for the form select", func() {
		rec := httptest.PerformRequest(s.T(), s.env.router, http.MethodGet,
			"/dashboard/customers", nil, s.token)

		var response resdto.CustomerListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Customers, 1)
		s.Equal("Amy Burns", response.Customers[0].Name)
	})
}
