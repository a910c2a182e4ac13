//go:build unit

package request_test

import (
	"testing"

	"invoice-dashboard/internal/handler/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() request.InvoiceForm {
	return request.InvoiceForm{
		CustomerID: uuid.New().String(),
		Amount:     "19.99",
		Status:     "pending",
	}
}

func TestInvoiceFormToDomain(t *testing.T) {
	t.Run("valid form coerces into a draft", func(t *testing.T) {
		form := validForm()

		draft, fieldErrors := form.ToDomain()
		require.Nil(t, fieldErrors)

		assert.Equal(t, form.CustomerID, draft.CustomerID().String())
		assert.Equal(t, int64(1999), draft.Amount().Cents())
		assert.Equal(t, "pending", draft.Status().String())
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		form := validForm()
		form.Amount = " 19.99 "
		form.Status = " paid "

		draft, fieldErrors := form.ToDomain()
		require.Nil(t, fieldErrors)
		assert.Equal(t, "paid", draft.Status().String())
	})

	t.Run("each bad field gets its own message", func(t *testing.T) {
		cases := []struct {
			name     string
			mutate   func(*request.InvoiceForm)
			field    string
			expected string
		}{
			{
				name:     "missing customer",
				mutate:   func(f *request.InvoiceForm) { f.CustomerID = "" },
				field:    "customer_id",
				expected: request.MsgSelectCustomer,
			},
			{
				name:     "malformed customer id",
				mutate:   func(f *request.InvoiceForm) { f.CustomerID = "not-a-uuid" },
				field:    "customer_id",
				expected: request.MsgSelectCustomer,
			},
			{
				name:     "nil customer id",
				mutate:   func(f *request.InvoiceForm) { f.CustomerID = uuid.Nil.String() },
				field:    "customer_id",
				expected: request.MsgSelectCustomer,
			},
			{
				name:     "missing amount",
				mutate:   func(f *request.InvoiceForm) { f.Amount = "" },
				field:    "amount",
				expected: request.MsgAmountPositive,
			},
			{
				name:     "zero amount",
				mutate:   func(f *request.InvoiceForm) { f.Amount = "0" },
				field:    "amount",
				expected: request.MsgAmountPositive,
			},
			{
				name:     "negative amount",
				mutate:   func(f *request.InvoiceForm) { f.Amount = "-3.50" },
				field:    "amount",
				expected: request.MsgAmountPositive,
			},
			{
				name:     "non-numeric amount",
				mutate:   func(f *request.InvoiceForm) { f.Amount = "ten" },
				field:    "amount",
				expected: request.MsgAmountPositive,
			},
			{
				name:     "missing status",
				mutate:   func(f *request.InvoiceForm) { f.Status = "" },
				field:    "status",
				expected: request.MsgSelectStatus,
			},
			{
				name:     "unknown status",
				mutate:   func(f *request.InvoiceForm) { f.Status = "overdue" },
				field:    "status",
				expected: request.MsgSelectStatus,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				form := validForm()
				tc.mutate(&form)

				_, fieldErrors := form.ToDomain()
				require.NotNil(t, fieldErrors)
				require.Contains(t, fieldErrors, tc.field)
				assert.Contains(t, fieldErrors[tc.field], tc.expected)
				assert.Len(t, fieldErrors, 1)
			})
		}
	})

	t.Run("all fields empty collects every message", func(t *testing.T) {
		form := request.InvoiceForm{}

		_, fieldErrors := form.ToDomain()
		require.NotNil(t, fieldErrors)
		assert.Contains(t, fieldErrors["customer_id"], request.MsgSelectCustomer)
		assert.Contains(t, fieldErrors["amount"], request.MsgAmountPositive)
		assert.Contains(t, fieldErrors["status"], request.MsgSelectStatus)
	})
}
