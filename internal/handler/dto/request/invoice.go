package request

import (
	"errors"
	"strings"

	"invoice-dashboard/internal/domain/invoice"
	"invoice-dashboard/internal/pkg/money"

	"github.com/google/uuid"
)

// User-facing field messages for the invoice form.
const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountPositive = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
)

// InvoiceForm is the raw submission. Fields stay strings so that coercion
// failures turn into per-field messages instead of a bind error.
type InvoiceForm struct {
	CustomerID string `form:"customer_id" json:"customer_id"`
	Amount     string `form:"amount" json:"amount"`
	Status     string `form:"status" json:"status"`
}

// ToDomain validates and coerces the form into a Draft. On failure the
// returned map carries one or more messages per offending field and the
// Draft is zero. No side effects either way.
func (f InvoiceForm) ToDomain() (invoice.Draft, map[string][]string) {
	fieldErrors := make(map[string][]string)

	customerID, err := uuid.Parse(strings.TrimSpace(f.CustomerID))
	if err != nil || customerID == uuid.Nil {
		fieldErrors["customer_id"] = append(fieldErrors["customer_id"], MsgSelectCustomer)
	}

	amount, err := invoice.NewAmount(strings.TrimSpace(f.Amount))
	if err != nil {
		if errors.Is(err, money.ErrAmountNotPositive) || errors.Is(err, money.ErrInvalidAmount) {
			fieldErrors["amount"] = append(fieldErrors["amount"], MsgAmountPositive)
		}
	}

	status, err := invoice.NewStatus(strings.TrimSpace(f.Status))
	if err != nil {
		fieldErrors["status"] = append(fieldErrors["status"], MsgSelectStatus)
	}

	if len(fieldErrors) > 0 {
		return invoice.Draft{}, fieldErrors
	}

	draft, err := invoice.NewDraft(customerID, amount, status)
	if err != nil {
		fieldErrors["customer_id"] = append(fieldErrors["customer_id"], MsgSelectCustomer)
		return invoice.Draft{}, fieldErrors
	}
	return draft, nil
}
