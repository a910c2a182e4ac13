//go:build unit || e2e

package builder

import (
	"net/url"
	"time"

	dominvoice "invoice-dashboard/internal/domain/invoice"
	reqdto "invoice-dashboard/internal/handler/dto/request"
	"invoice-dashboard/internal/usecase/queries"

	"github.com/google/uuid"
)

type InvoiceBuilder struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	CustomerName  string
	CustomerEmail string
	Amount        string
	AmountCents   int64
	Status        string
	Date          time.Time
}

func NewInvoiceBuilder() *InvoiceBuilder {
	return &InvoiceBuilder{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		CustomerName:  "Amy Burns",
		CustomerEmail: "amy@burns.com",
		Amount:        "250.00",
		AmountCents:   25000,
		Status:        "pending",
		Date:          time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
	}
}

func (b *InvoiceBuilder) With(mutate func(*InvoiceBuilder)) *InvoiceBuilder {
	mutate(b)
	return b
}

func (b *InvoiceBuilder) BuildForm() reqdto.InvoiceForm {
	return reqdto.InvoiceForm{
		CustomerID: b.CustomerID.String(),
		Amount:     b.Amount,
		Status:     b.Status,
	}
}

func (b *InvoiceBuilder) BuildFormValues() url.Values {
	form := url.Values{}
	form.Set("customer_id", b.CustomerID.String())
	form.Set("amount", b.Amount)
	form.Set("status", b.Status)
	return form
}

func (b *InvoiceBuilder) BuildDraft() (dominvoice.Draft, error) {
	amount, err := dominvoice.NewAmount(b.Amount)
	if err != nil {
		return dominvoice.Draft{}, err
	}
	status, err := dominvoice.NewStatus(b.Status)
	if err != nil {
		return dominvoice.Draft{}, err
	}
	return dominvoice.NewDraft(b.CustomerID, amount, status)
}

func (b *InvoiceBuilder) BuildView() queries.InvoiceView {
	return queries.InvoiceView{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		AmountCents:   b.AmountCents,
		Status:        b.Status,
		Date:          b.Date,
	}
}
