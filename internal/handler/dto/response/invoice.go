package response

import (
	"time"

	"invoice-dashboard/internal/pkg/money"
	"invoice-dashboard/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type InvoiceResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	AmountCents   int64     `json:"amount_cents"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	Date          string    `json:"date"`
}

type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Page     int               `json:"page"`
}

func NewInvoiceResponse(view queries.InvoiceView) InvoiceResponse {
	var resp InvoiceResponse
	_ = copier.Copy(&resp, &view)
	resp.Amount = money.CentsString(view.AmountCents)
	resp.Date = view.Date.Format(time.DateOnly)
	return resp
}

func NewInvoiceListResponse(views []queries.InvoiceView, page int) InvoiceListResponse {
	invoices := make([]InvoiceResponse, 0, len(views))
	for _, v := range views {
		invoices = append(invoices, NewInvoiceResponse(v))
	}
	return InvoiceListResponse{Invoices: invoices, Page: page}
}
