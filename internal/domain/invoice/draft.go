package invoice

import (
	"github.com/google/uuid"
)

// Draft is a validated, coerced invoice submission ready for persistence.
// The row id and date are assigned by the persistence layer, not here.
type Draft struct {
	customerID uuid.UUID
	amount     Amount
	status     Status
}

func NewDraft(customerID uuid.UUID, amount Amount, status Status) (Draft, error) {
	if customerID == uuid.Nil {
		return Draft{}, ErrInvalidCustomerID
	}
	return Draft{
		customerID: customerID,
		amount:     amount,
		status:     status,
	}, nil
}

func (d Draft) CustomerID() uuid.UUID { return d.customerID }
func (d Draft) Amount() Amount        { return d.amount }
func (d Draft) Status() Status        { return d.status }
