package response

import (
	"invoice-dashboard/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type CustomerListResponse struct {
	Customers []queries.CustomerView `json:"customers"`
}

func NewCustomerListResponse(views []queries.CustomerView) CustomerListResponse {
	customers := make([]queries.CustomerView, 0, len(views))
	_ = copier.Copy(&customers, &views)
	return CustomerListResponse{Customers: customers}
}
