package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada de createOrder. OrderDate ausente toma el momento
// de creación.
type CreateOrderRequest struct {
	CustomerID string     `json:"customer_id"`
	ProductIDs []string   `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date"`
}

// OrderResponse representación de salida de una orden con su cliente y productos.
type OrderResponse struct {
	ID          string            `json:"id"`
	Customer    *CustomerResponse `json:"customer,omitempty"`
	Products    []ProductResponse `json:"products"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	OrderDate   time.Time         `json:"order_date"`
}

// OrderMutationResult par (orden-o-ausente, mensaje).
type OrderMutationResult struct {
	Order     *OrderResponse `json:"order,omitempty"`
	Message   string         `json:"message"`
	ErrorKind string         `json:"error_kind,omitempty"`
}

// Ok indica si la mutación creó la entidad.
func (r OrderMutationResult) Ok() bool { return r.Order != nil }

// OrderFilterRequest filtros de ordersFiltered (query params).
type OrderFilterRequest struct {
	TotalAmountGte string `query:"total_amount_gte"`
	TotalAmountLte string `query:"total_amount_lte"`
	OrderDateGte   string `query:"order_date_gte"`
	OrderDateLte   string `query:"order_date_lte"`
	CustomerName   string `query:"customer_name"`
	ProductName    string `query:"product_name"`
	ProductID      string `query:"product_id"`
	OrderBy        string `query:"order_by"`
}
