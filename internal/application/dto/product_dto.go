package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada de createProduct. El precio llega como texto
// para parsearlo a decimal exacto; stock ausente vale 0.
type CreateProductRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock *int   `json:"stock"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductMutationResult par (producto-o-ausente, mensaje).
type ProductMutationResult struct {
	Product   *ProductResponse `json:"product,omitempty"`
	Message   string           `json:"message"`
	ErrorKind string           `json:"error_kind,omitempty"`
}

// Ok indica si la mutación creó la entidad.
func (r ProductMutationResult) Ok() bool { return r.Product != nil }

// ProductFilterRequest filtros de productsFiltered (query params).
// Precios como texto decimal; low_stock=true equivale a stock < umbral configurado.
type ProductFilterRequest struct {
	Name     string `query:"name"`
	PriceGte string `query:"price_gte"`
	PriceLte string `query:"price_lte"`
	StockGte *int   `query:"stock_gte"`
	StockLte *int   `query:"stock_lte"`
	LowStock bool   `query:"low_stock"`
	OrderBy  string `query:"order_by"`
}

// UpdateLowStockResult salida de updateLowStockProducts.
type UpdateLowStockResult struct {
	Success         bool              `json:"success"`
	Message         string            `json:"message"`
	UpdatedProducts []ProductResponse `json:"updated_products"`
}
