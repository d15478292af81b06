package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// ProductFilter criterios opcionales de búsqueda de productos (AND entre presentes).
// StockBelow expresa el filtro de bajo stock ya resuelto contra el umbral configurado.
type ProductFilter struct {
	Name       string // substring, case-insensitive
	PriceGte   *decimal.Decimal
	PriceLte   *decimal.Decimal
	StockGte   *int
	StockLte   *int
	StockBelow *int // stock < valor (estricto)
}

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Filter(ctx context.Context, f ProductFilter, orderBy string) ([]*entity.Product, error)
	ListBelowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
	UpdateStock(ctx context.Context, id string, stock int) error
}
