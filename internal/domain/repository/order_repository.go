package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// OrderFilter criterios opcionales de búsqueda de órdenes (AND entre presentes).
type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerName   string // substring, case-insensitive, sobre el cliente dueño
	ProductName    string // substring, case-insensitive, sobre productos asociados
	ProductID      string // la orden contiene exactamente este producto
}

// OrderRepository define el puerto de persistencia para Order.
// Create inserta la orden y sus asociaciones con el mismo Querier: atado a una
// transacción (vía TxRunner) la escritura es atómica.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	Filter(ctx context.Context, f OrderFilter, orderBy string) ([]*entity.Order, error)
}
