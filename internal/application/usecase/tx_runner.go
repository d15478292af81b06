package usecase

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repositorios atados a una misma transacción.
// Lo usan createOrder (orden + asociaciones en una escritura atómica) y
// updateLowStockProducts (scan y actualización de stock consistentes).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		orders repository.OrderRepository,
	) error) error
}
