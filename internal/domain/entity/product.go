package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Price es decimal exacto (NUMERIC en DB); nunca float, los totales de orden
// se calculan sumando estos valores.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal // siempre > 0
	Stock     int             // siempre >= 0
	CreatedAt time.Time
}
