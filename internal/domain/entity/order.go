package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa una orden de compra: un cliente y uno o más productos.
// TotalAmount es un valor derivado (suma de precios de los productos al momento
// de crear la orden); se recalcula junto con el set de productos, nunca se edita suelto.
type Order struct {
	ID          string
	CustomerID  string
	Customer    *Customer // cargado en las lecturas, nil en escrituras
	Products    []Product
	TotalAmount decimal.Decimal
	OrderDate   time.Time
}
