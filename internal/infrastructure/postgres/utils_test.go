package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// whereBuilder / orderByClause
// ──────────────────────────────────────────────────────────────────────────────

func TestWhereBuilder_SinCondiciones(t *testing.T) {
	var b whereBuilder
	assert.Empty(t, b.clause())
	assert.Empty(t, b.args)
}

func TestWhereBuilder_NumeraPlaceholdersEnOrden(t *testing.T) {
	var b whereBuilder
	b.add("name ILIKE $%d", "%mac%")
	b.add("stock >= $%d", 5)

	assert.Equal(t, " WHERE name ILIKE $1 AND stock >= $2", b.clause())
	assert.Equal(t, []any{"%mac%", 5}, b.args)
}

func TestOrderByClause_WhitelistYDireccion(t *testing.T) {
	allowed := map[string]string{"name": "name", "order_date": "o.order_date"}

	assert.Equal(t, " ORDER BY name ASC", orderByClause(allowed, "name", "name"))
	assert.Equal(t, " ORDER BY name DESC", orderByClause(allowed, "-name", "name"))
	// Columna con alias de tabla
	assert.Equal(t, " ORDER BY o.order_date DESC", orderByClause(allowed, "-order_date", "name"))
	// Fuera de la whitelist → fallback, sin interpolar la entrada
	assert.Equal(t, " ORDER BY name", orderByClause(allowed, "id; DROP TABLE orders", "name"))
	assert.Equal(t, " ORDER BY name", orderByClause(allowed, "", "name"))
}

// ──────────────────────────────────────────────────────────────────────────────
// buildCustomerWhere
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildCustomerWhere_FiltroVacio(t *testing.T) {
	where, args := buildCustomerWhere(repository.CustomerFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildCustomerWhere_TodosLosCampos(t *testing.T) {
	gte := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lte := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	where, args := buildCustomerWhere(repository.CustomerFilter{
		Name:         "doe",
		Email:        "example.com",
		CreatedAtGte: &gte,
		CreatedAtLte: &lte,
		PhonePrefix:  "+1",
	})

	assert.Equal(t,
		" WHERE name ILIKE $1 AND email ILIKE $2 AND created_at >= $3 AND created_at <= $4 AND phone LIKE $5",
		where)
	require.Len(t, args, 5)
	assert.Equal(t, "%doe%", args[0])
	assert.Equal(t, "%example.com%", args[1])
	// El prefijo de teléfono ancla al inicio, sin comodín adelante.
	assert.Equal(t, "+1%", args[4])
}

// ──────────────────────────────────────────────────────────────────────────────
// buildProductWhere
// ──────────────────────────────────────────────────────────────────────────────

// El filtro de bajo stock es estricto: stock < umbral, no <=.
func TestBuildProductWhere_StockBelowEstricto(t *testing.T) {
	threshold := 10
	where, args := buildProductWhere(repository.ProductFilter{StockBelow: &threshold})

	assert.Equal(t, " WHERE stock < $1", where)
	assert.Equal(t, []any{10}, args)
}

func TestBuildProductWhere_RangoDePrecio(t *testing.T) {
	gte := decimal.RequireFromString("100")
	lte := decimal.RequireFromString("999.99")
	where, args := buildProductWhere(repository.ProductFilter{PriceGte: &gte, PriceLte: &lte})

	assert.Equal(t, " WHERE price >= $1 AND price <= $2", where)
	require.Len(t, args, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// buildOrderWhere
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildOrderWhere_ProductoPorExists(t *testing.T) {
	where, args := buildOrderWhere(repository.OrderFilter{ProductID: "p-1"})

	assert.Contains(t, where, "EXISTS")
	assert.Contains(t, where, "op.product_id = $1")
	assert.Equal(t, []any{"p-1"}, args)
}

func TestBuildOrderWhere_CombinadoNumeraSeguido(t *testing.T) {
	gte := decimal.RequireFromString("500")
	where, args := buildOrderWhere(repository.OrderFilter{
		TotalAmountGte: &gte,
		CustomerName:   "john",
		ProductName:    "mac",
	})

	assert.Contains(t, where, "o.total_amount >= $1")
	assert.Contains(t, where, "c.name ILIKE $2")
	assert.Contains(t, where, "p.name ILIKE $3")
	require.Len(t, args, 3)
	assert.Equal(t, "%john%", args[1])
	assert.Equal(t, "%mac%", args[2])
}
