package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/validation"
	"github.com/jhoicas/crm-api/internal/testutil"
)

const (
	testLowStockThreshold = 10
	testRestockAmount     = 10
)

func newProductUC(repo *testutil.ProductRepo) *usecase.ProductUseCase {
	tx := testutil.NewTxRunner(repo, testutil.NewOrderRepo())
	return usecase.NewProductUseCase(repo, tx, testLowStockThreshold, testRestockAmount)
}

// ──────────────────────────────────────────────────────────────────────────────
// createProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_Exitoso(t *testing.T) {
	repo := testutil.NewProductRepo()
	uc := newProductUC(repo)

	stock := 15
	res := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "MacBook Pro",
		Price: "1299.99",
		Stock: &stock,
	})

	require.True(t, res.Ok(), "la mutación debe crear el producto: %s", res.Message)
	assert.Equal(t, "Product created successfully", res.Message)
	assert.True(t, res.Product.Price.Equal(decimal.RequireFromString("1299.99")),
		"el precio debe conservarse como decimal exacto")
	assert.Equal(t, 15, res.Product.Stock)
}

func TestProductCreate_PrecioNoPositivo(t *testing.T) {
	uc := newProductUC(testutil.NewProductRepo())

	res := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Gratis", Price: "0"})
	assert.False(t, res.Ok())
	assert.Equal(t, string(validation.KindNonPositivePrice), res.ErrorKind)
	assert.Equal(t, "Price must be positive", res.Message)
}

func TestProductCreate_StockNegativo(t *testing.T) {
	uc := newProductUC(testutil.NewProductRepo())

	stock := -5
	res := uc.Create(context.Background(), dto.CreateProductRequest{Name: "iPhone 14", Price: "899.99", Stock: &stock})
	assert.False(t, res.Ok())
	assert.Equal(t, string(validation.KindNegativeStock), res.ErrorKind)
	assert.Equal(t, "Stock cannot be negative", res.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// productsFiltered
// ──────────────────────────────────────────────────────────────────────────────

// low_stock=true se traduce a StockBelow = umbral configurado (stock < 10, estricto).
func TestProductFiltered_LowStockMapeaAlUmbral(t *testing.T) {
	repo := testutil.NewProductRepo()
	seedProducts(t, repo)
	uc := newProductUC(repo)

	list, err := uc.Filtered(context.Background(), dto.ProductFilterRequest{LowStock: true})
	require.NoError(t, err)

	require.NotNil(t, repo.LastFilter.StockBelow, "low_stock debe resolverse al umbral")
	assert.Equal(t, testLowStockThreshold, *repo.LastFilter.StockBelow)

	// stock 5 y 9 quedan; stock 10 NO (el umbral es estricto).
	require.Len(t, list, 2)
	for _, p := range list {
		assert.Less(t, p.Stock, testLowStockThreshold)
	}
}

func TestProductFiltered_PrecioInvalido(t *testing.T) {
	uc := newProductUC(testutil.NewProductRepo())

	_, err := uc.Filtered(context.Background(), dto.ProductFilterRequest{PriceGte: "mucho"})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// updateLowStockProducts
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateLowStock_ReponeSoloBajoUmbral(t *testing.T) {
	repo := testutil.NewProductRepo()
	seedProducts(t, repo)
	uc := newProductUC(repo)

	res := uc.UpdateLowStock(context.Background())

	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Successfully restocked 2 products", res.Message)
	require.Len(t, res.UpdatedProducts, 2)
	// 5 → 15 y 9 → 19; el de stock 10 no se toca.
	stocks := map[string]int{}
	for _, p := range res.UpdatedProducts {
		stocks[p.Name] = p.Stock
	}
	assert.Equal(t, 15, stocks["AirPods Pro"])
	assert.Equal(t, 19, stocks["iPad Air"])

	untouched, err := repo.GetByID(context.Background(), "p-limite")
	require.NoError(t, err)
	assert.Equal(t, 10, untouched.Stock, "stock == umbral no califica como low stock")
}

// Segunda corrida inmediata: la primera deja todo sobre el umbral, la segunda
// no escribe y lo reporta explícito.
func TestUpdateLowStock_SinCandidatos(t *testing.T) {
	repo := testutil.NewProductRepo()
	seedProducts(t, repo)
	uc := newProductUC(repo)

	first := uc.UpdateLowStock(context.Background())
	require.True(t, first.Success)

	second := uc.UpdateLowStock(context.Background())
	assert.True(t, second.Success)
	assert.Equal(t, "No products needed restocking", second.Message)
	assert.NotNil(t, second.UpdatedProducts)
	assert.Empty(t, second.UpdatedProducts)
}

func TestUpdateLowStock_ErrorDeTransaccion(t *testing.T) {
	repo := testutil.NewProductRepo()
	tx := testutil.NewTxRunner(repo, testutil.NewOrderRepo())
	tx.FailWith = errors.New("deadlock detected")
	uc := usecase.NewProductUseCase(repo, tx, testLowStockThreshold, testRestockAmount)

	res := uc.UpdateLowStock(context.Background())
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "deadlock detected")
	assert.Empty(t, res.UpdatedProducts)
}

func seedProducts(t *testing.T, repo *testutil.ProductRepo) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []*entity.Product{
		{ID: "p-macbook", Name: "MacBook Pro", Price: decimal.RequireFromString("1299.99"), Stock: 15, CreatedAt: time.Now()},
		{ID: "p-airpods", Name: "AirPods Pro", Price: decimal.RequireFromString("249.99"), Stock: 5, CreatedAt: time.Now()},
		{ID: "p-ipad", Name: "iPad Air", Price: decimal.RequireFromString("599.99"), Stock: 9, CreatedAt: time.Now()},
		{ID: "p-limite", Name: "iPhone 14", Price: decimal.RequireFromString("899.99"), Stock: 10, CreatedAt: time.Now()},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}
}
