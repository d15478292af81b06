package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, name, price, stock, created_at"

// productOrderColumns columnas permitidas en order_by para productos.
var productOrderColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"created_at": "created_at",
}

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, price, stock, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Stock, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil sin error cuando no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanProducts(rows)
}

// Filter lista productos según los criterios conjuntivos y el orden pedido.
func (r *ProductRepo) Filter(ctx context.Context, f repository.ProductFilter, orderBy string) ([]*entity.Product, error) {
	where, args := buildProductWhere(f)
	query := `SELECT ` + productColumns + ` FROM products` + where +
		orderByClause(productOrderColumns, orderBy, "created_at")
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}
	return scanProducts(rows)
}

// ListBelowStock lista los productos con stock estrictamente menor al umbral.
func (r *ProductRepo) ListBelowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock < $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list below stock: %w", err)
	}
	return scanProducts(rows)
}

// UpdateStock fija el stock de un producto.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock = $2 WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// buildProductWhere traduce el filtro a condiciones SQL; campo omitido = sin condición.
func buildProductWhere(f repository.ProductFilter) (string, []any) {
	var b whereBuilder
	if f.Name != "" {
		b.add("name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.PriceGte != nil {
		b.add("price >= $%d", *f.PriceGte)
	}
	if f.PriceLte != nil {
		b.add("price <= $%d", *f.PriceLte)
	}
	if f.StockGte != nil {
		b.add("stock >= $%d", *f.StockGte)
	}
	if f.StockLte != nil {
		b.add("stock <= $%d", *f.StockLte)
	}
	if f.StockBelow != nil {
		b.add("stock < $%d", *f.StockBelow)
	}
	return b.clause(), b.args
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
