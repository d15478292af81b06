package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// orderOrderColumns columnas permitidas en order_by para órdenes.
var orderOrderColumns = map[string]string{
	"total_amount": "o.total_amount",
	"order_date":   "o.order_date",
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.total_amount, o.order_date,
	       c.id, c.name, c.email, c.phone, c.created_at
	FROM orders o
	JOIN customers c ON c.id = o.customer_id`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la orden y sus asociaciones orden-producto con el mismo
// Querier; dentro de una transacción la escritura completa es atómica.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, total_amount, order_date)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, order.ID, order.CustomerID, order.TotalAmount, order.OrderDate)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, p := range order.Products {
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)`,
			order.ID, p.ID,
		)
		if err != nil {
			return fmt.Errorf("insert order product: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con su cliente y productos; nil sin error cuando no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	row := r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.attachProducts(ctx, []*entity.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// List lista órdenes con paginación, cliente y productos incluidos.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	query := orderSelect + ` ORDER BY o.order_date LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachProducts(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Filter lista órdenes según los criterios conjuntivos y el orden pedido.
func (r *OrderRepo) Filter(ctx context.Context, f repository.OrderFilter, orderBy string) ([]*entity.Order, error) {
	where, args := buildOrderWhere(f)
	query := orderSelect + where + orderByClause(orderOrderColumns, orderBy, "o.order_date")
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter orders: %w", err)
	}
	list, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachProducts(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// buildOrderWhere traduce el filtro a condiciones SQL. La pertenencia de
// producto (nombre o id exacto) se resuelve con EXISTS sobre la tabla puente,
// así una orden con varios productos coincidentes sale una sola vez.
func buildOrderWhere(f repository.OrderFilter) (string, []any) {
	var b whereBuilder
	if f.TotalAmountGte != nil {
		b.add("o.total_amount >= $%d", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		b.add("o.total_amount <= $%d", *f.TotalAmountLte)
	}
	if f.OrderDateGte != nil {
		b.add("o.order_date >= $%d", *f.OrderDateGte)
	}
	if f.OrderDateLte != nil {
		b.add("o.order_date <= $%d", *f.OrderDateLte)
	}
	if f.CustomerName != "" {
		b.add("c.name ILIKE $%d", "%"+f.CustomerName+"%")
	}
	if f.ProductName != "" {
		b.add(`EXISTS (
			SELECT 1 FROM order_products op
			JOIN products p ON p.id = op.product_id
			WHERE op.order_id = o.id AND p.name ILIKE $%d)`, "%"+f.ProductName+"%")
	}
	if f.ProductID != "" {
		b.add(`EXISTS (
			SELECT 1 FROM order_products op
			WHERE op.order_id = o.id AND op.product_id = $%d)`, f.ProductID)
	}
	return b.clause(), b.args
}

// attachProducts carga los productos de cada orden en una sola consulta.
func (r *OrderRepo) attachProducts(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}
	query := `
		SELECT op.order_id, p.id, p.name, p.price, p.stock, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load order products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID string
		var p entity.Product
		if err := rows.Scan(&orderID, &p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return fmt.Errorf("scan order product: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Products = append(o.Products, p)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var c entity.Customer
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.TotalAmount, &o.OrderDate,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Customer = &c
	return &o, nil
}

func scanOrders(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
