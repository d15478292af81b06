// Package testutil provee repositorios en memoria para los tests de casos de
// uso y de handlers HTTP. Implementan los puertos de dominio con la misma
// semántica que la capa Postgres (GetByID devuelve nil en ausencia, filtros
// conjuntivos, stock < umbral estricto) sin tocar una base real.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// CustomerRepo
// ──────────────────────────────────────────────────────────────────────────────

// CustomerRepo repositorio de clientes en memoria.
type CustomerRepo struct {
	mu        sync.Mutex
	Customers []*entity.Customer
	// FailWith fuerza el error en todas las operaciones (simula caída de la DB).
	FailWith error
}

// NewCustomerRepo construye el repositorio vacío.
func NewCustomerRepo() *CustomerRepo { return &CustomerRepo{} }

func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *customer
	r.Customers = append(r.Customers, &c)
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Customers {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) EmailExists(_ context.Context, email string) (bool, error) {
	if r.FailWith != nil {
		return false, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.Customers, limit, offset), nil
}

func (r *CustomerRepo) Filter(_ context.Context, f repository.CustomerFilter, _ string) ([]*entity.Customer, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Customer{}
	for _, c := range r.Customers {
		if f.Name != "" && !containsFold(c.Name, f.Name) {
			continue
		}
		if f.Email != "" && !containsFold(c.Email, f.Email) {
			continue
		}
		if f.PhonePrefix != "" && !strings.HasPrefix(c.Phone, f.PhonePrefix) {
			continue
		}
		if f.CreatedAtGte != nil && c.CreatedAt.Before(*f.CreatedAtGte) {
			continue
		}
		if f.CreatedAtLte != nil && c.CreatedAt.After(*f.CreatedAtLte) {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductRepo
// ──────────────────────────────────────────────────────────────────────────────

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	mu       sync.Mutex
	Products []*entity.Product
	FailWith error
	// LastFilter guarda el último filtro recibido, para asertar el mapeo
	// low_stock → StockBelow desde el caso de uso.
	LastFilter repository.ProductFilter
}

// NewProductRepo construye el repositorio vacío.
func NewProductRepo() *ProductRepo { return &ProductRepo{} }

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *product
	r.Products = append(r.Products, &p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Products {
		if p.ID == id {
			out := *p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.Products, limit, offset), nil
}

func (r *ProductRepo) Filter(_ context.Context, f repository.ProductFilter, _ string) ([]*entity.Product, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LastFilter = f
	out := []*entity.Product{}
	for _, p := range r.Products {
		if f.Name != "" && !containsFold(p.Name, f.Name) {
			continue
		}
		if f.PriceGte != nil && p.Price.LessThan(*f.PriceGte) {
			continue
		}
		if f.PriceLte != nil && p.Price.GreaterThan(*f.PriceLte) {
			continue
		}
		if f.StockGte != nil && p.Stock < *f.StockGte {
			continue
		}
		if f.StockLte != nil && p.Stock > *f.StockLte {
			continue
		}
		if f.StockBelow != nil && p.Stock >= *f.StockBelow {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *ProductRepo) ListBelowStock(_ context.Context, threshold int) ([]*entity.Product, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Product{}
	for _, p := range r.Products {
		if p.Stock < threshold {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Products {
		if p.ID == id {
			p.Stock = stock
			return nil
		}
	}
	return fmt.Errorf("producto %s no existe", id)
}

// ──────────────────────────────────────────────────────────────────────────────
// OrderRepo
// ──────────────────────────────────────────────────────────────────────────────

// OrderRepo repositorio de órdenes en memoria.
type OrderRepo struct {
	mu       sync.Mutex
	Orders   []*entity.Order
	FailWith error
}

// NewOrderRepo construye el repositorio vacío.
func NewOrderRepo() *OrderRepo { return &OrderRepo{} }

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	o := *order
	r.Orders = append(r.Orders, &o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.Orders {
		if o.ID == id {
			out := *o
			return &out, nil
		}
	}
	return nil, nil
}

func (r *OrderRepo) List(_ context.Context, limit, offset int) ([]*entity.Order, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.Orders, limit, offset), nil
}

func (r *OrderRepo) Filter(_ context.Context, f repository.OrderFilter, _ string) ([]*entity.Order, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Order{}
	for _, o := range r.Orders {
		if f.TotalAmountGte != nil && o.TotalAmount.LessThan(*f.TotalAmountGte) {
			continue
		}
		if f.TotalAmountLte != nil && o.TotalAmount.GreaterThan(*f.TotalAmountLte) {
			continue
		}
		if f.OrderDateGte != nil && o.OrderDate.Before(*f.OrderDateGte) {
			continue
		}
		if f.OrderDateLte != nil && o.OrderDate.After(*f.OrderDateLte) {
			continue
		}
		if f.CustomerName != "" && (o.Customer == nil || !containsFold(o.Customer.Name, f.CustomerName)) {
			continue
		}
		if f.ProductName != "" && !anyProduct(o, func(p entity.Product) bool { return containsFold(p.Name, f.ProductName) }) {
			continue
		}
		if f.ProductID != "" && !anyProduct(o, func(p entity.Product) bool { return p.ID == f.ProductID }) {
			continue
		}
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner ejecuta el callback directamente contra los repos en memoria.
// No hay transacción real que simular; Runs cuenta las invocaciones.
type TxRunner struct {
	Products *ProductRepo
	Orders   *OrderRepo
	Runs     int
	FailWith error
}

// NewTxRunner construye el runner sobre los repos dados.
func NewTxRunner(products *ProductRepo, orders *OrderRepo) *TxRunner {
	return &TxRunner{Products: products, Orders: orders}
}

func (t *TxRunner) Run(_ context.Context, fn func(
	products repository.ProductRepository,
	orders repository.OrderRepository,
) error) error {
	t.Runs++
	if t.FailWith != nil {
		return t.FailWith
	}
	return fn(t.Products, t.Orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func page[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return []*T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]*T, 0, end-offset)
	for _, it := range items[offset:end] {
		copied := *it
		out = append(out, &copied)
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyProduct(o *entity.Order, pred func(entity.Product) bool) bool {
	for _, p := range o.Products {
		if pred(p) {
			return true
		}
	}
	return false
}
