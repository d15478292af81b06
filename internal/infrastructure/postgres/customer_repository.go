package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = "id, name, email, phone, created_at"

// customerOrderColumns columnas permitidas en order_by para clientes.
var customerOrderColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID; nil sin error cuando no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// EmailExists verifica si ya hay un cliente con ese email.
func (r *CustomerRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

// List lista clientes con paginación.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return scanCustomers(rows)
}

// Filter lista clientes según los criterios conjuntivos y el orden pedido.
func (r *CustomerRepo) Filter(ctx context.Context, f repository.CustomerFilter, orderBy string) ([]*entity.Customer, error) {
	where, args := buildCustomerWhere(f)
	query := `SELECT ` + customerColumns + ` FROM customers` + where +
		orderByClause(customerOrderColumns, orderBy, "created_at")
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter customers: %w", err)
	}
	return scanCustomers(rows)
}

// buildCustomerWhere traduce el filtro a condiciones SQL; campo omitido = sin condición.
func buildCustomerWhere(f repository.CustomerFilter) (string, []any) {
	var b whereBuilder
	if f.Name != "" {
		b.add("name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.Email != "" {
		b.add("email ILIKE $%d", "%"+f.Email+"%")
	}
	if f.CreatedAtGte != nil {
		b.add("created_at >= $%d", *f.CreatedAtGte)
	}
	if f.CreatedAtLte != nil {
		b.add("created_at <= $%d", *f.CreatedAtLte)
	}
	if f.PhonePrefix != "" {
		b.add("phone LIKE $%d", f.PhonePrefix+"%")
	}
	return b.clause(), b.args
}

func scanCustomers(rows pgx.Rows) ([]*entity.Customer, error) {
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
