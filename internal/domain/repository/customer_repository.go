package repository

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// CustomerFilter criterios opcionales de búsqueda; los campos nil/vacíos no filtran
// y los presentes se combinan con AND.
type CustomerFilter struct {
	Name         string     // substring, case-insensitive
	Email        string     // substring, case-insensitive
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	PhonePrefix  string // el teléfono comienza con este patrón
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	Filter(ctx context.Context, f CustomerFilter, orderBy string) ([]*entity.Customer, error)
}
