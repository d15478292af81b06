package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/domain/validation"
)

// CustomerUseCase casos de uso de clientes: createCustomer, bulkCreateCustomers
// y las lecturas (lookup, listado, listado filtrado).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create valida y persiste un cliente. Nunca propaga el fallo: todo rechazo de
// validación o de persistencia vuelve como (nil, mensaje) en el resultado.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) dto.CustomerMutationResult {
	if verr := validation.Customer(in.Name, in.Email, in.Phone); verr != nil {
		return rejectedCustomer(verr)
	}
	exists, err := uc.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return dto.CustomerMutationResult{Message: fmt.Sprintf("Error: %v", err)}
	}
	if exists {
		return rejectedCustomer(validation.DuplicateEmail(in.Email))
	}
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return dto.CustomerMutationResult{Message: fmt.Sprintf("Error: %v", err)}
	}
	resp := customerResponse(customer)
	return dto.CustomerMutationResult{Customer: &resp, Message: "Customer created successfully"}
}

// BulkCreate procesa las entradas en orden, cada una de forma independiente:
// el fallo de una entrada se registra contra su posición 1-based y no aborta
// las siguientes. No es transaccional como lote.
func (uc *CustomerUseCase) BulkCreate(ctx context.Context, in dto.BulkCreateCustomersRequest) dto.BulkCreateCustomersResult {
	result := dto.BulkCreateCustomersResult{
		Customers: []dto.CustomerResponse{},
		Errors:    []string{},
	}
	for i, entry := range in.Customers {
		res := uc.Create(ctx, entry)
		if !res.Ok() {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer %d: %s", i+1, res.Message))
			continue
		}
		result.Customers = append(result.Customers, *res.Customer)
	}
	return result
}

// Get devuelve el cliente o nil si no existe (nunca error por ausencia).
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	resp := customerResponse(customer)
	return &resp, nil
}

// List devuelve todos los clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return customerResponses(list), nil
}

// Filtered aplica los filtros conjuntivos y el orden opcional.
func (uc *CustomerUseCase) Filtered(ctx context.Context, in dto.CustomerFilterRequest) ([]dto.CustomerResponse, error) {
	f := repository.CustomerFilter{
		Name:        in.Name,
		Email:       in.Email,
		PhonePrefix: in.PhonePattern,
	}
	var err error
	if f.CreatedAtGte, err = parseTimeFilter(in.CreatedAtGte); err != nil {
		return nil, err
	}
	if f.CreatedAtLte, err = parseTimeFilter(in.CreatedAtLte); err != nil {
		return nil, err
	}
	list, err := uc.repo.Filter(ctx, f, in.OrderBy)
	if err != nil {
		return nil, err
	}
	return customerResponses(list), nil
}

func rejectedCustomer(verr *validation.Error) dto.CustomerMutationResult {
	return dto.CustomerMutationResult{Message: verr.Message, ErrorKind: string(verr.Kind)}
}

func customerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

func customerResponses(list []*entity.Customer) []dto.CustomerResponse {
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, customerResponse(c))
	}
	return out
}
