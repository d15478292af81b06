package dto

import "time"

// CreateCustomerRequest entrada de la mutación createCustomer.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BulkCreateCustomersRequest entrada de bulkCreateCustomers: las entradas se
// procesan en orden y con aislamiento de fallos por entrada.
type BulkCreateCustomersRequest struct {
	Customers []CreateCustomerRequest `json:"customers"`
}

// CustomerResponse representación de salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerMutationResult par (cliente-o-ausente, mensaje): la mutación nunca
// propaga un fallo de validación, lo devuelve como rechazo etiquetado.
type CustomerMutationResult struct {
	Customer  *CustomerResponse `json:"customer,omitempty"`
	Message   string            `json:"message"`
	ErrorKind string            `json:"error_kind,omitempty"`
}

// Ok indica si la mutación creó la entidad.
func (r CustomerMutationResult) Ok() bool { return r.Customer != nil }

// BulkCreateCustomersResult clientes creados (en orden de creación) más los
// errores por entrada, con posición 1-based en el mensaje.
type BulkCreateCustomersResult struct {
	Customers []CustomerResponse `json:"customers"`
	Errors    []string           `json:"errors"`
}

// CustomerFilterRequest filtros de customersFiltered (query params).
// Fechas en RFC 3339; los campos vacíos no filtran.
type CustomerFilterRequest struct {
	Name         string `query:"name"`
	Email        string `query:"email"`
	CreatedAtGte string `query:"created_at_gte"`
	CreatedAtLte string `query:"created_at_lte"`
	PhonePattern string `query:"phone_pattern"`
	OrderBy      string `query:"order_by"`
}
