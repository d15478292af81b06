package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/validation"
	"github.com/jhoicas/crm-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// createCustomer
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerCreate_Exitoso(t *testing.T) {
	repo := testutil.NewCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)

	res := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "+1234567890",
	})

	require.True(t, res.Ok(), "la mutación debe crear el cliente: %s", res.Message)
	assert.Equal(t, "Customer created successfully", res.Message)
	assert.Empty(t, res.ErrorKind)
	assert.NotEmpty(t, res.Customer.ID, "el id debe asignarse en la creación")
	assert.Equal(t, "john@example.com", res.Customer.Email)
	assert.Len(t, repo.Customers, 1, "debe persistirse exactamente un cliente")
}

// El rechazo de validación vuelve etiquetado en el resultado, nunca como error.
func TestCustomerCreate_TelefonoInvalido_Rechazo(t *testing.T) {
	repo := testutil.NewCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)

	res := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "not-a-phone",
	})

	assert.False(t, res.Ok())
	assert.Equal(t, string(validation.KindInvalidPhoneFormat), res.ErrorKind)
	assert.Empty(t, repo.Customers, "un rechazo no debe persistir nada")
}

func TestCustomerCreate_EmailDuplicado(t *testing.T) {
	repo := testutil.NewCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)
	ctx := context.Background()

	first := uc.Create(ctx, dto.CreateCustomerRequest{Name: "John Doe", Email: "john@example.com"})
	require.True(t, first.Ok())

	dup := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Otro John", Email: "john@example.com"})
	assert.False(t, dup.Ok())
	assert.Equal(t, string(validation.KindDuplicateEmail), dup.ErrorKind)
	assert.Equal(t, "Email john@example.com already exists", dup.Message)
	assert.Len(t, repo.Customers, 1)
}

func TestCustomerCreate_ErrorDeRepositorio(t *testing.T) {
	repo := testutil.NewCustomerRepo()
	repo.FailWith = errors.New("conexión perdida")
	uc := usecase.NewCustomerUseCase(repo)

	res := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "John Doe", Email: "john@example.com"})
	assert.False(t, res.Ok())
	assert.Contains(t, res.Message, "conexión perdida")
}

// ──────────────────────────────────────────────────────────────────────────────
// bulkCreateCustomers
// ──────────────────────────────────────────────────────────────────────────────

// Caso del aislamiento por entrada: [A, duplicado de A, B] crea A y B, y el
// fallo de la segunda entrada queda contra su posición 1-based.
func TestCustomerBulkCreate_ExitoParcial(t *testing.T) {
	repo := testutil.NewCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)

	res := uc.BulkCreate(context.Background(), dto.BulkCreateCustomersRequest{
		Customers: []dto.CreateCustomerRequest{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Alice Clon", Email: "alice@example.com"},
			{Name: "Bob", Email: "bob@example.com", Phone: "123-456-7890"},
		},
	})

	require.Len(t, res.Customers, 2, "deben crearse las entradas válidas")
	assert.Equal(t, "alice@example.com", res.Customers[0].Email)
	assert.Equal(t, "bob@example.com", res.Customers[1].Email)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Customer 2: Email alice@example.com already exists", res.Errors[0])
	assert.Len(t, repo.Customers, 2)
}

func TestCustomerBulkCreate_ListaVacia(t *testing.T) {
	uc := usecase.NewCustomerUseCase(testutil.NewCustomerRepo())

	res := uc.BulkCreate(context.Background(), dto.BulkCreateCustomersRequest{})
	// Listas vacías, no nil: el JSON serializa [] y no null.
	assert.NotNil(t, res.Customers)
	assert.NotNil(t, res.Errors)
	assert.Empty(t, res.Customers)
	assert.Empty(t, res.Errors)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerGet_AusenteDevuelveNil(t *testing.T) {
	uc := usecase.NewCustomerUseCase(testutil.NewCustomerRepo())

	resp, err := uc.Get(context.Background(), "no-existe")
	require.NoError(t, err, "la ausencia no es un error")
	assert.Nil(t, resp)
}

func TestCustomerFiltered_PorNombreYPrefijoTelefono(t *testing.T) {
	repo := testutil.NewCustomerRepo()
	seedCustomers(t, repo)
	uc := usecase.NewCustomerUseCase(repo)

	byName, err := uc.Filtered(context.Background(), dto.CustomerFilterRequest{Name: "doe"})
	require.NoError(t, err)
	require.Len(t, byName, 1, "substring case-insensitive sobre el nombre")
	assert.Equal(t, "John Doe", byName[0].Name)

	byPhone, err := uc.Filtered(context.Background(), dto.CustomerFilterRequest{PhonePattern: "+1"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "+1234567890", byPhone[0].Phone)
}

func TestCustomerFiltered_FechaInvalida(t *testing.T) {
	uc := usecase.NewCustomerUseCase(testutil.NewCustomerRepo())

	_, err := uc.Filtered(context.Background(), dto.CustomerFilterRequest{CreatedAtGte: "ayer"})
	assert.Error(t, err, "una fecha no RFC 3339 debe rechazarse")
}

func seedCustomers(t *testing.T, repo *testutil.CustomerRepo) {
	t.Helper()
	ctx := context.Background()
	for _, c := range []*entity.Customer{
		{ID: "c-1", Name: "John Doe", Email: "john@example.com", Phone: "+1234567890", CreatedAt: time.Now()},
		{ID: "c-2", Name: "Jane Smith", Email: "jane@example.com", Phone: "123-456-7890", CreatedAt: time.Now()},
	} {
		require.NoError(t, repo.Create(ctx, c))
	}
}
