package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-api/pkg/config"
)

func intPtr(n int) *int { return &n }

// seed carga datos de ejemplo (clientes, productos y un par de órdenes) usando
// las mismas mutaciones validadas de la API. Re-ejecutarlo no duplica: los
// emails repetidos se rechazan y los productos/órdenes existentes se saltan.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "conexión a PostgreSQL:", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintln(os.Stderr, "inicializar esquema:", err)
		os.Exit(1)
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	customerUC := usecase.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo, txRunner, cfg.CRM.LowStockThreshold, cfg.CRM.RestockAmount)
	orderUC := usecase.NewOrderUseCase(orderRepo, customerRepo, productRepo, txRunner)

	fmt.Println("Seeding database with sample data...")

	customerIDs := map[string]string{} // email -> id
	for _, in := range []dto.CreateCustomerRequest{
		{Name: "John Doe", Email: "john@example.com", Phone: "+1234567890"},
		{Name: "Jane Smith", Email: "jane@example.com", Phone: "123-456-7890"},
		{Name: "Mike Johnson", Email: "mike@example.com", Phone: "+9876543210"},
	} {
		res := customerUC.Create(ctx, in)
		if res.Ok() {
			customerIDs[in.Email] = res.Customer.ID
			fmt.Println("Created customer:", res.Customer.Name)
			continue
		}
		// Ya existía: recuperar el id para las órdenes.
		existing, err := customerRepo.Filter(ctx, repository.CustomerFilter{Email: in.Email}, "")
		if err != nil || len(existing) == 0 {
			fmt.Fprintf(os.Stderr, "customer %s: %s\n", in.Email, res.Message)
			continue
		}
		customerIDs[in.Email] = existing[0].ID
	}

	productIDs := map[string]string{} // name -> id
	for _, in := range []dto.CreateProductRequest{
		{Name: "MacBook Pro", Price: "1299.99", Stock: intPtr(15)},
		{Name: "iPhone 14", Price: "899.99", Stock: intPtr(25)},
		{Name: "AirPods Pro", Price: "249.99", Stock: intPtr(50)},
		{Name: "iPad Air", Price: "599.99", Stock: intPtr(20)},
	} {
		existing, err := productRepo.Filter(ctx, repository.ProductFilter{Name: in.Name}, "")
		if err == nil && len(existing) > 0 {
			productIDs[in.Name] = existing[0].ID
			continue
		}
		res := productUC.Create(ctx, in)
		if !res.Ok() {
			fmt.Fprintf(os.Stderr, "product %s: %s\n", in.Name, res.Message)
			continue
		}
		productIDs[in.Name] = res.Product.ID
		fmt.Println("Created product:", res.Product.Name)
	}

	existingOrders, err := orderRepo.List(ctx, 1, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "listar órdenes:", err)
		os.Exit(1)
	}
	if len(existingOrders) > 0 {
		fmt.Println("Orders already seeded, skipping.")
		return
	}

	for _, o := range []struct {
		customerEmail string
		productNames  []string
	}{
		{"john@example.com", []string{"MacBook Pro", "AirPods Pro"}},
		{"jane@example.com", []string{"iPhone 14"}},
	} {
		ids := make([]string, 0, len(o.productNames))
		for _, name := range o.productNames {
			if id, ok := productIDs[name]; ok {
				ids = append(ids, id)
			}
		}
		res := orderUC.Create(ctx, dto.CreateOrderRequest{
			CustomerID: customerIDs[o.customerEmail],
			ProductIDs: ids,
		})
		if !res.Ok() {
			fmt.Fprintf(os.Stderr, "order for %s: %s\n", o.customerEmail, res.Message)
			continue
		}
		fmt.Printf("Created order for %s: $%s\n", res.Order.Customer.Name, res.Order.TotalAmount.StringFixed(2))
	}

	fmt.Println("Seeding completed.")
}
