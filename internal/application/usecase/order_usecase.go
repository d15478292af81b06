package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/domain/validation"
)

// OrderUseCase casos de uso de órdenes: createOrder y las lecturas.
type OrderUseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	tx        TxRunner
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	tx TxRunner,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, customers: customers, products: products, tx: tx}
}

// Create valida cliente y productos (fail-fast en el primer id que no resuelve),
// calcula el total como suma decimal exacta de los precios vigentes y persiste
// la orden con sus asociaciones en una transacción.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) dto.OrderMutationResult {
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return dto.OrderMutationResult{Message: fmt.Sprintf("Error: %v", err)}
	}
	if customer == nil {
		return rejectedOrder(validation.UnknownCustomer())
	}
	if len(in.ProductIDs) == 0 {
		return rejectedOrder(validation.EmptyProductList())
	}

	products := make([]entity.Product, 0, len(in.ProductIDs))
	total := decimal.Zero
	for _, id := range in.ProductIDs {
		product, err := uc.products.GetByID(ctx, id)
		if err != nil {
			return dto.OrderMutationResult{Message: fmt.Sprintf("Error: %v", err)}
		}
		if product == nil {
			return rejectedOrder(validation.UnknownProduct(id))
		}
		products = append(products, *product)
		total = total.Add(product.Price)
	}

	orderDate := time.Now()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	order := &entity.Order{
		ID:          uuid.New().String(),
		CustomerID:  customer.ID,
		Products:    products,
		TotalAmount: total,
		OrderDate:   orderDate,
	}
	err = uc.tx.Run(ctx, func(_ repository.ProductRepository, orders repository.OrderRepository) error {
		return orders.Create(ctx, order)
	})
	if err != nil {
		return dto.OrderMutationResult{Message: fmt.Sprintf("Error: %v", err)}
	}

	order.Customer = customer
	resp := orderResponse(order)
	return dto.OrderMutationResult{Order: &resp, Message: "Order created successfully"}
}

// Get devuelve la orden (con cliente y productos) o nil si no existe.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	resp := orderResponse(order)
	return &resp, nil
}

// List devuelve todas las órdenes con paginación.
func (uc *OrderUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orders.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return orderResponses(list), nil
}

// Filtered aplica los filtros conjuntivos y el orden opcional.
func (uc *OrderUseCase) Filtered(ctx context.Context, in dto.OrderFilterRequest) ([]dto.OrderResponse, error) {
	f := repository.OrderFilter{
		CustomerName: in.CustomerName,
		ProductName:  in.ProductName,
		ProductID:    in.ProductID,
	}
	var err error
	if f.TotalAmountGte, err = parseDecimalFilter(in.TotalAmountGte); err != nil {
		return nil, err
	}
	if f.TotalAmountLte, err = parseDecimalFilter(in.TotalAmountLte); err != nil {
		return nil, err
	}
	if f.OrderDateGte, err = parseTimeFilter(in.OrderDateGte); err != nil {
		return nil, err
	}
	if f.OrderDateLte, err = parseTimeFilter(in.OrderDateLte); err != nil {
		return nil, err
	}
	list, err := uc.orders.Filter(ctx, f, in.OrderBy)
	if err != nil {
		return nil, err
	}
	return orderResponses(list), nil
}

func rejectedOrder(verr *validation.Error) dto.OrderMutationResult {
	return dto.OrderMutationResult{Message: verr.Message, ErrorKind: string(verr.Kind)}
}

func orderResponse(o *entity.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:          o.ID,
		Products:    make([]dto.ProductResponse, 0, len(o.Products)),
		TotalAmount: o.TotalAmount,
		OrderDate:   o.OrderDate,
	}
	if o.Customer != nil {
		c := customerResponse(o.Customer)
		resp.Customer = &c
	}
	for i := range o.Products {
		resp.Products = append(resp.Products, productResponse(&o.Products[i]))
	}
	return resp
}

func orderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, orderResponse(o))
	}
	return out
}
