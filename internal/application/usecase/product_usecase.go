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

// ProductUseCase casos de uso de productos: createProduct, lecturas y la
// operación de reposición updateLowStockProducts.
type ProductUseCase struct {
	repo              repository.ProductRepository
	tx                TxRunner
	lowStockThreshold int // un producto es "low stock" si stock < umbral
	restockAmount     int // unidades que agrega la reposición
}

// NewProductUseCase construye el caso de uso. Umbral y cantidad de reposición
// vienen de configuración, no son constantes de código.
func NewProductUseCase(repo repository.ProductRepository, tx TxRunner, lowStockThreshold, restockAmount int) *ProductUseCase {
	return &ProductUseCase{
		repo:              repo,
		tx:                tx,
		lowStockThreshold: lowStockThreshold,
		restockAmount:     restockAmount,
	}
}

// Create valida y persiste un producto; todo fallo vuelve como rechazo en el resultado.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) dto.ProductMutationResult {
	price, stock, verr := validation.Product(in.Name, in.Price, in.Stock)
	if verr != nil {
		return dto.ProductMutationResult{Message: verr.Message, ErrorKind: string(verr.Kind)}
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return dto.ProductMutationResult{Message: fmt.Sprintf("Error: %v", err)}
	}
	resp := productResponse(product)
	return dto.ProductMutationResult{Product: &resp, Message: "Product created successfully"}
}

// Get devuelve el producto o nil si no existe.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp := productResponse(product)
	return &resp, nil
}

// List devuelve todos los productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return productResponses(list), nil
}

// Filtered aplica los filtros conjuntivos. low_stock=true se traduce al umbral
// configurado (stock < umbral, estricto).
func (uc *ProductUseCase) Filtered(ctx context.Context, in dto.ProductFilterRequest) ([]dto.ProductResponse, error) {
	f := repository.ProductFilter{
		Name:     in.Name,
		StockGte: in.StockGte,
		StockLte: in.StockLte,
	}
	var err error
	if f.PriceGte, err = parseDecimalFilter(in.PriceGte); err != nil {
		return nil, err
	}
	if f.PriceLte, err = parseDecimalFilter(in.PriceLte); err != nil {
		return nil, err
	}
	if in.LowStock {
		threshold := uc.lowStockThreshold
		f.StockBelow = &threshold
	}
	list, err := uc.repo.Filter(ctx, f, in.OrderBy)
	if err != nil {
		return nil, err
	}
	return productResponses(list), nil
}

// UpdateLowStock repone todos los productos bajo el umbral (stock += cantidad
// configurada) dentro de una transacción y devuelve la lista actualizada.
// Idempotente cuando nada está bajo el umbral: no escribe y lo dice explícito.
func (uc *ProductUseCase) UpdateLowStock(ctx context.Context) dto.UpdateLowStockResult {
	updated := []dto.ProductResponse{}
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.OrderRepository) error {
		low, err := products.ListBelowStock(ctx, uc.lowStockThreshold)
		if err != nil {
			return err
		}
		for _, p := range low {
			p.Stock += uc.restockAmount
			if err := products.UpdateStock(ctx, p.ID, p.Stock); err != nil {
				return err
			}
			updated = append(updated, productResponse(p))
		}
		return nil
	})
	if err != nil {
		return dto.UpdateLowStockResult{
			Success:         false,
			Message:         fmt.Sprintf("Error: %v", err),
			UpdatedProducts: []dto.ProductResponse{},
		}
	}
	if len(updated) == 0 {
		return dto.UpdateLowStockResult{
			Success:         true,
			Message:         "No products needed restocking",
			UpdatedProducts: updated,
		}
	}
	return dto.UpdateLowStockResult{
		Success:         true,
		Message:         fmt.Sprintf("Successfully restocked %d products", len(updated)),
		UpdatedProducts: updated,
	}
}

func productResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
	}
}

func productResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, productResponse(p))
	}
	return out
}
