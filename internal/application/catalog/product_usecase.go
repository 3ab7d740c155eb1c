package catalog

import (
	"time"

	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock NO se edita aquí:
// toda mutación de existencia pasa por el motor de inventario; lo único que se
// admite es la existencia inicial al crear.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto activo con su existencia inicial.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		SKU:        in.SKU,
		Name:       in.Name,
		Price:      in.Price,
		TaxRate:    in.TaxRate,
		Stock:      in.Stock,
		CategoryID: in.CategoryID,
		State:      entity.LifecycleActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.TaxRate = *in.TaxRate
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos activos paginados.
func (uc *ProductUseCase) List(limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.List(entity.LifecycleActive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Retire marca el producto como retirado; deja de aparecer en listados y ventas.
func (uc *ProductUseCase) Retire(id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Retire(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		Price:      p.Price,
		TaxRate:    p.TaxRate,
		Stock:      p.Stock,
		State:      string(p.State),
		CategoryID: p.CategoryID,
	}
}
