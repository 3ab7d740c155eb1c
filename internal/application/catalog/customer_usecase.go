package catalog

import (
	"time"

	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente activo.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		Name:      in.Name,
		Document:  in.Document,
		Email:     in.Email,
		Phone:     in.Phone,
		Type:      in.Type,
		State:     entity.LifecycleActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes activos paginados.
func (uc *CustomerUseCase) List(limit, offset int) ([]*dto.CustomerResponse, error) {
	customers, err := uc.repo.List(entity.LifecycleActive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Retire marca el cliente como retirado.
func (uc *CustomerUseCase) Retire(id int64) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Retire(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:       c.ID,
		Name:     c.Name,
		Document: c.Document,
		Email:    c.Email,
		Phone:    c.Phone,
		Type:     c.Type,
		State:    string(c.State),
	}
}
