package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// WarehouseUseCase administra las bodegas de una empresa y sus ubicaciones (locators).
// Una bodega ajena se reporta como inexistente.
type WarehouseUseCase struct {
	repo        repository.WarehouseRepository
	locatorRepo repository.LocatorRepository
}

func NewWarehouseUseCase(repo repository.WarehouseRepository, locatorRepo repository.LocatorRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, locatorRepo: locatorRepo}
}

func (uc *WarehouseUseCase) Create(companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		CompanyID: companyID,
		Name:      name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

func (uc *WarehouseUseCase) GetByID(companyID string, id int64) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.owned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

func (uc *WarehouseUseCase) Update(companyID string, id int64, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.owned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
		}
		warehouse.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

func (uc *WarehouseUseCase) List(companyID string, limit, offset int) (*dto.WarehouseListResponse, error) {
	warehouses, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.WarehouseListResponse{
		Items: make([]dto.WarehouseResponse, len(warehouses)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for i, w := range warehouses {
		out.Items[i] = *toWarehouseResponse(w)
	}
	return out, nil
}

// Delete devuelve ErrConflict (desde el repositorio) si la bodega ya tiene ubicaciones o stock.
func (uc *WarehouseUseCase) Delete(companyID string, id int64) error {
	if _, err := uc.owned(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// CreateLocator agrega una ubicación; el valor es único dentro de la bodega.
func (uc *WarehouseUseCase) CreateLocator(companyID string, warehouseID int64, in dto.CreateLocatorRequest) (*dto.LocatorResponse, error) {
	value := strings.TrimSpace(in.Value)
	if value == "" {
		return nil, fmt.Errorf("%w: value es requerido", domain.ErrInvalidInput)
	}
	if _, err := uc.owned(companyID, warehouseID); err != nil {
		return nil, err
	}
	loc := &entity.Locator{WarehouseID: warehouseID, Value: value, CreatedAt: time.Now()}
	if err := uc.locatorRepo.Create(loc); err != nil {
		return nil, err
	}
	return toLocatorResponse(loc), nil
}

func (uc *WarehouseUseCase) ListLocators(companyID string, warehouseID int64) ([]dto.LocatorResponse, error) {
	if _, err := uc.owned(companyID, warehouseID); err != nil {
		return nil, err
	}
	locators, err := uc.locatorRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocatorResponse, len(locators))
	for i, l := range locators {
		items[i] = *toLocatorResponse(l)
	}
	return items, nil
}

func (uc *WarehouseUseCase) owned(companyID string, id int64) (*entity.Warehouse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, fmt.Errorf("%w: bodega %d", domain.ErrNotFound, id)
	}
	return warehouse, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toLocatorResponse(l *entity.Locator) *dto.LocatorResponse {
	return &dto.LocatorResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Value:       l.Value,
		CreatedAt:   l.CreatedAt,
	}
}
