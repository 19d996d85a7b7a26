package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// HandlingUnitUseCase registro de unidades de manipulación y su contenido.
type HandlingUnitUseCase struct {
	repo          repository.HandlingUnitRepository
	warehouseRepo repository.WarehouseRepository
	locatorRepo   repository.LocatorRepository
	productRepo   repository.ProductRepository
}

// NewHandlingUnitUseCase construye el caso de uso.
func NewHandlingUnitUseCase(
	repo repository.HandlingUnitRepository,
	warehouseRepo repository.WarehouseRepository,
	locatorRepo repository.LocatorRepository,
	productRepo repository.ProductRepository,
) *HandlingUnitUseCase {
	return &HandlingUnitUseCase{repo: repo, warehouseRepo: warehouseRepo, locatorRepo: locatorRepo, productRepo: productRepo}
}

// Create registra una unidad en una ubicación de una bodega de la empresa.
// Una unidad hija debe estar en la misma bodega que su padre.
func (uc *HandlingUnitUseCase) Create(ctx context.Context, companyID string, in dto.CreateHandlingUnitRequest) (*dto.HandlingUnitResponse, error) {
	value := strings.TrimSpace(in.Value)
	status := in.Status
	if status == "" {
		status = entity.HUStatusPlanning
	}
	switch {
	case value == "":
		return nil, fmt.Errorf("%w: value es obligatorio", domain.ErrInvalidInput)
	case !entity.ValidHUStatus(status):
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
	case in.ParentID < 0:
		return nil, fmt.Errorf("%w: parent_id inválido", domain.ErrInvalidInput)
	}
	if err := uc.checkWarehouse(companyID, in.WarehouseID); err != nil {
		return nil, err
	}
	loc, err := uc.locatorRepo.GetByID(in.LocatorID)
	if err != nil {
		return nil, err
	}
	if loc == nil || loc.WarehouseID != in.WarehouseID {
		return nil, fmt.Errorf("%w: la ubicación %d no pertenece a la bodega %d", domain.ErrInvalidInput, in.LocatorID, in.WarehouseID)
	}
	if in.ParentID > 0 {
		parent, err := uc.repo.GetByID(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.WarehouseID != in.WarehouseID {
			return nil, fmt.Errorf("%w: la unidad padre %d no está en la bodega %d", domain.ErrInvalidInput, in.ParentID, in.WarehouseID)
		}
	}
	hu := &entity.HandlingUnit{
		Value:       value,
		WarehouseID: in.WarehouseID,
		LocatorID:   in.LocatorID,
		ParentID:    in.ParentID,
		Status:      status,
	}
	if err := uc.repo.Create(ctx, hu); err != nil {
		return nil, err
	}
	return toHandlingUnitResponse(hu), nil
}

// UpdateStatus cambia el estado de una unidad de la empresa.
func (uc *HandlingUnitUseCase) UpdateStatus(ctx context.Context, companyID string, id int64, status string) (*dto.HandlingUnitResponse, error) {
	if !entity.ValidHUStatus(status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
	}
	hu, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	hu.Status = status
	return toHandlingUnitResponse(hu), nil
}

// SetStorage fija la cantidad de un producto de la empresa dentro de la unidad.
func (uc *HandlingUnitUseCase) SetStorage(ctx context.Context, companyID string, id int64, in dto.SetHUStorageRequest) error {
	if in.Qty.IsNegative() {
		return fmt.Errorf("%w: qty no puede ser negativa", domain.ErrInvalidInput)
	}
	if _, err := uc.owned(ctx, companyID, id); err != nil {
		return err
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil || product.CompanyID != companyID {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
	}
	uom := in.UnitMeasure
	if uom == "" {
		uom = product.UnitMeasure
	}
	return uc.repo.SetProductStorage(ctx, &entity.HUProductStorage{
		HUID:        id,
		ProductID:   in.ProductID,
		Qty:         in.Qty,
		UnitMeasure: uom,
	})
}

// List unidades de una bodega de la empresa.
func (uc *HandlingUnitUseCase) List(ctx context.Context, companyID string, warehouseID int64, status string, limit, offset int) (*dto.HandlingUnitListResponse, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	filter := repository.HUFilter{WarehouseID: warehouseID}
	if status != "" {
		filter.Statuses = []string{status}
	}
	list, err := uc.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HandlingUnitResponse, 0, len(list))
	for _, hu := range list {
		items = append(items, *toHandlingUnitResponse(hu))
	}
	return &dto.HandlingUnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *HandlingUnitUseCase) checkWarehouse(companyID string, warehouseID int64) error {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return fmt.Errorf("hu: obtener bodega: %w", err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return fmt.Errorf("%w: bodega %d", domain.ErrNotFound, warehouseID)
	}
	return nil
}

func (uc *HandlingUnitUseCase) owned(ctx context.Context, companyID string, id int64) (*entity.HandlingUnit, error) {
	hu, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hu == nil {
		return nil, fmt.Errorf("%w: unidad %d", domain.ErrNotFound, id)
	}
	if err := uc.checkWarehouse(companyID, hu.WarehouseID); err != nil {
		return nil, err
	}
	return hu, nil
}

func toHandlingUnitResponse(hu *entity.HandlingUnit) *dto.HandlingUnitResponse {
	return &dto.HandlingUnitResponse{
		ID:          hu.ID,
		Value:       hu.Value,
		WarehouseID: hu.WarehouseID,
		LocatorID:   hu.LocatorID,
		ParentID:    hu.ParentID,
		Status:      hu.Status,
		CreatedAt:   hu.CreatedAt,
		UpdatedAt:   hu.UpdatedAt,
	}
}
