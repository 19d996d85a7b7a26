package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// StockOverviewUseCase existencias actuales por bucket, leídas de la vista materializada
// que refresca el scheduler. Puede ir algunos minutos atrás del libro; para cifras exactas
// está la consulta de disponibilidad.
type StockOverviewUseCase struct {
	repo          repository.StockOverviewRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockOverviewUseCase construye el caso de uso.
func NewStockOverviewUseCase(repo repository.StockOverviewRepository, warehouseRepo repository.WarehouseRepository) *StockOverviewUseCase {
	return &StockOverviewUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// ListLatest lista el último registro de cada serie. warehouseID 0 = todas las bodegas.
func (uc *StockOverviewUseCase) ListLatest(ctx context.Context, companyID string, warehouseID int64, limit, offset int) (*dto.StockRecordListResponse, error) {
	if warehouseID < 0 {
		return nil, domain.ErrInvalidInput
	}
	if warehouseID > 0 {
		wh, err := uc.warehouseRepo.GetByID(warehouseID)
		if err != nil {
			return nil, fmt.Errorf("stock: obtener bodega: %w", err)
		}
		if wh == nil || wh.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}
	list, err := uc.repo.ListLatestByWarehouse(ctx, companyID, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockRecordResponse, 0, len(list))
	for i := range list {
		items = append(items, ToStockRecordResponse(&list[i]))
	}
	return &dto.StockRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ToStockRecordResponse convierte un registro del libro a su DTO.
func ToStockRecordResponse(r *entity.StockSnapshotRecord) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		SeqNo:         r.SeqNo,
		ProductID:     r.ProductID,
		WarehouseID:   r.WarehouseID,
		AttributesKey: r.AttributesKey,
		PartnerID:     r.PartnerID,
		DateProjected: r.DateProjected,
		Qty:           r.Qty,
		CreatedAt:     r.CreatedAt,
	}
}
