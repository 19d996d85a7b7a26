package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// CountUseCase toma física de inventario: documento, líneas de conteo desde unidades de
// manipulación, procesamiento de diferencias y hoja de conteo.
type CountUseCase struct {
	txRunner      TxRunner
	inventoryRepo repository.InventoryRepository
	warehouseRepo repository.WarehouseRepository
	locatorRepo   repository.LocatorRepository
	productRepo   repository.ProductRepository
	huRepo        repository.HandlingUnitRepository
	companyRepo   repository.CompanyRepository
	generator     CountSheetGenerator
	log           zerolog.Logger
	now           func() time.Time
}

// NewCountUseCase construye el caso de uso inyectando todas sus dependencias.
func NewCountUseCase(
	txRunner TxRunner,
	inventoryRepo repository.InventoryRepository,
	warehouseRepo repository.WarehouseRepository,
	locatorRepo repository.LocatorRepository,
	productRepo repository.ProductRepository,
	huRepo repository.HandlingUnitRepository,
	companyRepo repository.CompanyRepository,
	generator CountSheetGenerator,
	log zerolog.Logger,
) *CountUseCase {
	return &CountUseCase{
		txRunner:      txRunner,
		inventoryRepo: inventoryRepo,
		warehouseRepo: warehouseRepo,
		locatorRepo:   locatorRepo,
		productRepo:   productRepo,
		huRepo:        huRepo,
		companyRepo:   companyRepo,
		generator:     generator,
		log:           log,
		now:           time.Now,
	}
}

// CountLinesFilter restringe las unidades consideradas. Cero = sin filtro.
type CountLinesFilter struct {
	LocatorID int64
	ProductID int64
}

// CreateInventory crea un documento de toma física para una bodega de la empresa.
func (uc *CountUseCase) CreateInventory(ctx context.Context, companyID, userID string, warehouseID int64, documentDate time.Time) (*entity.Inventory, error) {
	if warehouseID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, fmt.Errorf("inventory: obtener bodega: %w", err)
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if documentDate.IsZero() {
		documentDate = uc.now()
	}
	inv := &entity.Inventory{
		CompanyID:    companyID,
		WarehouseID:  warehouseID,
		DocumentDate: documentDate,
		CreatedBy:    userID,
	}
	if err := uc.inventoryRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("inventory: crear documento: %w", err)
	}
	return inv, nil
}

// GetInventory devuelve el documento con sus líneas.
func (uc *CountUseCase) GetInventory(ctx context.Context, companyID string, inventoryID int64) (*entity.Inventory, []*entity.InventoryLine, error) {
	inv, err := uc.loadInventory(ctx, uc.inventoryRepo.GetByID, companyID, inventoryID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := uc.inventoryRepo.ListLines(ctx, inv.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("inventory: listar líneas: %w", err)
	}
	return inv, lines, nil
}

// CreateCountLinesFromHU crea o actualiza las líneas de conteo a partir de las unidades de
// manipulación de nivel superior con stock físico (activas o seleccionadas) de la bodega del
// documento. La línea se identifica por (unidad, producto); en ambos casos QtyBook y QtyCount
// quedan en la cantidad almacenada. Devuelve el número de líneas creadas más actualizadas.
func (uc *CountUseCase) CreateCountLinesFromHU(ctx context.Context, companyID string, inventoryID int64, filter CountLinesFilter) (int, error) {
	if filter.LocatorID < 0 || filter.ProductID < 0 {
		return 0, domain.ErrInvalidInput
	}
	created, updated := 0, 0
	err := uc.txRunner.RunCount(ctx, func(
		inventoryRepo repository.InventoryRepository,
		huRepo repository.HandlingUnitRepository,
		_ repository.StockSnapshotRepository,
		_ repository.ProductRepository,
	) error {
		inv, err := uc.loadInventory(ctx, inventoryRepo.GetForUpdate, companyID, inventoryID)
		if err != nil {
			return err
		}
		if inv.Processed {
			return domain.ErrInventoryProcessed
		}

		hus, err := huRepo.ListWithStorage(ctx, repository.HUFilter{
			WarehouseID:  inv.WarehouseID,
			LocatorID:    filter.LocatorID,
			ProductID:    filter.ProductID,
			Statuses:     entity.QtyOnHandHUStatuses(),
			TopLevelOnly: true,
		})
		if err != nil {
			return fmt.Errorf("inventory: listar unidades: %w", err)
		}

		for _, h := range hus {
			for _, st := range h.Storages {
				line, err := inventoryRepo.GetLineByHUAndProduct(ctx, inv.ID, h.HU.ID, st.ProductID)
				if err != nil {
					return fmt.Errorf("inventory: buscar línea: %w", err)
				}
				if line == nil {
					line = &entity.InventoryLine{
						InventoryID: inv.ID,
						ProductID:   st.ProductID,
						HUID:        h.HU.ID,
					}
				}
				line.LocatorID = h.HU.LocatorID
				line.QtyBook = st.Qty
				line.QtyCount = st.Qty
				line.UnitMeasure = st.UnitMeasure

				if line.ID == 0 {
					if err := inventoryRepo.CreateLine(ctx, line); err != nil {
						return fmt.Errorf("inventory: crear línea: %w", err)
					}
					created++
					continue
				}
				if err := inventoryRepo.UpdateLine(ctx, line); err != nil {
					return fmt.Errorf("inventory: actualizar línea: %w", err)
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info().
		Int64("inventory_id", inventoryID).
		Int("created", created).
		Int("updated", updated).
		Msg("líneas de conteo generadas desde unidades de manipulación")
	return created + updated, nil
}

// UpdateCountedQty registra la cantidad contada de una línea.
func (uc *CountUseCase) UpdateCountedQty(ctx context.Context, companyID string, inventoryID, lineID int64, qty decimal.Decimal) (*entity.InventoryLine, error) {
	if qty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var line *entity.InventoryLine
	err := uc.txRunner.RunCount(ctx, func(
		inventoryRepo repository.InventoryRepository,
		_ repository.HandlingUnitRepository,
		_ repository.StockSnapshotRepository,
		_ repository.ProductRepository,
	) error {
		inv, err := uc.loadInventory(ctx, inventoryRepo.GetForUpdate, companyID, inventoryID)
		if err != nil {
			return err
		}
		if inv.Processed {
			return domain.ErrInventoryProcessed
		}
		line, err = inventoryRepo.GetLine(ctx, inv.ID, lineID)
		if err != nil {
			return fmt.Errorf("inventory: obtener línea: %w", err)
		}
		if line == nil {
			return domain.ErrNotFound
		}
		line.QtyCount = qty
		return inventoryRepo.UpdateLine(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// ProcessInventory publica un ajuste en el libro de stock por cada línea con diferencia
// entre lo contado y lo registrado, y marca el documento como procesado.
// Devuelve el número de ajustes publicados.
func (uc *CountUseCase) ProcessInventory(ctx context.Context, companyID, userID string, inventoryID int64) (int, error) {
	adjustments := 0
	err := uc.txRunner.RunCount(ctx, func(
		inventoryRepo repository.InventoryRepository,
		_ repository.HandlingUnitRepository,
		snapshotRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
	) error {
		inv, err := uc.loadInventory(ctx, inventoryRepo.GetForUpdate, companyID, inventoryID)
		if err != nil {
			return err
		}
		if inv.Processed {
			return domain.ErrInventoryProcessed
		}
		lines, err := inventoryRepo.ListLines(ctx, inv.ID)
		if err != nil {
			return fmt.Errorf("inventory: listar líneas: %w", err)
		}

		now := uc.now()
		l := ledger{snapshotRepo: snapshotRepo, productRepo: productRepo, userID: userID}
		products := make(map[int64]*entity.Product)
		for _, line := range lines {
			diff := line.Difference()
			if diff.IsZero() {
				continue
			}
			product, ok := products[line.ProductID]
			if !ok {
				product, err = productRepo.GetByID(line.ProductID)
				if err != nil {
					return fmt.Errorf("inventory: obtener producto: %w", err)
				}
				if product == nil {
					return domain.ErrNotFound
				}
				products[line.ProductID] = product
			}
			key := entity.StockKey{
				ProductID:     line.ProductID,
				WarehouseID:   inv.WarehouseID,
				AttributesKey: line.AttributesKey,
				PartnerID:     entity.PartnerIDAny,
			}
			if _, err := l.adjust(ctx, product, key, diff, nil, now); err != nil {
				return fmt.Errorf("inventory: ajuste línea %d: %w", line.ID, err)
			}
			adjustments++
		}
		return inventoryRepo.MarkProcessed(ctx, inv.ID, now)
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info().
		Int64("inventory_id", inventoryID).
		Int("adjustments", adjustments).
		Msg("inventario procesado")
	return adjustments, nil
}

// CountSheetPDF genera la hoja de conteo del documento.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
//   - domain.ErrForbidden        si el documento no pertenece a la empresa del token.
func (uc *CountUseCase) CountSheetPDF(ctx context.Context, companyID string, inventoryID int64) ([]byte, string, error) {
	inv, lines, err := uc.GetInventory(ctx, companyID, inventoryID)
	if err != nil {
		return nil, "", err
	}

	sheet := CountSheet{
		InventoryID:  inv.ID,
		DocumentDate: inv.DocumentDate,
		Processed:    inv.Processed,
		Lines:        make([]CountSheetLine, 0, len(lines)),
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("count sheet: obtener empresa: %w", err)
	}
	if company != nil {
		sheet.CompanyName = company.Name
	}
	wh, err := uc.warehouseRepo.GetByID(inv.WarehouseID)
	if err != nil {
		return nil, "", fmt.Errorf("count sheet: obtener bodega: %w", err)
	}
	if wh != nil {
		sheet.WarehouseName = wh.Name
	}

	products := make(map[int64]*entity.Product)
	locators := make(map[int64]string)
	for _, line := range lines {
		row := CountSheetLine{
			QtyBook:     line.QtyBook,
			QtyCount:    line.QtyCount,
			UnitMeasure: line.UnitMeasure,
		}
		product, ok := products[line.ProductID]
		if !ok {
			if product, err = uc.productRepo.GetByID(line.ProductID); err != nil {
				return nil, "", fmt.Errorf("count sheet: obtener producto: %w", err)
			}
			products[line.ProductID] = product
		}
		if product != nil {
			row.SKU = product.SKU
			row.ProductName = product.Name
		} else {
			row.ProductName = fmt.Sprintf("Producto %d", line.ProductID) // fallback
		}
		if line.LocatorID > 0 {
			value, ok := locators[line.LocatorID]
			if !ok {
				loc, err := uc.locatorRepo.GetByID(line.LocatorID)
				if err != nil {
					return nil, "", fmt.Errorf("count sheet: obtener ubicación: %w", err)
				}
				if loc != nil {
					value = loc.Value
				}
				locators[line.LocatorID] = value
			}
			row.Locator = value
		}
		if line.HUID > 0 {
			hu, err := uc.huRepo.GetByID(ctx, line.HUID)
			if err != nil {
				return nil, "", fmt.Errorf("count sheet: obtener unidad: %w", err)
			}
			if hu != nil {
				row.HUValue = hu.Value
			}
		}
		sheet.Lines = append(sheet.Lines, row)
	}

	pdfBytes, err := uc.generator.GenerateCountSheet(ctx, sheet)
	if err != nil {
		return nil, "", fmt.Errorf("inventory: generación de hoja de conteo fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("conteo_%d.pdf", inv.ID), nil
}

// loadInventory obtiene el documento con get y verifica que sea de la empresa.
func (uc *CountUseCase) loadInventory(
	ctx context.Context,
	get func(context.Context, int64) (*entity.Inventory, error),
	companyID string,
	inventoryID int64,
) (*entity.Inventory, error) {
	if inventoryID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	inv, err := get(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("inventory: obtener documento: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}
