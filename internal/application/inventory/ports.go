package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del libro de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		snapshotRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
	) error) error

	// RunCount transacción para la toma física: documento, unidades y libro de stock.
	RunCount(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		huRepo repository.HandlingUnitRepository,
		snapshotRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// CountSheetLine fila de la hoja de conteo.
type CountSheetLine struct {
	SKU         string
	ProductName string
	Locator     string
	HUValue     string
	QtyBook     decimal.Decimal
	QtyCount    decimal.Decimal
	UnitMeasure string
}

// CountSheet datos de la hoja de conteo impresa.
type CountSheet struct {
	InventoryID   int64
	CompanyName   string
	WarehouseName string
	DocumentDate  time.Time
	Processed     bool
	Lines         []CountSheetLine
}

// CountSheetGenerator genera el PDF de la hoja de conteo.
type CountSheetGenerator interface {
	GenerateCountSheet(ctx context.Context, sheet CountSheet) ([]byte, error)
}
