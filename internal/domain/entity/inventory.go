package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory documento de toma física de inventario para una bodega.
type Inventory struct {
	ID           int64
	CompanyID    string
	WarehouseID  int64
	DocumentDate time.Time
	Processed    bool
	ProcessedAt  *time.Time
	CreatedAt    time.Time
	CreatedBy    string
}

// InventoryLine línea de conteo. QtyBook es la cantidad en libros al generar la línea;
// QtyCount la cantidad contada (inicia igual a QtyBook).
type InventoryLine struct {
	ID            int64
	InventoryID   int64
	ProductID     int64
	LocatorID     int64
	HUID          int64 // 0 si la línea no proviene de una unidad de manipulación
	AttributesKey string
	QtyBook       decimal.Decimal
	QtyCount      decimal.Decimal
	UnitMeasure   string
	UpdatedAt     time.Time
}

// Difference devuelve QtyCount - QtyBook.
func (l InventoryLine) Difference() decimal.Decimal {
	return l.QtyCount.Sub(l.QtyBook)
}
