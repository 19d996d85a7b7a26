package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una unidad de manipulación (pallet, contenedor, caja).
const (
	HUStatusPlanning  = "planning"
	HUStatusActive    = "active"
	HUStatusPicked    = "picked"
	HUStatusIssued    = "issued"
	HUStatusDestroyed = "destroyed"
)

// QtyOnHandHUStatuses estados cuyo contenido cuenta como stock físico en bodega.
func QtyOnHandHUStatuses() []string {
	return []string{HUStatusActive, HUStatusPicked}
}

// ValidHUStatus informa si s es un estado conocido.
func ValidHUStatus(s string) bool {
	switch s {
	case HUStatusPlanning, HUStatusActive, HUStatusPicked, HUStatusIssued, HUStatusDestroyed:
		return true
	}
	return false
}

// HandlingUnit unidad de manipulación. ParentID = 0 indica unidad de nivel superior.
type HandlingUnit struct {
	ID          int64
	Value       string // código de barras / etiqueta
	WarehouseID int64
	LocatorID   int64
	ParentID    int64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTopLevel informa si la unidad no está contenida en otra.
func (hu HandlingUnit) IsTopLevel() bool {
	return hu.ParentID == 0
}

// HUProductStorage cantidad de un producto contenida en una unidad (incluye sus hijas).
type HUProductStorage struct {
	HUID        int64
	ProductID   int64
	Qty         decimal.Decimal
	UnitMeasure string
}
