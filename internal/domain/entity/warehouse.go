package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        int64
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locator ubicación física dentro de una bodega (pasillo, estante, nivel).
type Locator struct {
	ID          int64
	WarehouseID int64
	Value       string // código impreso en la ubicación, único por bodega
	CreatedAt   time.Time
}
